package scanner

import (
	"database/sql"
	"encoding/json"
	"fmt"

	model "github.com/MassBabyGeek/StudyPulse-backend/internal/models"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/utils"
	"github.com/lib/pq"
)

// UserColumns la liste SELECT canonique d'un utilisateur, dans l'ordre
// attendu par ScanUser
const UserColumns = `
	id, username, email, avatar, bio, interests,
	xp, level, badges, quiz_history, study_plans,
	total_quizzes, total_correct, average_score,
	last_active, join_date, created_at, updated_at`

// ScanUser scanne une ligne SQL vers un User.
// Utilise les types sql.Null* et les convertit automatiquement.
func ScanUser(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.User, error) {
	var user model.User
	var avatar, bio sql.NullString
	var interests pq.StringArray
	var badges, history, plans []byte

	err := scanner.Scan(
		&user.ID, &user.Username, &user.Email, &avatar, &bio, &interests,
		&user.XP, &user.Level, &badges, &history, &plans,
		&user.QuizStats.TotalQuizzes, &user.QuizStats.TotalCorrect, &user.QuizStats.AverageScore,
		&user.LastActive, &user.JoinDate, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Conversions
	user.Avatar = utils.NullStringToString(avatar)
	user.Bio = utils.NullStringToString(bio)
	user.Interests = interests

	user.Badges = []model.Badge{}
	if len(badges) > 0 {
		if err := json.Unmarshal(badges, &user.Badges); err != nil {
			return nil, fmt.Errorf("could not decode badges: %w", err)
		}
	}
	user.QuizHistory = []model.QuizRecord{}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &user.QuizHistory); err != nil {
			return nil, fmt.Errorf("could not decode quiz history: %w", err)
		}
	}
	user.StudyPlans = []model.StudyPlan{}
	if len(plans) > 0 {
		if err := json.Unmarshal(plans, &user.StudyPlans); err != nil {
			return nil, fmt.Errorf("could not decode study plans: %w", err)
		}
	}

	return &user, nil
}
