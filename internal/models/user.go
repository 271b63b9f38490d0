package model

import (
	"time"
)

// DateFields contient les champs d'audit standard pour toutes les entités
type DateFields struct {
	CreatedAt time.Time  `json:"createdAt,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt,omitempty"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// QuizStats statistiques de quiz agrégées d'un utilisateur.
// AverageScore est une moyenne glissante mise à jour de façon incrémentale,
// jamais recalculée depuis l'historique.
type QuizStats struct {
	TotalQuizzes int     `json:"totalQuizzes"`
	TotalCorrect int     `json:"totalCorrect"`
	AverageScore float64 `json:"averageScore"`
}

// Record intègre le score d'un nouveau quiz dans les statistiques
func (s *QuizStats) Record(score int) {
	s.TotalQuizzes++
	s.TotalCorrect += score
	s.AverageScore = (s.AverageScore*float64(s.TotalQuizzes-1) + float64(score)) / float64(s.TotalQuizzes)
}

// QuizRecord une entrée de l'historique de quiz
type QuizRecord struct {
	Topic string    `json:"topic"`
	Score int       `json:"score"`
	Date  time.Time `json:"date"`
}

// StudyPlan un plan de révision créé par l'utilisateur
type StudyPlan struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Topics      []string  `json:"topics,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type User struct {
	ID          string       `json:"id,omitempty"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	Avatar      string       `json:"avatar,omitempty"`
	Bio         string       `json:"bio,omitempty"`
	Interests   []string     `json:"interests,omitempty"`
	XP          int          `json:"xp"`
	Level       int          `json:"level"`
	Badges      []Badge      `json:"badges"`
	QuizStats   QuizStats    `json:"quizStats"`
	QuizHistory []QuizRecord `json:"quizHistory,omitempty"`
	StudyPlans  []StudyPlan  `json:"studyPlans,omitempty"`
	LastActive  time.Time    `json:"lastActive"`
	JoinDate    time.Time    `json:"joinDate,omitempty"`
	DateFields
}

// HasBadge indique si l'utilisateur possède déjà un badge de ce nom
func (u *User) HasBadge(name string) bool {
	for _, b := range u.Badges {
		if b.Name == name {
			return true
		}
	}
	return false
}
