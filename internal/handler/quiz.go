package handler

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/MassBabyGeek/StudyPulse-backend/internal/middleware"
	model "github.com/MassBabyGeek/StudyPulse-backend/internal/models"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/services"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/utils"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/xp"
	"github.com/gorilla/mux"
)

type generateQuizPayload struct {
	Topic        string `json:"topic"`
	Difficulty   string `json:"difficulty"`
	NumQuestions int    `json:"numQuestions"`
}

// GenerateQuiz demande un quiz à l'assistant IA
func GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var payload generateQuizPayload
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.Topic == "" {
		utils.Error(w, http.StatusBadRequest, "topic is required")
		return
	}
	if payload.Difficulty == "" {
		payload.Difficulty = "medium"
	}
	if payload.NumQuestions < 1 {
		payload.NumQuestions = 5
	}

	quiz, err := aiService.GenerateQuiz(r.Context(), payload.Topic, payload.Difficulty, payload.NumQuestions)
	if err != nil {
		if errors.Is(err, services.ErrRateLimited) {
			utils.Error(w, http.StatusTooManyRequests,
				"Daily quiz generation limit reached. Please try again after midnight.")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to generate quiz: "+err.Error())
		return
	}

	utils.Success(w, quiz)
}

type submitQuizPayload struct {
	Questions []model.Question `json:"questions"`
	Answers   []int            `json:"answers"`
	Topic     string           `json:"topic"`
}

// SubmitQuiz note le quiz, met à jour les statistiques (moyenne glissante)
// et l'historique, puis attribue 10 XP par bonne réponse
func SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	authUser, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var payload submitQuizPayload
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(payload.Questions) == 0 || len(payload.Answers) == 0 {
		utils.Error(w, http.StatusBadRequest, "questions and answers are required")
		return
	}

	// Score = nombre de bonnes réponses. La validation anti-triche du
	// contenu soumis est hors périmètre.
	score := 0
	for i, answer := range payload.Answers {
		if i < len(payload.Questions) && answer == payload.Questions[i].CorrectAnswer {
			score++
		}
	}

	xpEarned := score * xp.RewardQuizCorrectAnswer

	ctx := r.Context()
	user, err := userStore.FindByID(ctx, authUser.ID)
	if err != nil {
		utils.Error(w, mapXPError(err), "could not load user: "+err.Error())
		return
	}

	user.QuizStats.Record(score)

	topic := payload.Topic
	if topic == "" {
		topic = "General"
	}
	user.QuizHistory = append(user.QuizHistory, model.QuizRecord{
		Topic: topic,
		Score: score,
		Date:  time.Now(),
	})

	if err := userStore.Save(ctx, user); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not save quiz stats: "+err.Error())
		return
	}

	xpResult, err := xpService.AwardXP(ctx, user.ID, xpEarned, "quiz_completion")
	if err != nil {
		utils.Error(w, mapXPError(err), "could not award quiz xp: "+err.Error())
		return
	}

	utils.Success(w, map[string]interface{}{
		"score":           score,
		"totalQuestions":  len(payload.Questions),
		"percentageScore": int(math.Round(float64(score) / float64(len(payload.Questions)) * 100)),
		"xp": xpSummary{
			Awarded:   xpEarned,
			Total:     xpResult.CurrentXP,
			Level:     xpResult.NewLevel,
			LeveledUp: xpResult.LeveledUp,
		},
	})
}

// GetQuizHistory retourne l'historique des quiz d'un utilisateur
func GetQuizHistory(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	user, err := userStore.FindByID(r.Context(), userID)
	if err != nil {
		utils.Error(w, mapXPError(err), "could not load user: "+err.Error())
		return
	}

	utils.Success(w, user.QuizHistory)
}
