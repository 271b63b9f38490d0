package handler

import (
	"net/http"
	"time"

	model "github.com/MassBabyGeek/StudyPulse-backend/internal/models"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/utils"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/xp"
	"github.com/gorilla/mux"
)

// GetProgress retourne le document de progression complet d'un utilisateur
func GetProgress(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	user, err := userStore.FindByID(r.Context(), userID)
	if err != nil {
		utils.Error(w, mapXPError(err), "could not load user: "+err.Error())
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":          user,
		"nextLevelXp":   xp.LevelThreshold(user.Level + 1),
		"currentBaseXp": xp.LevelThreshold(user.Level),
	})
}

type updateXPPayload struct {
	UserID   string `json:"userId"`
	XPAmount int    `json:"xpAmount"`
	Action   string `json:"action"`
}

// UpdateXP attribue directement de l'XP (endpoint interne de progression)
func UpdateXP(w http.ResponseWriter, r *http.Request) {
	var payload updateXPPayload
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.UserID == "" || payload.XPAmount == 0 {
		utils.Error(w, http.StatusBadRequest, "userId and xpAmount are required")
		return
	}

	result, err := xpService.AwardXP(r.Context(), payload.UserID, payload.XPAmount, payload.Action)
	if err != nil {
		utils.Error(w, mapXPError(err), err.Error())
		return
	}

	utils.Success(w, result)
}

// GetStudyPlans retourne les plans de révision d'un utilisateur
func GetStudyPlans(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	user, err := userStore.FindByID(r.Context(), userID)
	if err != nil {
		utils.Error(w, mapXPError(err), "could not load user: "+err.Error())
		return
	}

	utils.Success(w, user.StudyPlans)
}

type createStudyPlanPayload struct {
	UserID      string   `json:"userId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Topics      []string `json:"topics"`
}

// CreateStudyPlan ajoute un plan de révision au document de l'utilisateur
// et retourne le plan créé
func CreateStudyPlan(w http.ResponseWriter, r *http.Request) {
	var payload createStudyPlanPayload
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.UserID == "" || payload.Title == "" {
		utils.Error(w, http.StatusBadRequest, "userId and title are required")
		return
	}

	ctx := r.Context()
	user, err := userStore.FindByID(ctx, payload.UserID)
	if err != nil {
		utils.Error(w, mapXPError(err), "could not load user: "+err.Error())
		return
	}

	plan := model.StudyPlan{
		Title:       payload.Title,
		Description: payload.Description,
		Topics:      payload.Topics,
		CreatedAt:   time.Now(),
	}
	user.StudyPlans = append(user.StudyPlans, plan)

	if err := userStore.Save(ctx, user); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not save study plan: "+err.Error())
		return
	}

	utils.Success(w, plan)
}
