package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/MassBabyGeek/StudyPulse-backend/internal/middleware"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/utils"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/xp"

	"golang.org/x/crypto/bcrypt"
)

type signupPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup crée un compte (XP 0, niveau 1, badges vides) et ouvre une session
func Signup(w http.ResponseWriter, r *http.Request) {
	var payload signupPayload
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	payload.Username = strings.TrimSpace(payload.Username)
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	if len(payload.Username) < 3 {
		utils.Error(w, http.StatusBadRequest, "username must be at least 3 characters")
		return
	}
	if len(payload.Password) < 6 {
		utils.Error(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not hash password")
		return
	}

	ctx := r.Context()
	user, err := userStore.CreateUser(ctx, payload.Username, payload.Email, string(hashed))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create user: "+err.Error())
		return
	}

	token, err := utils.CreateSession(ctx, user.ID, r.RemoteAddr, r.UserAgent())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session: "+err.Error())
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login vérifie le mot de passe, ouvre une session et accorde le bonus de
// connexion quotidienne au meilleur effort
func Login(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := r.Context()
	user, passwordHash, err := userStore.FindByEmailWithPassword(ctx, strings.ToLower(strings.TrimSpace(payload.Email)))
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(payload.Password)); err != nil {
		utils.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := utils.CreateSession(ctx, user.ID, r.RemoteAddr, r.UserAgent())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session: "+err.Error())
		return
	}

	// Bonus quotidien : première connexion depuis minuit local. Un échec du
	// bookkeeping XP ne doit pas empêcher la connexion.
	if user.LastActive.Before(midnight(time.Now())) {
		if result, err := xpService.AwardXP(ctx, user.ID, xp.RewardDailyLogin, "daily_login"); err != nil {
			utils.LogError("daily login bonus failed for %s: %v", user.Username, err)
		} else {
			user.XP = result.CurrentXP
			user.Level = result.NewLevel
			user.Badges = result.Badges
		}
	}

	utils.Success(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

func Logout(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.GetTokenFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := utils.InvalidateSession(r.Context(), token); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not invalidate session")
		return
	}

	utils.Message(w, "logged out")
}

func midnight(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// mapXPError traduit la taxonomie du moteur XP en statut HTTP
func mapXPError(err error) int {
	switch {
	case errors.Is(err, xp.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, xp.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, xp.ErrStoreTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
