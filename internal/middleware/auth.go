package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/MassBabyGeek/StudyPulse-backend/internal/database"
	model "github.com/MassBabyGeek/StudyPulse-backend/internal/models"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/scanner"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/utils"
	"github.com/jackc/pgx/v5"
)

// Context keys
type contextKey string

const (
	userContextKey  = contextKey("user")
	tokenContextKey = contextKey("token")
)

// AuthMiddleware valide le token et injecte l'utilisateur dans le contexte
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			utils.Error(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		user, err := validateTokenAndGetUser(r.Context(), token)
		if err != nil {
			utils.Error(w, http.StatusUnauthorized, fmt.Sprintf("invalid token: %v", err))
			return
		}

		// Injecter l'utilisateur et le token dans le contexte
		ctx := context.WithValue(r.Context(), userContextKey, *user)
		ctx = context.WithValue(ctx, tokenContextKey, token)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth attache l'utilisateur au contexte si un token valide est
// présent, sans bloquer la requête sinon
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token != "" {
			if user, err := validateTokenAndGetUser(r.Context(), token); err == nil {
				ctx := context.WithValue(r.Context(), userContextKey, *user)
				ctx = context.WithValue(ctx, tokenContextKey, token)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// validateTokenAndGetUser valide le token de session et retourne
// l'utilisateur associé
func validateTokenAndGetUser(ctx context.Context, token string) (*model.User, error) {
	row := database.DB.QueryRow(ctx, `
		SELECT `+userColumnsPrefixed+`
		FROM users u
		JOIN sessions s ON u.id = s.user_id
		WHERE s.token = $1
			AND s.is_active = true
			AND s.expires_at > NOW()
			AND u.deleted_at IS NULL
			AND s.deleted_at IS NULL`,
		token,
	)

	user, err := scanner.ScanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("token not found or expired")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return user, nil
}

const userColumnsPrefixed = `
	u.id, u.username, u.email, u.avatar, u.bio, u.interests,
	u.xp, u.level, u.badges, u.quiz_history, u.study_plans,
	u.total_quizzes, u.total_correct, u.average_score,
	u.last_active, u.join_date, u.created_at, u.updated_at`

// GetUserFromContext récupère l'utilisateur depuis le contexte de la requête
func GetUserFromContext(r *http.Request) (model.User, error) {
	user, ok := r.Context().Value(userContextKey).(model.User)
	if !ok {
		return model.User{}, fmt.Errorf("user not found in context")
	}
	return user, nil
}

// GetTokenFromContext récupère le token depuis le contexte de la requête
func GetTokenFromContext(r *http.Request) (string, error) {
	token, ok := r.Context().Value(tokenContextKey).(string)
	if !ok || token == "" {
		return "", fmt.Errorf("token not found in context")
	}
	return token, nil
}
