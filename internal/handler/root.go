package handler

import (
	"net/http"

	"github.com/MassBabyGeek/StudyPulse-backend/internal/utils"
)

// RootHandler documentation sommaire de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	utils.Success(w, map[string]interface{}{
		"name":    "StudyPulse API",
		"version": "1.0",
		"endpoints": map[string]string{
			"POST /auth/signup":                   "create an account",
			"POST /auth/login":                    "log in, daily XP bonus",
			"POST /auth/logout":                   "invalidate the session",
			"GET /users/{id}":                     "public profile",
			"PUT /users/{id}":                     "update profile (one-time completion bonus)",
			"POST /users/{id}/avatar":             "upload avatar",
			"POST /chat/message":                  "talk to the assistant (+2/+5 XP)",
			"POST /quiz/generate":                 "AI-generated quiz",
			"POST /quiz/submit":                   "grade a quiz (+10 XP per correct answer)",
			"GET /quiz/history/{userId}":          "quiz history",
			"GET /progress/{userId}":              "progress document",
			"POST /progress/xp":                   "direct XP award",
			"GET /progress/study-plans/{userId}":  "study plans",
			"POST /progress/study-plans":          "create a study plan",
			"GET /leaderboard":                    "filtered, sorted, paginated leaderboard",
			"GET /leaderboard/rank/{userId}":      "a user's rank and percentile",
			"GET /leaderboard/top":                "dashboard widget top performers",
			"GET /health":                         "health check",
		},
	})
}
