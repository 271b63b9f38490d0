package api

import (
	"net/http"

	"github.com/MassBabyGeek/StudyPulse-backend/internal/handler"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/middleware"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/utils"
	"github.com/fatih/color"
	"github.com/gorilla/mux"
)

func SetupRouter() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.OptionalAuth)

	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(middleware.AuthMiddleware)
	authenticatedRoutes.Use(middleware.LoggerMiddleware)

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/auth/signup", handler.Signup).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodPost)

	// Users
	r.HandleFunc("/users/{id}", handler.GetUser).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/users/{id}", handler.UpdateUser).Methods(http.MethodPut, http.MethodPatch)
	authenticatedRoutes.HandleFunc("/users/{id}/avatar", handler.UploadAvatar).Methods(http.MethodPost)

	// Chat
	authenticatedRoutes.HandleFunc("/chat/message", handler.SendMessage).Methods(http.MethodPost)

	// Quiz
	authenticatedRoutes.HandleFunc("/quiz/generate", handler.GenerateQuiz).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/quiz/submit", handler.SubmitQuiz).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/quiz/history/{userId}", handler.GetQuizHistory).Methods(http.MethodGet)

	// Progress
	authenticatedRoutes.HandleFunc("/progress/xp", handler.UpdateXP).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/progress/study-plans", handler.CreateStudyPlan).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/progress/study-plans/{userId}", handler.GetStudyPlans).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/progress/{userId}", handler.GetProgress).Methods(http.MethodGet)

	// Leaderboard
	authenticatedRoutes.HandleFunc("/leaderboard", handler.GetLeaderboard).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/leaderboard/rank/{userId}", handler.GetUserRank).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/leaderboard/top", handler.GetTopPerformers).Methods(http.MethodGet)

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.LogError("404 Not Found: %s %s", r.Method, r.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
