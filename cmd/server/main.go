package main

import (
	"net/http"
	"os"

	"github.com/MassBabyGeek/StudyPulse-backend/internal/api"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/config"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/database"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/handler"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/logger"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/middleware"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/services"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/store"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/xp"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	userStore := store.NewPostgres(db)
	xpService := xp.NewService(userStore)

	aiService, err := services.NewAIService(cfg)
	if err != nil {
		logger.Error("AI service init failed: %v", err)
		os.Exit(1)
	}

	// Cloudinary est optionnel : sans configuration, l'upload d'avatar
	// répond 503
	avatarService, err := services.NewCloudinaryService(cfg)
	if err != nil {
		logger.Warning("Cloudinary disabled: %v", err)
		avatarService = nil
	}

	handler.Init(xpService, aiService, userStore, avatarService)

	// Initialize routes
	router := api.SetupRouter()

	// Wrap router with CORS middleware
	h := middleware.CORSMiddleware(router)

	// Start server
	logger.Success("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, h); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
