package handler

import (
	"net/http"

	"github.com/MassBabyGeek/StudyPulse-backend/internal/services"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/store"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/utils"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/xp"
)

// Dépendances partagées des handlers, injectées au démarrage
var (
	xpService *xp.Service
	aiService *services.AIService
	userStore *store.Postgres
	avatars   *services.CloudinaryService
)

// Init câble les services dans les handlers. avatarSvc peut être nil si
// Cloudinary n'est pas configuré.
func Init(svc *xp.Service, ai *services.AIService, st *store.Postgres, avatarSvc *services.CloudinaryService) {
	xpService = svc
	aiService = ai
	userStore = st
	avatars = avatarSvc
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.Message(w, "ok")
}
