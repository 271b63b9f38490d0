package handler

import (
	"net/http"
	"time"

	"github.com/MassBabyGeek/StudyPulse-backend/internal/middleware"
	model "github.com/MassBabyGeek/StudyPulse-backend/internal/models"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/utils"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/xp"
	"github.com/gorilla/mux"
)

// profileCompleteBadge le badge qui matérialise la récompense unique de
// profil complété : l'idempotence par nom garantit un seul versement
const profileCompleteBadge = "Profile Complete"

func GetUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	user, err := userStore.FindByID(r.Context(), id)
	if err != nil {
		utils.Error(w, mapXPError(err), "could not get user: "+err.Error())
		return
	}

	utils.Success(w, user)
}

type updateProfilePayload struct {
	Bio       string   `json:"bio"`
	Interests []string `json:"interests"`
	Avatar    string   `json:"avatar"`
}

// UpdateUser met à jour le profil. Un profil complété (bio + centres
// d'intérêt + avatar) déclenche la récompense unique de 20 XP.
func UpdateUser(w http.ResponseWriter, r *http.Request) {
	authUser, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	vars := mux.Vars(r)
	if vars["id"] != authUser.ID {
		utils.Error(w, http.StatusForbidden, "cannot update another user's profile")
		return
	}

	var payload updateProfilePayload
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := r.Context()
	user, err := userStore.FindByID(ctx, authUser.ID)
	if err != nil {
		utils.Error(w, mapXPError(err), "could not load user: "+err.Error())
		return
	}

	user.Bio = payload.Bio
	user.Interests = payload.Interests
	if payload.Avatar != "" {
		user.Avatar = payload.Avatar
	}

	completed := user.Bio != "" && len(user.Interests) > 0 && user.Avatar != "" &&
		!user.HasBadge(profileCompleteBadge)
	if completed {
		user.Badges, _ = xp.AddBadgeOnce(user.Badges, model.Badge{
			Name:        profileCompleteBadge,
			Description: "Filled out the whole profile",
			Icon:        "📝",
			EarnedAt:    time.Now(),
		})
	}

	if err := userStore.Save(ctx, user); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update user: "+err.Error())
		return
	}

	if completed {
		if result, err := xpService.AwardXP(ctx, user.ID, xp.RewardCompleteProfile, "complete_profile"); err != nil {
			utils.LogError("profile completion bonus failed for %s: %v", user.Username, err)
		} else {
			user.XP = result.CurrentXP
			user.Level = result.NewLevel
			user.Badges = result.Badges
		}
	}

	utils.Success(w, user)
}

// UploadAvatar téléverse l'avatar vers Cloudinary et le rattache au profil
func UploadAvatar(w http.ResponseWriter, r *http.Request) {
	authUser, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if avatars == nil {
		utils.Error(w, http.StatusServiceUnavailable, "avatar upload is not configured")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer file.Close()

	ctx := r.Context()
	url, err := avatars.UploadAvatar(ctx, file, authUser.ID, header.Filename)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not upload avatar: "+err.Error())
		return
	}

	user, err := userStore.FindByID(ctx, authUser.ID)
	if err != nil {
		utils.Error(w, mapXPError(err), "could not load user: "+err.Error())
		return
	}
	user.Avatar = url
	if err := userStore.Save(ctx, user); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not save avatar: "+err.Error())
		return
	}

	utils.Success(w, map[string]string{"avatar": url})
}
