package handler

import (
	"errors"
	"net/http"

	"github.com/MassBabyGeek/StudyPulse-backend/internal/middleware"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/services"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/utils"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/xp"
)

type chatPayload struct {
	Message      string `json:"message"`
	IsStudyDoubt bool   `json:"isStudyDoubt"`
}

type xpSummary struct {
	Awarded   int  `json:"awarded"`
	Total     int  `json:"total"`
	Level     int  `json:"level"`
	LeveledUp bool `json:"leveledUp"`
}

// SendMessage transmet le message à l'assistant IA puis attribue l'XP de
// chat. La réponse de l'assistant prime : un échec du bookkeeping XP est
// signalé dans la réponse mais ne la fait pas échouer.
func SendMessage(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var payload chatPayload
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.Message == "" {
		utils.Error(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := aiService.Chat(r.Context(), payload.Message)
	if err != nil {
		if errors.Is(err, services.ErrRateLimited) {
			utils.Error(w, http.StatusTooManyRequests, "assistant is rate limited, try again later")
			return
		}
		utils.Error(w, http.StatusBadGateway, "assistant unavailable: "+err.Error())
		return
	}

	reward := xp.RewardChatMessage
	action := "chat_message"
	if payload.IsStudyDoubt {
		reward = xp.RewardStudyDoubt
		action = "study_doubt"
	}

	response := map[string]interface{}{"reply": reply}
	if result, err := xpService.AwardXP(r.Context(), user.ID, reward, action); err != nil {
		utils.LogError("chat xp award failed for %s: %v", user.Username, err)
		response["xpError"] = "xp bookkeeping failed"
	} else {
		response["xp"] = xpSummary{
			Awarded:   reward,
			Total:     result.CurrentXP,
			Level:     result.NewLevel,
			LeveledUp: result.LeveledUp,
		}
	}

	utils.Success(w, response)
}
