package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MassBabyGeek/StudyPulse-backend/internal/database"
	model "github.com/MassBabyGeek/StudyPulse-backend/internal/models"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/utils"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/xp"
	"github.com/gorilla/mux"
)

func queryInt(r *http.Request, key string, fallback int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

// GetLeaderboard récupère le classement général.
// Pour le classement global (all/page 1/tri xp), les médailles annotées sont
// aussi persistées chez les trois premiers, au meilleur effort.
func GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	opts := xp.LeaderboardOptions{
		Timeframe: r.URL.Query().Get("timeframe"),
		Page:      queryInt(r, "page", 1),
		Limit:     queryInt(r, "limit", 10),
		MinXP:     queryInt(r, "minXp", 0),
		SortBy:    r.URL.Query().Get("sortBy"),
	}

	page, err := xpService.GetLeaderboard(r.Context(), opts)
	if err != nil {
		utils.Error(w, mapXPError(err), "could not fetch leaderboard: "+err.Error())
		return
	}

	if (opts.Timeframe == "" || opts.Timeframe == xp.TimeframeAll) &&
		page.Pagination.CurrentPage == 1 && page.SortedBy == xp.SortByXP {
		persistTopMedals(r, page)
	}

	utils.Success(w, page)
}

// persistTopMedals enregistre les médailles du podium chez leurs détenteurs.
// Les échecs sont loggés et avalés, jamais propagés à la réponse.
func persistTopMedals(r *http.Request, page *model.LeaderboardPage) {
	for _, entry := range page.Users {
		if entry.Medal == nil {
			continue
		}
		user, err := userStore.FindByID(r.Context(), entry.ID)
		if err != nil {
			utils.LogError("medal persistence: could not load %s: %v", entry.Username, err)
			continue
		}
		var added bool
		user.Badges, added = xp.AddBadgeOnce(user.Badges, entry.Medal.Badge(time.Now()))
		if !added {
			continue
		}
		if err := userStore.Save(r.Context(), user); err != nil {
			utils.LogError("medal persistence: could not save %s: %v", entry.Username, err)
			continue
		}
		utils.LogInfo("Medal %s awarded to %s", entry.Medal.Name, entry.Username)
	}
}

// GetUserRank récupère le rang d'un utilisateur dans le classement,
// calculé en comptant les utilisateurs ayant strictement plus d'XP
func GetUserRank(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]
	timeframe := r.URL.Query().Get("timeframe")

	ctx := r.Context()
	user, err := userStore.FindByID(ctx, userID)
	if err != nil {
		utils.Error(w, mapXPError(err), "could not load user: "+err.Error())
		return
	}

	cutoff := xp.TimeframeCutoff(timeframe, time.Now())

	countQuery := `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`
	args := []interface{}{}
	if !cutoff.IsZero() {
		args = append(args, cutoff)
		countQuery += " AND last_active >= $1"
	}

	var totalUsers int
	if err := database.DB.QueryRow(ctx, countQuery, args...).Scan(&totalUsers); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not count users: "+err.Error())
		return
	}

	aboveQuery := countQuery + " AND xp > $" + strconv.Itoa(len(args)+1)
	args = append(args, user.XP)

	var above int
	if err := database.DB.QueryRow(ctx, aboveQuery, args...).Scan(&above); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not compute rank: "+err.Error())
		return
	}

	rank := above + 1
	percentile := 100
	if totalUsers > 0 {
		percentile = int(float64(totalUsers-above) / float64(totalUsers) * 100)
	}

	utils.Success(w, map[string]interface{}{
		"userId":     user.ID,
		"username":   user.Username,
		"xp":         user.XP,
		"level":      user.Level,
		"rank":       rank,
		"totalUsers": totalUsers,
		"percentile": percentile,
		"medal":      xp.MedalForRank(rank),
	})
}

// GetTopPerformers retourne le haut du classement d'une période, pour les
// widgets du tableau de bord (par défaut : top 5 hebdomadaire)
func GetTopPerformers(w http.ResponseWriter, r *http.Request) {
	timeframe := r.URL.Query().Get("timeframe")
	if timeframe == "" {
		timeframe = xp.TimeframeWeekly
	}

	page, err := xpService.GetLeaderboard(r.Context(), xp.LeaderboardOptions{
		Timeframe: timeframe,
		Page:      1,
		Limit:     queryInt(r, "limit", 5),
	})
	if err != nil {
		utils.Error(w, mapXPError(err), "could not fetch top performers: "+err.Error())
		return
	}

	utils.Success(w, page.Users)
}
