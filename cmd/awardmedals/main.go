// Outil ponctuel : attribue les médailles aux trois premiers du classement
// global par XP. À lancer une fois après une migration ou un reset.
package main

import (
	"context"
	"os"
	"time"

	"github.com/MassBabyGeek/StudyPulse-backend/internal/config"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/database"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/logger"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/store"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/xp"
	"github.com/fatih/color"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userStore := store.NewPostgres(db)

	top, err := userStore.Find(ctx, xp.UserQuery{SortBy: xp.SortByXP, Limit: 3})
	if err != nil {
		logger.Error("Could not fetch top users: %v", err)
		os.Exit(1)
	}

	logger.Info("Found %d top users to award medals to", len(top))

	awarded := 0
	for i := range top {
		medal := xp.MedalForRank(i + 1)
		if medal == nil {
			break
		}

		user := &top[i]
		var added bool
		user.Badges, added = xp.AddBadgeOnce(user.Badges, medal.Badge(time.Now()))
		if !added {
			color.Yellow("%s already has the %s", user.Username, medal.Name)
			continue
		}

		if err := userStore.Save(ctx, user); err != nil {
			logger.Error("Could not save %s: %v", user.Username, err)
			os.Exit(1)
		}

		color.Green("%s %s awarded to %s (%d XP)", medal.Icon, medal.Name, user.Username, user.XP)
		awarded++
	}

	logger.Success("Done: %d medal(s) awarded", awarded)
}
