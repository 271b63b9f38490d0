package xp

import (
	model "github.com/MassBabyGeek/StudyPulse-backend/internal/models"
)

// Les trois médailles du podium. Table statique, jamais modifiée.
var (
	Gold = model.Medal{
		Name:        "Gold Medal",
		Icon:        "🥇",
		Rank:        1,
		Description: "Top rank on the leaderboard",
	}
	Silver = model.Medal{
		Name:        "Silver Medal",
		Icon:        "🥈",
		Rank:        2,
		Description: "Second rank on the leaderboard",
	}
	Bronze = model.Medal{
		Name:        "Bronze Medal",
		Icon:        "🥉",
		Rank:        3,
		Description: "Third rank on the leaderboard",
	}
)

// Medals la table des médailles, exposée aux appelants et aux réponses API
func Medals() map[string]model.Medal {
	return map[string]model.Medal{
		"GOLD":   Gold,
		"SILVER": Silver,
		"BRONZE": Bronze,
	}
}

// MedalForRank retourne la médaille du rang 1, 2 ou 3, sinon nil
func MedalForRank(rank int) *model.Medal {
	switch rank {
	case 1:
		m := Gold
		return &m
	case 2:
		m := Silver
		return &m
	case 3:
		m := Bronze
		return &m
	default:
		return nil
	}
}
