package xp

import (
	"fmt"
	"time"

	model "github.com/MassBabyGeek/StudyPulse-backend/internal/models"
)

// AddBadgeOnce ajoute le badge seulement si aucun badge du même nom n'existe
// déjà. C'est l'unique mécanisme d'idempotence protégeant contre les doubles
// attributions : le earnedAt du premier ajout est toujours conservé.
func AddBadgeOnce(badges []model.Badge, candidate model.Badge) ([]model.Badge, bool) {
	for _, b := range badges {
		if b.Name == candidate.Name {
			return badges, false
		}
	}
	return append(badges, candidate), true
}

// LevelBadge construit le badge d'un passage de niveau
func LevelBadge(level int, earnedAt time.Time) model.Badge {
	return model.Badge{
		Name:        fmt.Sprintf("Level %d", level),
		Description: fmt.Sprintf("Reached level %d", level),
		Icon:        "🏆",
		EarnedAt:    earnedAt,
	}
}
