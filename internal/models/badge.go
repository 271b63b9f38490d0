package model

import (
	"time"
)

// Badge un accomplissement nommé et horodaté. Immuable une fois créé.
// Les badges de niveau ("Level N") et les médailles partagent la même
// collection, unique par nom.
type Badge struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	EarnedAt    time.Time `json:"earnedAt"`
}

// Medal une des trois récompenses de podium. Jamais persistée telle quelle :
// elle est matérialisée en Badge au moment de l'attribution.
type Medal struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Rank        int    `json:"rank"`
	Description string `json:"description"`
}

// Badge matérialise la médaille en badge, horodaté à l'attribution
func (m Medal) Badge(earnedAt time.Time) Badge {
	return Badge{
		Name:        m.Name,
		Description: m.Description,
		Icon:        m.Icon,
		EarnedAt:    earnedAt,
	}
}
