package xp

import (
	"context"
	"time"

	model "github.com/MassBabyGeek/StudyPulse-backend/internal/models"
)

// Tris supportés par le classement
const (
	SortByXP       = "xp"
	SortByLevel    = "level"
	SortByQuizzes  = "quizzes"
	SortByAccuracy = "accuracy"
	SortByRecent   = "recent"
)

// UserQuery filtre + tri + pagination d'une lecture du store.
// ActiveSince à zéro signifie "pas de filtre temporel" ; Limit <= 0
// signifie "pas de limite".
type UserQuery struct {
	MinXP       int
	ActiveSince time.Time
	SortBy      string
	Skip        int
	Limit       int
}

// UserStore le contrat du store externe consommé par le moteur.
// Save est un enregistrement document-entier, last-write-wins.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	Find(ctx context.Context, q UserQuery) ([]model.User, error)
	Count(ctx context.Context, q UserQuery) (int, error)
	Save(ctx context.Context, user *model.User) error
}

// XPIncrementer primitive optionnelle d'incrément atomique côté store,
// utilisée par le service quand l'option WithAtomicXP est activée.
// Retourne le document après incrément.
type XPIncrementer interface {
	IncrementXP(ctx context.Context, id string, amount int) (*model.User, error)
}

// Clock horloge injectable pour les tests
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
