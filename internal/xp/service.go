package xp

import (
	"context"
	"errors"
	"fmt"
	"time"

	model "github.com/MassBabyGeek/StudyPulse-backend/internal/models"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/utils"
)

// DefaultStoreTimeout délai maximal accordé à chaque appel du store
const DefaultStoreTimeout = 10 * time.Second

// Service le moteur XP/niveaux/médailles/classement.
//
// Le chemin par défaut d'AwardXP est un load-modify-save document-entier,
// fidèle au comportement d'origine : deux attributions concurrentes pour le
// même utilisateur peuvent se perdre mutuellement une mise à jour (lost
// update). L'option WithAtomicXP bascule l'incrément d'XP sur la primitive
// atomique du store quand il la fournit : le compteur d'XP ne perd alors
// plus d'incrément, mais niveau et badges restent en last-write-wins.
type Service struct {
	store    UserStore
	clock    Clock
	timeout  time.Duration
	atomicXP bool
}

type Option func(*Service)

// WithClock remplace l'horloge système (tests)
func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithStoreTimeout remplace le délai par défaut des appels au store
func WithStoreTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// WithAtomicXP active l'incrément atomique d'XP si le store l'implémente
func WithAtomicXP() Option {
	return func(s *Service) { s.atomicXP = true }
}

func NewService(store UserStore, opts ...Option) *Service {
	s := &Service{
		store:   store,
		clock:   systemClock{},
		timeout: DefaultStoreTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AwardXP attribue de l'XP à un utilisateur : recalcule le niveau, détecte
// le passage de niveau, attribue les badges de niveau et, au-delà du seuil,
// vérifie le podium pour une éventuelle médaille, puis persiste.
func (s *Service) AwardXP(ctx context.Context, userID string, amount int, action string) (*model.XPAwardResult, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: %d (%s)", ErrInvalidAmount, amount, action)
	}

	user, previousLevel, err := s.loadAndIncrement(ctx, userID, amount)
	if err != nil {
		return nil, err
	}

	user.Level = Level(user.XP)
	user.LastActive = s.clock.Now()

	// Badge de passage de niveau
	if user.Level > previousLevel {
		user.Badges, _ = AddBadgeOnce(user.Badges, LevelBadge(user.Level, s.clock.Now()))
	}

	// Vérification du podium, au meilleur effort : un échec du classement ne
	// doit jamais faire échouer l'attribution elle-même
	if amount >= MedalCheckThreshold {
		if err := s.checkMedal(ctx, user); err != nil {
			utils.LogError("medal check failed for %s: %v", user.Username, err)
		}
	}

	if err := s.save(ctx, user); err != nil {
		return nil, err
	}

	return &model.XPAwardResult{
		UserID:    user.ID,
		Username:  user.Username,
		CurrentXP: user.XP,
		XPGained:  amount,
		NewLevel:  user.Level,
		LeveledUp: user.Level > previousLevel,
		Badges:    user.Badges,
	}, nil
}

// loadAndIncrement charge l'utilisateur avec l'XP déjà incrémenté.
// Chemin par défaut : lecture puis addition en mémoire. Chemin atomique :
// UPDATE ... SET xp = xp + n ... RETURNING côté store.
func (s *Service) loadAndIncrement(ctx context.Context, userID string, amount int) (*model.User, int, error) {
	if s.atomicXP {
		if inc, ok := s.store.(XPIncrementer); ok {
			cctx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()
			user, err := inc.IncrementXP(cctx, userID, amount)
			if err != nil {
				return nil, 0, storeErr(err)
			}
			// Le niveau stocké reflète encore l'XP d'avant incrément
			return user, user.Level, nil
		}
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	user, err := s.store.FindByID(cctx, userID)
	if err != nil {
		return nil, 0, storeErr(err)
	}
	previousLevel := user.Level
	user.XP += amount
	return user, previousLevel, nil
}

// checkMedal regarde si l'utilisateur figure dans le top 3 global par XP
// décroissant (toutes périodes confondues) et ajoute la médaille du rang
func (s *Service) checkMedal(ctx context.Context, user *model.User) error {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	top, err := s.store.Find(cctx, UserQuery{SortBy: SortByXP, Limit: 3})
	if err != nil {
		return storeErr(err)
	}

	for i := range top {
		if top[i].ID != user.ID {
			continue
		}
		medal := MedalForRank(i + 1)
		if medal == nil {
			break
		}
		var added bool
		user.Badges, added = AddBadgeOnce(user.Badges, medal.Badge(s.clock.Now()))
		if added {
			utils.LogInfo("Medal %s awarded to %s", medal.Name, user.Username)
		}
		break
	}
	return nil
}

func (s *Service) save(ctx context.Context, user *model.User) error {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.store.Save(cctx, user); err != nil {
		return storeErr(err)
	}
	return nil
}

// storeErr traduit les dépassements de délai en ErrStoreTimeout
func storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrStoreTimeout, err)
	}
	return err
}
