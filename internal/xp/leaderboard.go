package xp

import (
	"context"
	"time"

	model "github.com/MassBabyGeek/StudyPulse-backend/internal/models"
)

// Périodes du classement. Le filtre porte sur lastActive : un classement
// "daily" liste les utilisateurs actifs aujourd'hui, pas l'XP gagné
// aujourd'hui. Comportement voulu, à conserver.
const (
	TimeframeAll     = "all"
	TimeframeDaily   = "daily"
	TimeframeWeekly  = "weekly"
	TimeframeMonthly = "monthly"
)

// LeaderboardOptions options de lecture du classement. Les valeurs absentes
// ou invalides retombent sur les défauts (all, page 1, limite 10, tri xp).
type LeaderboardOptions struct {
	Timeframe string
	Page      int
	Limit     int
	MinXP     int
	SortBy    string
}

func (o *LeaderboardOptions) normalize() {
	switch o.Timeframe {
	case TimeframeDaily, TimeframeWeekly, TimeframeMonthly:
	default:
		o.Timeframe = TimeframeAll
	}
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit < 1 {
		o.Limit = 10
	}
	if o.MinXP < 0 {
		o.MinXP = 0
	}
	switch o.SortBy {
	case SortByLevel, SortByQuizzes, SortByAccuracy, SortByRecent:
	default:
		o.SortBy = SortByXP
	}
}

// TimeframeCutoff borne inférieure de lastActive pour la période donnée.
// Zéro pour "all". daily = minuit local, weekly = maintenant - 7 jours,
// monthly = maintenant - 1 mois calendaire.
func TimeframeCutoff(timeframe string, now time.Time) time.Time {
	switch timeframe {
	case TimeframeDaily:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case TimeframeWeekly:
		return now.AddDate(0, 0, -7)
	case TimeframeMonthly:
		return now.AddDate(0, -1, 0)
	default:
		return time.Time{}
	}
}

// GetLeaderboard calcule une page de classement filtrée, triée et paginée.
// Les médailles ne sont annotées qu'en première page, aux index 0 à 2 du tri
// demandé — ce qui peut différer du top 3 par XP utilisé par AwardXP pour
// l'attribution. Les deux comportements sont volontairement distincts.
func (s *Service) GetLeaderboard(ctx context.Context, opts LeaderboardOptions) (*model.LeaderboardPage, error) {
	opts.normalize()

	query := UserQuery{
		MinXP:       opts.MinXP,
		ActiveSince: TimeframeCutoff(opts.Timeframe, s.clock.Now()),
		SortBy:      opts.SortBy,
		Skip:        (opts.Page - 1) * opts.Limit,
		Limit:       opts.Limit,
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	total, err := s.store.Count(cctx, query)
	if err != nil {
		return nil, storeErr(err)
	}

	users, err := s.store.Find(cctx, query)
	if err != nil {
		return nil, storeErr(err)
	}

	entries := make([]model.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entry := model.LeaderboardEntry{
			ID:         u.ID,
			Username:   u.Username,
			XP:         u.XP,
			Level:      u.Level,
			Badges:     u.Badges,
			Avatar:     u.Avatar,
			LastActive: u.LastActive,
			QuizStats:  u.QuizStats,
			Rank:       query.Skip + i + 1,
		}
		if entry.Badges == nil {
			entry.Badges = []model.Badge{}
		}
		if entry.Level < 1 {
			entry.Level = 1
		}
		if opts.Page == 1 {
			entry.Medal = MedalForRank(i + 1)
		}
		entries = append(entries, entry)
	}

	pages := total / opts.Limit
	if total%opts.Limit != 0 {
		pages++
	}

	return &model.LeaderboardPage{
		Users: entries,
		Pagination: model.Pagination{
			Total:       total,
			Pages:       pages,
			CurrentPage: opts.Page,
			HasMore:     query.Skip+len(entries) < total,
		},
		SortedBy: opts.SortBy,
		Medals:   Medals(),
	}, nil
}
