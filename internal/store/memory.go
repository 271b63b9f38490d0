package store

import (
	"context"
	"sort"
	"sync"

	model "github.com/MassBabyGeek/StudyPulse-backend/internal/models"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/xp"
)

// Memory implémente xp.UserStore en mémoire, pour les tests et le
// développement local. Chaque lecture retourne des copies.
type Memory struct {
	mu    sync.Mutex
	users map[string]model.User
	saves int
}

func NewMemory() *Memory {
	return &Memory{users: make(map[string]model.User)}
}

// Put insère ou remplace un utilisateur (amorçage des tests)
func (m *Memory) Put(user model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

// SaveCount nombre d'écritures effectuées via Save
func (m *Memory) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *Memory) FindByID(ctx context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, xp.ErrUserNotFound
	}
	copied := cloneUser(user)
	return &copied, nil
}

func (m *Memory) Find(ctx context.Context, q xp.UserQuery) ([]model.User, error) {
	m.mu.Lock()
	matched := m.matchLocked(q)
	m.mu.Unlock()

	sortUsers(matched, q.SortBy)

	if q.Skip >= len(matched) {
		return nil, nil
	}
	matched = matched[q.Skip:]
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func (m *Memory) Count(ctx context.Context, q xp.UserQuery) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.matchLocked(q)), nil
}

func (m *Memory) Save(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return xp.ErrUserNotFound
	}
	m.users[user.ID] = cloneUser(*user)
	m.saves++
	return nil
}

// IncrementXP incrément atomique sous le verrou du store
func (m *Memory) IncrementXP(ctx context.Context, id string, amount int) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, xp.ErrUserNotFound
	}
	user.XP += amount
	m.users[id] = user
	copied := cloneUser(user)
	return &copied, nil
}

func (m *Memory) matchLocked(q xp.UserQuery) []model.User {
	var matched []model.User
	for _, u := range m.users {
		if u.XP < q.MinXP {
			continue
		}
		if !q.ActiveSince.IsZero() && u.LastActive.Before(q.ActiveSince) {
			continue
		}
		matched = append(matched, cloneUser(u))
	}
	return matched
}

func sortUsers(users []model.User, sortBy string) {
	// Tri primaire décroissant puis tie-breaks stables, mêmes clés que le
	// store Postgres
	less := func(a, b model.User) bool {
		switch sortBy {
		case xp.SortByLevel:
			if a.Level != b.Level {
				return a.Level > b.Level
			}
		case xp.SortByQuizzes:
			if a.QuizStats.TotalQuizzes != b.QuizStats.TotalQuizzes {
				return a.QuizStats.TotalQuizzes > b.QuizStats.TotalQuizzes
			}
		case xp.SortByAccuracy:
			if a.QuizStats.AverageScore != b.QuizStats.AverageScore {
				return a.QuizStats.AverageScore > b.QuizStats.AverageScore
			}
		case xp.SortByRecent:
			if !a.LastActive.Equal(b.LastActive) {
				return a.LastActive.After(b.LastActive)
			}
			return a.XP > b.XP
		}
		if a.XP != b.XP {
			return a.XP > b.XP
		}
		return a.LastActive.After(b.LastActive)
	}
	sort.SliceStable(users, func(i, j int) bool { return less(users[i], users[j]) })
}

func cloneUser(u model.User) model.User {
	u.Badges = append([]model.Badge(nil), u.Badges...)
	u.QuizHistory = append([]model.QuizRecord(nil), u.QuizHistory...)
	u.StudyPlans = append([]model.StudyPlan(nil), u.StudyPlans...)
	u.Interests = append([]string(nil), u.Interests...)
	return u
}
