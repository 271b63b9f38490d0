package xp_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	model "github.com/MassBabyGeek/StudyPulse-backend/internal/models"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/store"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/xp"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func seedUser(m *store.Memory, id, username string, xpAmount int) {
	m.Put(model.User{
		ID:         id,
		Username:   username,
		XP:         xpAmount,
		Level:      xp.Level(xpAmount),
		Badges:     []model.Badge{},
		LastActive: testNow.Add(-time.Hour),
	})
}

func newTestService(m *store.Memory, opts ...xp.Option) *xp.Service {
	opts = append([]xp.Option{xp.WithClock(fixedClock{testNow})}, opts...)
	return xp.NewService(m, opts...)
}

func TestAwardXP_ZeroAmount(t *testing.T) {
	t.Parallel()

	m := store.NewMemory()
	seedUser(m, "u1", "ada", 50)
	svc := newTestService(m)

	result, err := svc.AwardXP(context.Background(), "u1", 0, "noop")
	if err != nil {
		t.Fatalf("AwardXP error: %v", err)
	}

	if result.CurrentXP != 50 {
		t.Errorf("CurrentXP = %d, want 50", result.CurrentXP)
	}
	if result.LeveledUp {
		t.Error("LeveledUp should be false")
	}
	if len(result.Badges) != 0 {
		t.Errorf("no badge expected, got %+v", result.Badges)
	}

	// lastActive est quand même mis à jour sur un montant nul
	saved, _ := m.FindByID(context.Background(), "u1")
	if !saved.LastActive.Equal(testNow) {
		t.Errorf("LastActive = %v, want %v", saved.LastActive, testNow)
	}
}

func TestAwardXP_LevelUpBadge(t *testing.T) {
	t.Parallel()

	m := store.NewMemory()
	seedUser(m, "u1", "ada", 0)
	svc := newTestService(m)

	result, err := svc.AwardXP(context.Background(), "u1", 100, "quiz_completion")
	if err != nil {
		t.Fatalf("AwardXP error: %v", err)
	}

	if result.CurrentXP != 100 || result.NewLevel != 2 || !result.LeveledUp {
		t.Fatalf("unexpected result: %+v", result)
	}

	levelBadges := 0
	for _, b := range result.Badges {
		if b.Name == "Level 2" {
			levelBadges++
			if !b.EarnedAt.Equal(testNow) {
				t.Errorf("badge earnedAt = %v, want %v", b.EarnedAt, testNow)
			}
		}
	}
	if levelBadges != 1 {
		t.Fatalf("expected exactly one Level 2 badge, got %d in %+v", levelBadges, result.Badges)
	}
}

func TestAwardXP_NegativeAmount(t *testing.T) {
	t.Parallel()

	m := store.NewMemory()
	seedUser(m, "u1", "ada", 50)
	svc := newTestService(m)

	_, err := svc.AwardXP(context.Background(), "u1", -5, "cheat")
	if !errors.Is(err, xp.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if m.SaveCount() != 0 {
		t.Errorf("no store write expected, got %d", m.SaveCount())
	}
}

func TestAwardXP_UserNotFound(t *testing.T) {
	t.Parallel()

	m := store.NewMemory()
	svc := newTestService(m)

	_, err := svc.AwardXP(context.Background(), "ghost", 10, "chat_message")
	if !errors.Is(err, xp.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if m.SaveCount() != 0 {
		t.Errorf("no store write expected, got %d", m.SaveCount())
	}
}

func TestAwardXP_BronzeMedalForThirdRank(t *testing.T) {
	t.Parallel()

	m := store.NewMemory()
	seedUser(m, "u1", "first", 500)
	seedUser(m, "u2", "second", 300)
	seedUser(m, "u3", "third", 100)
	svc := newTestService(m)

	result, err := svc.AwardXP(context.Background(), "u3", 10, "quiz_completion")
	if err != nil {
		t.Fatalf("AwardXP error: %v", err)
	}

	if result.CurrentXP != 110 {
		t.Fatalf("CurrentXP = %d, want 110", result.CurrentXP)
	}

	found := false
	for _, b := range result.Badges {
		if b.Name == xp.Bronze.Name {
			found = true
		}
		if b.Name == xp.Gold.Name || b.Name == xp.Silver.Name {
			t.Errorf("unexpected medal %q for third rank", b.Name)
		}
	}
	if !found {
		t.Fatalf("expected Bronze Medal badge, got %+v", result.Badges)
	}
}

func TestAwardXP_BelowThresholdSkipsMedalCheck(t *testing.T) {
	t.Parallel()

	m := store.NewMemory()
	seedUser(m, "u1", "solo", 1000) // seul utilisateur, rang 1 assuré
	svc := newTestService(m)

	result, err := svc.AwardXP(context.Background(), "u1", xp.RewardDailyLogin, "daily_login")
	if err != nil {
		t.Fatalf("AwardXP error: %v", err)
	}

	for _, b := range result.Badges {
		if b.Name == xp.Gold.Name {
			t.Fatal("medal must not be checked below the threshold")
		}
	}
}

func TestAwardXP_MedalIdempotentAcrossCalls(t *testing.T) {
	t.Parallel()

	m := store.NewMemory()
	seedUser(m, "u1", "champ", 1000)
	svc := newTestService(m)

	first, err := svc.AwardXP(context.Background(), "u1", 50, "quiz_completion")
	if err != nil {
		t.Fatalf("first AwardXP error: %v", err)
	}
	second, err := svc.AwardXP(context.Background(), "u1", 50, "quiz_completion")
	if err != nil {
		t.Fatalf("second AwardXP error: %v", err)
	}

	countGold := func(badges []model.Badge) int {
		n := 0
		for _, b := range badges {
			if b.Name == xp.Gold.Name {
				n++
			}
		}
		return n
	}
	if countGold(first.Badges) != 1 || countGold(second.Badges) != 1 {
		t.Fatalf("expected exactly one Gold Medal after repeated awards, got %d then %d",
			countGold(first.Badges), countGold(second.Badges))
	}
}

// slowStore bloque toute lecture jusqu'à l'expiration du contexte
type slowStore struct {
	*store.Memory
}

func (s slowStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestAwardXP_StoreTimeout(t *testing.T) {
	t.Parallel()

	m := store.NewMemory()
	seedUser(m, "u1", "ada", 0)
	svc := xp.NewService(slowStore{m},
		xp.WithClock(fixedClock{testNow}),
		xp.WithStoreTimeout(20*time.Millisecond))

	_, err := svc.AwardXP(context.Background(), "u1", 10, "chat_message")
	if !errors.Is(err, xp.ErrStoreTimeout) {
		t.Fatalf("expected ErrStoreTimeout, got %v", err)
	}
	if m.SaveCount() != 0 {
		t.Errorf("no store write expected, got %d", m.SaveCount())
	}
}

// failingFindStore fait échouer la lecture du classement mais laisse passer
// tout le reste
type failingFindStore struct {
	*store.Memory
}

func (f failingFindStore) Find(ctx context.Context, q xp.UserQuery) ([]model.User, error) {
	return nil, errors.New("ranking exploded")
}

func TestAwardXP_RankingFailureDoesNotAbortAward(t *testing.T) {
	t.Parallel()

	m := store.NewMemory()
	seedUser(m, "u1", "ada", 0)
	svc := xp.NewService(failingFindStore{m}, xp.WithClock(fixedClock{testNow}))

	result, err := svc.AwardXP(context.Background(), "u1", 100, "quiz_completion")
	if err != nil {
		t.Fatalf("award must survive a ranking failure, got %v", err)
	}

	// XP, niveau et badge de niveau sont quand même persistés
	if result.CurrentXP != 100 || result.NewLevel != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
	saved, _ := m.FindByID(context.Background(), "u1")
	if saved.XP != 100 || !saved.HasBadge("Level 2") {
		t.Fatalf("level-up not persisted: %+v", saved)
	}
}

func TestAwardXP_AtomicIncrementPath(t *testing.T) {
	t.Parallel()

	m := store.NewMemory()
	seedUser(m, "u1", "ada", 90)
	svc := newTestService(m, xp.WithAtomicXP())

	result, err := svc.AwardXP(context.Background(), "u1", 10, "quiz_completion")
	if err != nil {
		t.Fatalf("AwardXP error: %v", err)
	}
	if result.CurrentXP != 100 || result.NewLevel != 2 || !result.LeveledUp {
		t.Fatalf("unexpected result: %+v", result)
	}
}

// L'incrément atomique du store ne perd aucune mise à jour sous concurrence,
// contrairement au load-modify-save par défaut (limite documentée du design
// d'origine).
func TestIncrementXP_NoLostUpdates(t *testing.T) {
	t.Parallel()

	m := store.NewMemory()
	seedUser(m, "u1", "ada", 0)

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := m.IncrementXP(context.Background(), "u1", 2); err != nil {
				t.Errorf("IncrementXP error: %v", err)
			}
		}()
	}
	wg.Wait()

	user, err := m.FindByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if user.XP != workers*2 {
		t.Fatalf("XP = %d, want %d (lost updates)", user.XP, workers*2)
	}
}
