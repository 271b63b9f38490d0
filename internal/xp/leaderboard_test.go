package xp_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	model "github.com/MassBabyGeek/StudyPulse-backend/internal/models"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/store"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/xp"
)

// seedPopulation insère n utilisateurs avec 10*i XP, tous actifs récemment
func seedPopulation(m *store.Memory, n int) {
	for i := 1; i <= n; i++ {
		m.Put(model.User{
			ID:         fmt.Sprintf("u%02d", i),
			Username:   fmt.Sprintf("user%02d", i),
			XP:         i * 10,
			Level:      xp.Level(i * 10),
			Badges:     []model.Badge{},
			LastActive: testNow.Add(-time.Duration(i) * time.Minute),
		})
	}
}

func TestGetLeaderboard_Pagination(t *testing.T) {
	t.Parallel()

	m := store.NewMemory()
	seedPopulation(m, 25)
	svc := newTestService(m)

	page1, err := svc.GetLeaderboard(context.Background(), xp.LeaderboardOptions{Limit: 10})
	if err != nil {
		t.Fatalf("GetLeaderboard error: %v", err)
	}

	if len(page1.Users) != 10 {
		t.Fatalf("page 1: %d entries, want 10", len(page1.Users))
	}
	if page1.Pagination.Total != 25 || page1.Pagination.Pages != 3 || !page1.Pagination.HasMore {
		t.Fatalf("page 1 pagination: %+v", page1.Pagination)
	}
	for i, entry := range page1.Users {
		if entry.Rank != i+1 {
			t.Errorf("entry %d rank = %d, want %d", i, entry.Rank, i+1)
		}
		if i < 3 && entry.Medal == nil {
			t.Errorf("entry %d should carry a medal on page 1", i)
		}
		if i >= 3 && entry.Medal != nil {
			t.Errorf("entry %d should not carry a medal", i)
		}
	}
	// Tri xp décroissant : le premier est l'utilisateur à 250 XP
	if page1.Users[0].XP != 250 {
		t.Errorf("top entry XP = %d, want 250", page1.Users[0].XP)
	}

	page3, err := svc.GetLeaderboard(context.Background(), xp.LeaderboardOptions{Page: 3, Limit: 10})
	if err != nil {
		t.Fatalf("GetLeaderboard page 3 error: %v", err)
	}
	if len(page3.Users) != 5 {
		t.Fatalf("page 3: %d entries, want 5", len(page3.Users))
	}
	if page3.Pagination.HasMore {
		t.Error("page 3 must have hasMore=false")
	}
	if page3.Users[0].Rank != 21 || page3.Users[4].Rank != 25 {
		t.Errorf("page 3 ranks: %d..%d, want 21..25", page3.Users[0].Rank, page3.Users[4].Rank)
	}
	// Jamais de médaille hors première page, quel que soit le rang
	for _, entry := range page3.Users {
		if entry.Medal != nil {
			t.Errorf("entry rank %d carries a medal off page 1", entry.Rank)
		}
	}
}

func TestGetLeaderboard_SortByAccuracy(t *testing.T) {
	t.Parallel()

	m := store.NewMemory()
	m.Put(model.User{ID: "a", Username: "lowXpSharp", XP: 10, Level: 1,
		QuizStats: model.QuizStats{AverageScore: 9.5}, LastActive: testNow})
	m.Put(model.User{ID: "b", Username: "highXpBlunt", XP: 900, Level: 4,
		QuizStats: model.QuizStats{AverageScore: 3.0}, LastActive: testNow})
	m.Put(model.User{ID: "c", Username: "midXpSharp", XP: 500, Level: 3,
		QuizStats: model.QuizStats{AverageScore: 9.5}, LastActive: testNow})
	svc := newTestService(m)

	page, err := svc.GetLeaderboard(context.Background(), xp.LeaderboardOptions{SortBy: xp.SortByAccuracy})
	if err != nil {
		t.Fatalf("GetLeaderboard error: %v", err)
	}

	// averageScore décroissant, xp en départage. Le rang suit ce tri, pas
	// le tri par XP utilisé en interne par l'attribution de médailles.
	wantOrder := []string{"c", "a", "b"}
	for i, want := range wantOrder {
		if page.Users[i].ID != want {
			t.Fatalf("position %d = %s, want %s (order %+v)", i, page.Users[i].ID, want, page.Users)
		}
		if page.Users[i].Rank != i+1 {
			t.Errorf("position %d rank = %d, want %d", i, page.Users[i].Rank, i+1)
		}
	}
	// Le podium annoté suit le tri demandé : l'or revient au meilleur
	// averageScore, pas au plus gros XP
	if page.Users[0].Medal == nil || page.Users[0].Medal.Name != xp.Gold.Name {
		t.Errorf("accuracy leader should carry the Gold annotation, got %+v", page.Users[0].Medal)
	}
}

func TestGetLeaderboard_TimeframeDaily(t *testing.T) {
	t.Parallel()

	m := store.NewMemory()
	m.Put(model.User{ID: "today", Username: "today", XP: 10, Level: 1,
		LastActive: testNow.Add(-time.Hour)})
	m.Put(model.User{ID: "yesterday", Username: "yesterday", XP: 999, Level: 4,
		LastActive: testNow.Add(-30 * time.Hour)})
	svc := newTestService(m)

	page, err := svc.GetLeaderboard(context.Background(), xp.LeaderboardOptions{Timeframe: xp.TimeframeDaily})
	if err != nil {
		t.Fatalf("GetLeaderboard error: %v", err)
	}

	// Le filtre porte sur lastActive, pas sur l'XP gagné dans la fenêtre
	if len(page.Users) != 1 || page.Users[0].ID != "today" {
		t.Fatalf("daily leaderboard should only list users active since midnight, got %+v", page.Users)
	}
}

func TestGetLeaderboard_MinXPFilter(t *testing.T) {
	t.Parallel()

	m := store.NewMemory()
	seedPopulation(m, 10) // XP 10..100
	svc := newTestService(m)

	page, err := svc.GetLeaderboard(context.Background(), xp.LeaderboardOptions{MinXP: 60})
	if err != nil {
		t.Fatalf("GetLeaderboard error: %v", err)
	}
	if page.Pagination.Total != 5 {
		t.Fatalf("total = %d, want 5 users with xp >= 60", page.Pagination.Total)
	}
	for _, entry := range page.Users {
		if entry.XP < 60 {
			t.Errorf("entry %s below minXp: %d", entry.ID, entry.XP)
		}
	}
}

func TestGetLeaderboard_Defaults(t *testing.T) {
	t.Parallel()

	m := store.NewMemory()
	seedPopulation(m, 3)
	svc := newTestService(m)

	page, err := svc.GetLeaderboard(context.Background(), xp.LeaderboardOptions{
		Timeframe: "fortnight", Page: -2, Limit: 0, MinXP: -10, SortBy: "charisma",
	})
	if err != nil {
		t.Fatalf("GetLeaderboard error: %v", err)
	}
	if page.SortedBy != xp.SortByXP {
		t.Errorf("SortedBy = %q, want default xp", page.SortedBy)
	}
	if page.Pagination.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d, want 1", page.Pagination.CurrentPage)
	}
	if len(page.Users) != 3 {
		t.Errorf("%d entries, want all 3", len(page.Users))
	}
}

func TestTimeframeCutoff(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	if got := xp.TimeframeCutoff(xp.TimeframeAll, now); !got.IsZero() {
		t.Errorf("all cutoff = %v, want zero", got)
	}
	if got := xp.TimeframeCutoff(xp.TimeframeDaily, now); got != time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC) {
		t.Errorf("daily cutoff = %v", got)
	}
	if got := xp.TimeframeCutoff(xp.TimeframeWeekly, now); got != now.AddDate(0, 0, -7) {
		t.Errorf("weekly cutoff = %v", got)
	}
	// monthly = un mois calendaire, pas 30 jours
	if got := xp.TimeframeCutoff(xp.TimeframeMonthly, now); got != time.Date(2025, 5, 15, 14, 30, 0, 0, time.UTC) {
		t.Errorf("monthly cutoff = %v", got)
	}
}
