package model

import (
	"time"
)

// LeaderboardEntry une ligne du classement, annotée avec le rang absolu
// sous le tri demandé et, en première page seulement, la médaille du podium
type LeaderboardEntry struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	XP         int       `json:"xp"`
	Level      int       `json:"level"`
	Badges     []Badge   `json:"badges"`
	Avatar     string    `json:"avatar,omitempty"`
	LastActive time.Time `json:"lastActive"`
	QuizStats  QuizStats `json:"quizStats"`
	Rank       int       `json:"rank"`
	Medal      *Medal    `json:"medal,omitempty"`
}

type Pagination struct {
	Total       int  `json:"total"`
	Pages       int  `json:"pages"`
	CurrentPage int  `json:"currentPage"`
	HasMore     bool `json:"hasMore"`
}

// LeaderboardPage une page de classement, recalculée à chaque requête
type LeaderboardPage struct {
	Users      []LeaderboardEntry `json:"users"`
	Pagination Pagination         `json:"pagination"`
	SortedBy   string             `json:"sortedBy"`
	Medals     map[string]Medal   `json:"medals"`
}

type UserRank struct {
	UserID     string `json:"userId"`
	Username   string `json:"username"`
	XP         int    `json:"xp"`
	Level      int    `json:"level"`
	Rank       int    `json:"rank"`
	TotalUsers int    `json:"totalUsers"`
	Percentile int    `json:"percentile"` // Top X%
	Medal      *Medal `json:"medal,omitempty"`
}

// XPAwardResult résultat éphémère d'une attribution d'XP, jamais persisté
type XPAwardResult struct {
	UserID    string  `json:"userId"`
	Username  string  `json:"username"`
	CurrentXP int     `json:"currentXp"`
	XPGained  int     `json:"xpGained"`
	NewLevel  int     `json:"newLevel"`
	LeveledUp bool    `json:"leveledUp"`
	Badges    []Badge `json:"badges"`
}
