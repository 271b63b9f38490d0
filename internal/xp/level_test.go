package xp

import (
	"testing"
)

func TestLevel_Boundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{50, 1},
		{99, 1},
		{100, 2},
		{399, 2},
		{400, 3},
		{899, 3},
		{900, 4},
		{1599, 4},
		{1600, 5},
	}

	for _, tt := range tests {
		if got := Level(tt.xp); got != tt.want {
			t.Errorf("Level(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestLevel_Monotonic(t *testing.T) {
	t.Parallel()

	prev := Level(0)
	for xp := 1; xp <= 20000; xp += 7 {
		got := Level(xp)
		if got < prev {
			t.Fatalf("Level decreased: Level(%d) = %d, previous %d", xp, got, prev)
		}
		prev = got
	}
}

func TestLevelThreshold_MatchesLevel(t *testing.T) {
	t.Parallel()

	for level := 1; level <= 20; level++ {
		threshold := LevelThreshold(level)
		if got := Level(threshold); got != level {
			t.Errorf("Level(LevelThreshold(%d)=%d) = %d", level, threshold, got)
		}
		if threshold > 0 {
			if got := Level(threshold - 1); got != level-1 {
				t.Errorf("Level(%d) = %d, want %d", threshold-1, got, level-1)
			}
		}
	}
}
