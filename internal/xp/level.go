package xp

import (
	"math"
)

// Level calcule le niveau à partir de l'XP cumulé : floor(sqrt(xp/100)) + 1.
// Total, déterministe, croissant. Level(0) == 1.
func Level(xp int) int {
	if xp <= 0 {
		return 1
	}
	return int(math.Sqrt(float64(xp)/100)) + 1
}

// LevelThreshold XP cumulé requis pour atteindre le niveau donné
func LevelThreshold(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) * (level - 1) * 100
}
