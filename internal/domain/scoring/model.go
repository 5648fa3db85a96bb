package scoring

import (
	"time"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/stats"
)

// Weights maps each stat category to its fantasy point value.
type Weights map[stats.Category]float64

// DefaultWeights is the league scoring configuration.
func DefaultWeights() Weights {
	return Weights{
		stats.CategoryOnePointer: 1.0,
		stats.CategoryTwoPointer: 2.5,
		stats.CategoryFreeThrow:  1.0,
		stats.CategoryRebound:    1.2,
		stats.CategoryAssist:     1.0,
		stats.CategorySteal:      2.0,
		stats.CategoryBlock:      2.0,
		stats.CategoryTurnover:   -1.0,
		stats.CategoryFoul:       -0.5,
		stats.CategoryGameWinner: 1.5,
		stats.CategoryDunk:       0.5,
	}
}

// Points computes the weighted sum of a box score line. Categories absent
// from the counts contribute zero.
func (w Weights) Points(counts map[stats.Category]int) float64 {
	total := 0.0
	for category, weight := range w {
		total += float64(counts[category]) * weight
	}
	return total
}

// PlayerGameScore is one player's fantasy output for one game.
type PlayerGameScore struct {
	GameID   string
	PlayerID string
	Date     string
	Points   float64
}

// ManagerDailyScore is the sum a manager's resolved active players earned on
// a date. Rows exist only for dates where at least one active player has a
// recorded stat line.
type ManagerDailyScore struct {
	ManagerID  string
	Date       string
	Points     float64
	PlayerIDs  []string
	ComputedAt time.Time
}
