package stats

import "fmt"

// Category identifies one counted stat in a box score.
type Category string

const (
	CategoryOnePointer   Category = "1PT"
	CategoryTwoPointer   Category = "2PT"
	CategoryFreeThrow    Category = "FT"
	CategoryRebound      Category = "REB"
	CategoryAssist       Category = "AST"
	CategorySteal        Category = "STL"
	CategoryBlock        Category = "BLK"
	CategoryTurnover     Category = "TOV"
	CategoryFoul         Category = "PF"
	CategoryGameWinner   Category = "GAME_WINNER"
	CategoryDunk         Category = "DUNK"
)

// Categories is the canonical column order for box scores and CSV exchange.
var Categories = []Category{
	CategoryOnePointer,
	CategoryTwoPointer,
	CategoryFreeThrow,
	CategoryRebound,
	CategoryAssist,
	CategorySteal,
	CategoryBlock,
	CategoryTurnover,
	CategoryFoul,
	CategoryGameWinner,
	CategoryDunk,
}

var known = func() map[Category]struct{} {
	m := make(map[Category]struct{}, len(Categories))
	for _, c := range Categories {
		m[c] = struct{}{}
	}
	return m
}()

// KnownCategory reports whether c is one of the counted categories.
func KnownCategory(c Category) bool {
	_, ok := known[c]
	return ok
}

// Line is one player's box score for one game. Missing categories count as
// zero; ingestion stores lines exactly as submitted.
type Line struct {
	GameID   string
	PlayerID string
	Counts   map[Category]int
}

func (l Line) Validate() error {
	if l.GameID == "" {
		return fmt.Errorf("stat line game id is required")
	}
	if l.PlayerID == "" {
		return fmt.Errorf("stat line player id is required")
	}
	for category, count := range l.Counts {
		if !KnownCategory(category) {
			return fmt.Errorf("stat line for player %s has unknown category %q", l.PlayerID, category)
		}
		if count < 0 {
			return fmt.Errorf("stat line for player %s has negative %s count", l.PlayerID, category)
		}
	}
	if winner := l.Counts[CategoryGameWinner]; winner > 1 {
		return fmt.Errorf("stat line for player %s has game winner flag %d, must be 0 or 1", l.PlayerID, winner)
	}

	return nil
}

// Count returns the recorded value for a category, zero when absent.
func (l Line) Count(c Category) int {
	return l.Counts[c]
}
