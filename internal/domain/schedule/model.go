package schedule

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical league date format. All daily keys (lineups,
// scores, standings windows) use it.
const DateLayout = "2006-01-02"

const (
	StatusScheduled = "SCHEDULED"
	StatusFinal     = "FINAL"
	StatusPostponed = "POSTPONED"
)

// Game represents one scheduled pro game. Date is the league-local calendar
// day the game counts toward; TipoffAt carries the full timestamp used for
// lineup locking.
type Game struct {
	ID       string
	Date     string
	TipoffAt time.Time
	HomeTeam string
	AwayTeam string
	Status   string
}

func (g Game) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("game id is required")
	}
	if _, err := ParseDate(g.Date); err != nil {
		return fmt.Errorf("game %s: %w", g.ID, err)
	}
	if g.TipoffAt.IsZero() {
		return fmt.Errorf("game %s tipoff time is required", g.ID)
	}
	if g.HomeTeam == "" || g.AwayTeam == "" {
		return fmt.Errorf("game %s requires both teams", g.ID)
	}

	return nil
}

// ParseDate validates a league date key.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be %s, got %q", DateLayout, value)
	}
	return parsed, nil
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

// MinTipoff returns the earliest tipoff among the games and false when the
// slice is empty.
func MinTipoff(games []Game) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, game := range games {
		if !found || game.TipoffAt.Before(earliest) {
			earliest = game.TipoffAt
			found = true
		}
	}
	return earliest, found
}
