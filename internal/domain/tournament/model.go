package tournament

import (
	"fmt"
	"time"
)

// BracketSize is the number of nominated players in the single elimination
// bracket, one per manager.
const BracketSize = 8

// Round identifies a bracket stage.
type Round string

const (
	RoundQuarterfinal Round = "quarterfinal"
	RoundSemifinal    Round = "semifinal"
	RoundFinal        Round = "final"
)

// Rounds is the bracket stage order.
var Rounds = []Round{RoundQuarterfinal, RoundSemifinal, RoundFinal}

// Nomination is one manager's entry: a single rostered player who represents
// the manager across every round.
type Nomination struct {
	ManagerID   string
	PlayerID    string
	NominatedAt time.Time
}

func (n Nomination) Validate() error {
	if n.ManagerID == "" {
		return fmt.Errorf("nomination manager id is required")
	}
	if n.PlayerID == "" {
		return fmt.Errorf("nomination player id is required")
	}

	return nil
}

// Window is the inclusive date range whose games count toward a round.
type Window struct {
	StartDate string
	EndDate   string
}

// Contains reports whether a league date falls inside the window. Dates use
// the YYYY-MM-DD layout so string comparison is chronological.
func (w Window) Contains(date string) bool {
	if w.StartDate != "" && date < w.StartDate {
		return false
	}
	if w.EndDate != "" && date > w.EndDate {
		return false
	}
	return true
}

// Seed ties a nomination to its standings position. Seed 1 is the regular
// season leader.
type Seed struct {
	Seed      int
	ManagerID string
	PlayerID  string
}

// Matchup is one head to head pairing. WinnerSeed is zero until the round is
// resolved.
type Matchup struct {
	Round      Round
	Position   int
	HomeSeed   int
	AwaySeed   int
	HomePoints float64
	AwayPoints float64
	WinnerSeed int
	Resolved   bool
}

// Bracket is the full tournament state: the seeded field plus every matchup
// generated so far.
type Bracket struct {
	Seeds     []Seed
	Matchups  []Matchup
	Windows   map[Round]Window
	UpdatedAt time.Time
}

// QuarterfinalPairs lists the fixed seed pairings: 1v8 and 4v5 feed one
// semifinal, 2v7 and 3v6 the other.
func QuarterfinalPairs() [][2]int {
	return [][2]int{{1, 8}, {4, 5}, {2, 7}, {3, 6}}
}
