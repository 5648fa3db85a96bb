package player

import "fmt"

// Status tracks whether a player is eligible for active lineup slots.
type Status string

const (
	StatusActive  Status = "active"
	StatusInjured Status = "injured"
)

var AllStatuses = map[Status]struct{}{
	StatusActive:  {},
	StatusInjured: {},
}

// Player is one athlete in the league-wide draft pool.
type Player struct {
	ID      string
	Name    string
	ProTeam string
	Status  Status
}

func (p Player) Injured() bool {
	return p.Status == StatusInjured
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.ProTeam == "" {
		return fmt.Errorf("player pro team is required")
	}
	if _, ok := AllStatuses[p.Status]; !ok {
		return fmt.Errorf("invalid player status: %s", p.Status)
	}

	return nil
}
