package roster

import (
	"fmt"
	"time"
)

// Pick is one entry in the ordered draft log. Number is the 1-based overall
// pick; Round is 0-based. The log is append-only: draft state is always
// reconstructible from the picks alone.
type Pick struct {
	Number    int
	Round     int
	ManagerID string
	PlayerID  string
	PickedAt  time.Time
}

func (p Pick) Validate() error {
	if p.Number <= 0 {
		return fmt.Errorf("pick number must be greater than zero")
	}
	if p.Round < 0 {
		return fmt.Errorf("pick round cannot be negative")
	}
	if p.ManagerID == "" {
		return fmt.Errorf("pick manager id is required")
	}
	if p.PlayerID == "" {
		return fmt.Errorf("pick player id is required")
	}

	return nil
}

// Entry is one (manager, player) roster membership. Entries are written once
// at draft completion and never change afterward.
type Entry struct {
	ManagerID string
	PlayerID  string
}
