package lineup

import (
	"fmt"
	"time"
)

// ActiveSize is the number of players a manager fields on a date.
const ActiveSize = 3

// Provenance records how a resolved lineup was produced.
type Provenance string

const (
	// ProvenanceExplicit means the manager submitted a lineup for the date.
	ProvenanceExplicit Provenance = "explicit"
	// ProvenanceInherited means the lineup was carried forward from the
	// nearest earlier date with an explicit submission.
	ProvenanceInherited Provenance = "inherited"
	// ProvenanceDefault means no submission exists on or before the date and
	// the roster fallback was used.
	ProvenanceDefault Provenance = "default"
)

// Lineup is one explicit submission: the players a manager fields starting on
// Date until superseded by a later submission.
type Lineup struct {
	ManagerID   string
	Date        string
	PlayerIDs   []string
	SubmittedAt time.Time
}

func (l Lineup) Validate() error {
	if l.ManagerID == "" {
		return fmt.Errorf("lineup manager id is required")
	}
	if l.Date == "" {
		return fmt.Errorf("lineup date is required")
	}
	if len(l.PlayerIDs) != ActiveSize {
		return fmt.Errorf("lineup must field exactly %d players, got %d", ActiveSize, len(l.PlayerIDs))
	}

	seen := make(map[string]struct{}, len(l.PlayerIDs))
	for _, id := range l.PlayerIDs {
		if id == "" {
			return fmt.Errorf("lineup player id cannot be empty")
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("lineup repeats player %s", id)
		}
		seen[id] = struct{}{}
	}

	return nil
}

// Resolved is the effective lineup for a (manager, date) after applying
// inheritance and the roster fallback. SourceDate is the submission date the
// players came from; for the default fallback it is empty.
type Resolved struct {
	ManagerID  string
	Date       string
	PlayerIDs  []string
	Provenance Provenance
	SourceDate string
	Locked     bool
	LockAt     *time.Time
}
