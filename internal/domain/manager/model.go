package manager

import "fmt"

// Manager is one competing franchise owner in the league.
type Manager struct {
	ID       string
	Name     string
	TeamName string
}

func (m Manager) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("manager id is required")
	}
	if m.Name == "" {
		return fmt.Errorf("manager name is required")
	}
	if m.TeamName == "" {
		return fmt.Errorf("manager team name is required")
	}

	return nil
}
