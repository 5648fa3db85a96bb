package lineup

import "sort"

// ResolveForDate computes the effective players for a (manager, date) from
// the manager's submission log and roster. The date's own submission wins,
// otherwise the nearest earlier submission is inherited, otherwise the lowest
// roster player ids fill in. Submissions may arrive in any order. Lock fields
// are left zero for the caller to fill.
func ResolveForDate(managerID, date string, submissions []Lineup, rosterPlayerIDs []string) Resolved {
	resolved := Resolved{ManagerID: managerID, Date: date}

	var explicit, inherited *Lineup
	for i := range submissions {
		switch {
		case submissions[i].Date == date:
			explicit = &submissions[i]
		case submissions[i].Date < date:
			if inherited == nil || submissions[i].Date > inherited.Date {
				inherited = &submissions[i]
			}
		}
	}

	switch {
	case explicit != nil:
		resolved.PlayerIDs = append([]string(nil), explicit.PlayerIDs...)
		resolved.Provenance = ProvenanceExplicit
		resolved.SourceDate = explicit.Date
	case inherited != nil:
		resolved.PlayerIDs = append([]string(nil), inherited.PlayerIDs...)
		resolved.Provenance = ProvenanceInherited
		resolved.SourceDate = inherited.Date
	default:
		ids := append([]string(nil), rosterPlayerIDs...)
		sort.Strings(ids)
		if len(ids) > ActiveSize {
			ids = ids[:ActiveSize]
		}
		resolved.PlayerIDs = ids
		resolved.Provenance = ProvenanceDefault
	}

	return resolved
}
