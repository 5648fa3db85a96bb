package lineup

import (
	"reflect"
	"testing"
)

func TestResolveForDatePrefersTheDateOwnSubmission(t *testing.T) {
	submissions := []Lineup{
		{ManagerID: "mgr-01", Date: "2026-01-05", PlayerIDs: []string{"ply-001", "ply-002", "ply-003"}},
		{ManagerID: "mgr-01", Date: "2026-01-09", PlayerIDs: []string{"ply-004", "ply-005", "ply-006"}},
	}

	resolved := ResolveForDate("mgr-01", "2026-01-09", submissions, []string{"ply-001", "ply-002", "ply-003", "ply-004", "ply-005", "ply-006"})

	if resolved.Provenance != ProvenanceExplicit {
		t.Fatalf("expected explicit provenance, got %s", resolved.Provenance)
	}
	if resolved.SourceDate != "2026-01-09" {
		t.Fatalf("expected source date 2026-01-09, got %s", resolved.SourceDate)
	}
	if !reflect.DeepEqual(resolved.PlayerIDs, []string{"ply-004", "ply-005", "ply-006"}) {
		t.Fatalf("unexpected players: %v", resolved.PlayerIDs)
	}
}

func TestResolveForDateInheritsNearestEarlierSubmission(t *testing.T) {
	submissions := []Lineup{
		{ManagerID: "mgr-01", Date: "2026-01-05", PlayerIDs: []string{"ply-001", "ply-002", "ply-003"}},
		{ManagerID: "mgr-01", Date: "2026-01-09", PlayerIDs: []string{"ply-004", "ply-005", "ply-006"}},
		{ManagerID: "mgr-01", Date: "2026-01-16", PlayerIDs: []string{"ply-001", "ply-005", "ply-006"}},
	}

	resolved := ResolveForDate("mgr-01", "2026-01-12", submissions, nil)

	if resolved.Provenance != ProvenanceInherited {
		t.Fatalf("expected inherited provenance, got %s", resolved.Provenance)
	}
	if resolved.SourceDate != "2026-01-09" {
		t.Fatalf("expected to inherit from 2026-01-09, got %s", resolved.SourceDate)
	}
	if !reflect.DeepEqual(resolved.PlayerIDs, []string{"ply-004", "ply-005", "ply-006"}) {
		t.Fatalf("unexpected players: %v", resolved.PlayerIDs)
	}
}

func TestResolveForDateFallsBackToLowestRosterIDs(t *testing.T) {
	resolved := ResolveForDate("mgr-02", "2026-01-05", nil, []string{"ply-030", "ply-004", "ply-017", "ply-041", "ply-009", "ply-022"})

	if resolved.Provenance != ProvenanceDefault {
		t.Fatalf("expected default provenance, got %s", resolved.Provenance)
	}
	if resolved.SourceDate != "" {
		t.Fatalf("default lineup carries no source date, got %s", resolved.SourceDate)
	}
	if !reflect.DeepEqual(resolved.PlayerIDs, []string{"ply-004", "ply-009", "ply-017"}) {
		t.Fatalf("unexpected players: %v", resolved.PlayerIDs)
	}
}

func TestResolveForDateWithShortRosterReturnsWhatExists(t *testing.T) {
	resolved := ResolveForDate("mgr-02", "2026-01-05", nil, []string{"ply-030", "ply-004"})

	if len(resolved.PlayerIDs) != 2 {
		t.Fatalf("expected 2 players from a short roster, got %v", resolved.PlayerIDs)
	}

	empty := ResolveForDate("mgr-03", "2026-01-05", nil, nil)
	if len(empty.PlayerIDs) != 0 || empty.Provenance != ProvenanceDefault {
		t.Fatalf("expected empty default resolution, got %+v", empty)
	}
}

func TestResolveForDateIgnoresLaterSubmissions(t *testing.T) {
	submissions := []Lineup{
		{ManagerID: "mgr-01", Date: "2026-01-16", PlayerIDs: []string{"ply-004", "ply-005", "ply-006"}},
	}

	resolved := ResolveForDate("mgr-01", "2026-01-05", submissions, []string{"ply-001", "ply-002", "ply-003"})

	if resolved.Provenance != ProvenanceDefault {
		t.Fatalf("a later submission must not leak backwards, got %s", resolved.Provenance)
	}
}
