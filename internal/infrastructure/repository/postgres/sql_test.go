package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/stats"
)

func TestIsNotFound(t *testing.T) {
	t.Run("matches ErrNoRows", func(t *testing.T) {
		if !isNotFound(sql.ErrNoRows) {
			t.Fatalf("expected true for sql.ErrNoRows")
		}
	})

	t.Run("matches wrapped ErrNoRows", func(t *testing.T) {
		if !isNotFound(fmt.Errorf("get manager: %w", sql.ErrNoRows)) {
			t.Fatalf("expected true for wrapped sql.ErrNoRows")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isNotFound(fmt.Errorf("pq: relation lineups does not exist")) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestStringSliceToAny(t *testing.T) {
	got := stringSliceToAny([]string{"ply-001", "ply-002"})
	if len(got) != 2 {
		t.Fatalf("expected 2 values, got %d", len(got))
	}
	if got[0] != "ply-001" || got[1] != "ply-002" {
		t.Fatalf("unexpected values: %v", got)
	}
}

func TestStatLineColumnRoundTrip(t *testing.T) {
	line := stats.Line{
		GameID:   "game-0105-a",
		PlayerID: "ply-001",
		Counts: map[stats.Category]int{
			stats.CategoryTwoPointer: 4,
			stats.CategoryRebound:    7,
			stats.CategoryTurnover:   2,
		},
	}

	insert := statLineInsertFromDomain(line)
	if insert.TwoPt != 4 || insert.Rebound != 7 || insert.Turnover != 2 {
		t.Fatalf("unexpected insert model: %+v", insert)
	}
	if insert.OnePt != 0 || insert.Dunk != 0 {
		t.Fatalf("absent categories must map to zero columns: %+v", insert)
	}

	row := statLineTableModel{
		GameID:   insert.GameID,
		PlayerID: insert.PlayerID,
		TwoPt:    insert.TwoPt,
		Rebound:  insert.Rebound,
		Turnover: insert.Turnover,
	}
	got := statLineToDomain(row)
	if got.GameID != line.GameID || got.PlayerID != line.PlayerID {
		t.Fatalf("unexpected identifiers: %+v", got)
	}
	if len(got.Counts) != 3 {
		t.Fatalf("zero columns must not resurface as counts: %v", got.Counts)
	}
	for category, want := range line.Counts {
		if got.Counts[category] != want {
			t.Fatalf("category %s: got=%d want=%d", category, got.Counts[category], want)
		}
	}
}
