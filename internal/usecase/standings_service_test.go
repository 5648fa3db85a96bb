package usecase

import (
	"fmt"
	"testing"
	"time"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/scoring"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/infrastructure/repository/memory"
)

func TestStandingsService_EmptySeasonRanksByID(t *testing.T) {
	managerRepo := memory.NewManagerRepository(memory.SeedManagers())
	scoringRepo := memory.NewScoringRepository()
	svc := NewStandingsService(managerRepo, scoringRepo)

	table, err := svc.Standings(t.Context())
	if err != nil {
		t.Fatalf("standings: %v", err)
	}

	if len(table) != 8 {
		t.Fatalf("unexpected table size: got=%d want=8", len(table))
	}
	for i, row := range table {
		if row.Rank != i+1 {
			t.Fatalf("row %d rank: got=%d want=%d", i, row.Rank, i+1)
		}
		if row.ManagerID != fmt.Sprintf("mgr-%02d", i+1) {
			t.Fatalf("row %d manager: got=%s", i, row.ManagerID)
		}
		if row.TotalPoints != 0 || row.DaysScored != 0 || row.AveragePerDay != 0 {
			t.Fatalf("empty season row %d carries points: %+v", i, row)
		}
	}
}

func TestStandingsService_OrdersByTotalAndBreaksTiesByID(t *testing.T) {
	managerRepo := memory.NewManagerRepository(memory.SeedManagers())
	scoringRepo := memory.NewScoringRepository()
	svc := NewStandingsService(managerRepo, scoringRepo)

	computedAt := time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC)
	seed := []scoring.ManagerDailyScore{
		{ManagerID: "mgr-03", Date: "2026-01-05", Points: 50, ComputedAt: computedAt},
		{ManagerID: "mgr-03", Date: "2026-01-09", Points: 30, ComputedAt: computedAt},
		{ManagerID: "mgr-01", Date: "2026-01-05", Points: 50, ComputedAt: computedAt},
		{ManagerID: "mgr-02", Date: "2026-01-09", Points: 50, ComputedAt: computedAt},
	}
	for _, row := range seed {
		if err := scoringRepo.UpsertDailyScore(t.Context(), row); err != nil {
			t.Fatalf("seed daily score: %v", err)
		}
	}

	table, err := svc.Standings(t.Context())
	if err != nil {
		t.Fatalf("standings: %v", err)
	}

	if table[0].ManagerID != "mgr-03" || table[0].Rank != 1 {
		t.Fatalf("unexpected leader: %+v", table[0])
	}
	if !almostEqual(table[0].TotalPoints, 80) || table[0].DaysScored != 2 || !almostEqual(table[0].AveragePerDay, 40) {
		t.Fatalf("unexpected leader line: %+v", table[0])
	}

	// mgr-01 and mgr-02 tie on 50, ascending id decides and ranks stay strict
	if table[1].ManagerID != "mgr-01" || table[1].Rank != 2 {
		t.Fatalf("unexpected second row: %+v", table[1])
	}
	if table[2].ManagerID != "mgr-02" || table[2].Rank != 3 {
		t.Fatalf("unexpected third row: %+v", table[2])
	}

	for i, row := range table[3:] {
		if row.TotalPoints != 0 || row.Rank != i+4 {
			t.Fatalf("unexpected tail row: %+v", row)
		}
	}
}
