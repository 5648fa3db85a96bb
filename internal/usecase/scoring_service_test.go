package usecase

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/lineup"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/stats"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/infrastructure/repository/memory"
)

type scoringFixture struct {
	svc         *ScoringService
	statsRepo   *memory.StatsRepository
	scoringRepo *memory.ScoringRepository
	lineupRepo  *memory.LineupRepository
}

func newScoringFixture(t *testing.T) scoringFixture {
	t.Helper()

	managerRepo := memory.NewManagerRepository(memory.SeedManagers())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	rosterRepo := memory.NewRosterRepository()
	lineupRepo := memory.NewLineupRepository()
	scheduleRepo := memory.NewScheduleRepository(memory.SeedSchedule())
	statsRepo := memory.NewStatsRepository()
	scoringRepo := memory.NewScoringRepository()

	seedTestRosters(t, rosterRepo)

	svc := NewScoringService(managerRepo, playerRepo, rosterRepo, lineupRepo, scheduleRepo, statsRepo, scoringRepo, nil, nil)
	svc.now = func() time.Time { return time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC) }

	return scoringFixture{svc: svc, statsRepo: statsRepo, scoringRepo: scoringRepo, lineupRepo: lineupRepo}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoringService_IngestGameStats_ScoresMixedLine(t *testing.T) {
	fx := newScoringFixture(t)

	result, err := fx.svc.IngestGameStats(t.Context(), IngestStatsInput{
		GameID: "game-0105-a",
		Rows: []StatRowInput{
			{
				PlayerID: "ply-001",
				Counts: map[stats.Category]int{
					stats.CategoryOnePointer: 1,
					stats.CategoryTwoPointer: 9,
					stats.CategoryRebound:    9,
					stats.CategoryAssist:     1,
					stats.CategorySteal:      1,
					stats.CategoryTurnover:   3,
					stats.CategoryFoul:       3,
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("ingest stats: %v", err)
	}

	if len(result.Rows) != 1 || !almostEqual(result.Rows[0].Points, 32.8) {
		t.Fatalf("unexpected row points: %+v", result.Rows)
	}
	if len(result.AffectedManagers) != 1 || result.AffectedManagers[0] != "mgr-01" {
		t.Fatalf("unexpected affected managers: %v", result.AffectedManagers)
	}
	if result.DailyRowsWritten != 1 {
		t.Fatalf("unexpected daily rows written: got=%d want=1", result.DailyRowsWritten)
	}

	rows, err := fx.svc.ScoresByDate(t.Context(), "2026-01-05")
	if err != nil {
		t.Fatalf("scores by date: %v", err)
	}
	if len(rows) != 1 || rows[0].ManagerID != "mgr-01" || !almostEqual(rows[0].Points, 32.8) {
		t.Fatalf("unexpected daily rows: %+v", rows)
	}
}

func TestScoringService_IngestGameStats_ReingestConverges(t *testing.T) {
	fx := newScoringFixture(t)

	if _, err := fx.svc.IngestGameStats(t.Context(), IngestStatsInput{
		GameID: "game-0105-a",
		Rows: []StatRowInput{
			{PlayerID: "ply-001", Counts: map[stats.Category]int{stats.CategoryRebound: 5}},
		},
	}); err != nil {
		t.Fatalf("first ingest: %v", err)
	}

	if _, err := fx.svc.IngestGameStats(t.Context(), IngestStatsInput{
		GameID: "game-0105-a",
		Rows: []StatRowInput{
			{PlayerID: "ply-001", Counts: map[stats.Category]int{stats.CategoryRebound: 10}},
		},
	}); err != nil {
		t.Fatalf("corrected ingest: %v", err)
	}

	scores, err := fx.svc.GameScores(t.Context(), "game-0105-a")
	if err != nil {
		t.Fatalf("game scores: %v", err)
	}
	if len(scores) != 1 || !almostEqual(scores[0].Points, 12.0) {
		t.Fatalf("unexpected game scores after correction: %+v", scores)
	}

	rows, err := fx.svc.ManagerScores(t.Context(), "mgr-01")
	if err != nil {
		t.Fatalf("manager scores: %v", err)
	}
	if len(rows) != 1 || !almostEqual(rows[0].Points, 12.0) {
		t.Fatalf("unexpected daily rows after correction: %+v", rows)
	}
}

func TestScoringService_IngestGameStats_EmptyBatchWipesGame(t *testing.T) {
	fx := newScoringFixture(t)

	if _, err := fx.svc.IngestGameStats(t.Context(), IngestStatsInput{
		GameID: "game-0105-a",
		Rows: []StatRowInput{
			{PlayerID: "ply-001", Counts: map[stats.Category]int{stats.CategoryRebound: 5}},
		},
	}); err != nil {
		t.Fatalf("first ingest: %v", err)
	}

	result, err := fx.svc.IngestGameStats(t.Context(), IngestStatsInput{GameID: "game-0105-a"})
	if err != nil {
		t.Fatalf("wipe ingest: %v", err)
	}
	if result.DailyRowsCleared != 1 || result.DailyRowsWritten != 0 {
		t.Fatalf("unexpected wipe outcome: written=%d cleared=%d", result.DailyRowsWritten, result.DailyRowsCleared)
	}

	scores, err := fx.svc.GameScores(t.Context(), "game-0105-a")
	if err != nil {
		t.Fatalf("game scores: %v", err)
	}
	if len(scores) != 0 {
		t.Fatalf("expected no game scores after wipe, got %+v", scores)
	}
	rows, err := fx.svc.ScoresByDate(t.Context(), "2026-01-05")
	if err != nil {
		t.Fatalf("scores by date: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no daily rows after wipe, got %+v", rows)
	}
}

func TestScoringService_IngestGameStats_RejectsUnknownGame(t *testing.T) {
	fx := newScoringFixture(t)

	_, err := fx.svc.IngestGameStats(t.Context(), IngestStatsInput{
		GameID: "game-9999-z",
		Rows: []StatRowInput{
			{PlayerID: "ply-001", Counts: map[stats.Category]int{stats.CategoryRebound: 5}},
		},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown game, got %v", err)
	}
}

func TestScoringService_IngestGameStats_BadRowRejectsWholeBatch(t *testing.T) {
	fx := newScoringFixture(t)

	_, err := fx.svc.IngestGameStats(t.Context(), IngestStatsInput{
		GameID: "game-0105-a",
		Rows: []StatRowInput{
			{PlayerID: "ply-001", Counts: map[stats.Category]int{stats.CategoryRebound: 5}},
			{PlayerID: "ply-999", Counts: map[stats.Category]int{stats.CategoryAssist: 2}},
		},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown player, got %v", err)
	}

	scores, err := fx.svc.GameScores(t.Context(), "game-0105-a")
	if err != nil {
		t.Fatalf("game scores: %v", err)
	}
	if len(scores) != 0 {
		t.Fatalf("a rejected batch must write nothing, got %+v", scores)
	}
}

func TestScoringService_IngestGameStats_RejectsSecondGameWinner(t *testing.T) {
	fx := newScoringFixture(t)

	_, err := fx.svc.IngestGameStats(t.Context(), IngestStatsInput{
		GameID: "game-0105-a",
		Rows: []StatRowInput{
			{PlayerID: "ply-001", Counts: map[stats.Category]int{stats.CategoryGameWinner: 2}},
		},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a double game winner, got %v", err)
	}
}

func TestScoringService_IngestGameStats_RejectsDuplicateRows(t *testing.T) {
	fx := newScoringFixture(t)

	_, err := fx.svc.IngestGameStats(t.Context(), IngestStatsInput{
		GameID: "game-0105-a",
		Rows: []StatRowInput{
			{PlayerID: "ply-001", Counts: map[stats.Category]int{stats.CategoryRebound: 5}},
			{PlayerID: "ply-001", Counts: map[stats.Category]int{stats.CategoryRebound: 7}},
		},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate rows, got %v", err)
	}
}

func TestScoringService_IngestGameStats_LeavesUntouchedManagersAlone(t *testing.T) {
	fx := newScoringFixture(t)

	if _, err := fx.svc.IngestGameStats(t.Context(), IngestStatsInput{
		GameID: "game-0105-a",
		Rows: []StatRowInput{
			{PlayerID: "ply-001", Counts: map[stats.Category]int{stats.CategoryRebound: 5}},
		},
	}); err != nil {
		t.Fatalf("ingest game a: %v", err)
	}

	result, err := fx.svc.IngestGameStats(t.Context(), IngestStatsInput{
		GameID: "game-0105-b",
		Rows: []StatRowInput{
			{PlayerID: "ply-013", Counts: map[stats.Category]int{stats.CategoryAssist: 4}},
		},
	})
	if err != nil {
		t.Fatalf("ingest game b: %v", err)
	}

	if len(result.AffectedManagers) != 1 || result.AffectedManagers[0] != "mgr-03" {
		t.Fatalf("unexpected affected managers: %v", result.AffectedManagers)
	}

	rows, err := fx.svc.ManagerScores(t.Context(), "mgr-01")
	if err != nil {
		t.Fatalf("manager scores: %v", err)
	}
	if len(rows) != 1 || !almostEqual(rows[0].Points, 6.0) {
		t.Fatalf("mgr-01 row changed by an unrelated ingest: %+v", rows)
	}
}

func TestScoringService_Breakdown_ItemizesDailyRow(t *testing.T) {
	fx := newScoringFixture(t)

	if _, err := fx.svc.IngestGameStats(t.Context(), IngestStatsInput{
		GameID: "game-0105-a",
		Rows: []StatRowInput{
			{PlayerID: "ply-001", Counts: map[stats.Category]int{stats.CategoryRebound: 5}},
			{PlayerID: "ply-002", Counts: map[stats.Category]int{stats.CategoryAssist: 4}},
		},
	}); err != nil {
		t.Fatalf("ingest stats: %v", err)
	}

	breakdown, err := fx.svc.Breakdown(t.Context(), "mgr-01", "2026-01-05")
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}

	if len(breakdown.Players) != 3 {
		t.Fatalf("unexpected player line count: got=%d want=3", len(breakdown.Players))
	}
	if !almostEqual(breakdown.Total, 10.0) {
		t.Fatalf("unexpected total: got=%v want=10", breakdown.Total)
	}
	byPlayer := make(map[string]PlayerDayLine, len(breakdown.Players))
	for _, line := range breakdown.Players {
		byPlayer[line.PlayerID] = line
	}
	if line := byPlayer["ply-001"]; !almostEqual(line.Points, 6.0) || line.Games != 1 {
		t.Fatalf("unexpected ply-001 line: %+v", line)
	}
	if line := byPlayer["ply-003"]; !almostEqual(line.Points, 0) || line.Games != 0 {
		t.Fatalf("active player without a recorded line must show zero: %+v", line)
	}
}

func TestScoringService_RecomputeAll_MatchesIncremental(t *testing.T) {
	fx := newScoringFixture(t)

	if _, err := fx.svc.IngestGameStats(t.Context(), IngestStatsInput{
		GameID: "game-0105-a",
		Rows: []StatRowInput{
			{PlayerID: "ply-001", Counts: map[stats.Category]int{stats.CategoryRebound: 5}},
		},
	}); err != nil {
		t.Fatalf("ingest 01-05: %v", err)
	}
	if _, err := fx.svc.IngestGameStats(t.Context(), IngestStatsInput{
		GameID: "game-0109-a",
		Rows: []StatRowInput{
			{PlayerID: "ply-025", Counts: map[stats.Category]int{stats.CategoryTwoPointer: 4}},
		},
	}); err != nil {
		t.Fatalf("ingest 01-09: %v", err)
	}

	before, err := fx.scoringRepo.ListDailyScores(t.Context())
	if err != nil {
		t.Fatalf("list daily scores: %v", err)
	}

	result, err := fx.svc.RecomputeAll(t.Context())
	if err != nil {
		t.Fatalf("recompute all: %v", err)
	}
	if result.GamesScored != 2 || result.PlayerScores != 2 {
		t.Fatalf("unexpected replay counts: %+v", result)
	}
	if result.Dates != 7 {
		t.Fatalf("unexpected date count: got=%d want=7", result.Dates)
	}

	after, err := fx.scoringRepo.ListDailyScores(t.Context())
	if err != nil {
		t.Fatalf("list daily scores: %v", err)
	}
	if len(after) != len(before) {
		t.Fatalf("row count drifted: got=%d want=%d", len(after), len(before))
	}
	for i := range before {
		if after[i].ManagerID != before[i].ManagerID || after[i].Date != before[i].Date || !almostEqual(after[i].Points, before[i].Points) {
			t.Fatalf("row %d drifted: before=%+v after=%+v", i, before[i], after[i])
		}
	}
}

func TestScoringService_RecomputeAll_RejectsOrphanedHistory(t *testing.T) {
	fx := newScoringFixture(t)

	line := stats.Line{
		GameID:   "game-gone",
		PlayerID: "ply-001",
		Counts:   map[stats.Category]int{stats.CategoryRebound: 5},
	}
	if err := fx.statsRepo.ReplaceGameLines(t.Context(), "game-gone", []stats.Line{line}); err != nil {
		t.Fatalf("plant orphaned line: %v", err)
	}

	_, err := fx.svc.RecomputeAll(t.Context())
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for orphaned history, got %v", err)
	}
}

func TestScoringService_IngestGameStats_FollowsStickyLineup(t *testing.T) {
	fx := newScoringFixture(t)

	// mgr-01 benches the default trio from 2026-01-09 onward
	submission := lineup.Lineup{
		ManagerID:   "mgr-01",
		Date:        "2026-01-09",
		PlayerIDs:   []string{"ply-004", "ply-005", "ply-006"},
		SubmittedAt: time.Date(2026, 1, 8, 12, 0, 0, 0, time.UTC),
	}
	if err := fx.lineupRepo.Upsert(t.Context(), submission); err != nil {
		t.Fatalf("seed lineup: %v", err)
	}

	// ply-001 is active on 01-05 but benched by inheritance on 01-12
	if _, err := fx.svc.IngestGameStats(t.Context(), IngestStatsInput{
		GameID: "game-0112-b",
		Rows: []StatRowInput{
			{PlayerID: "ply-001", Counts: map[stats.Category]int{stats.CategoryRebound: 5}},
		},
	}); err != nil {
		t.Fatalf("ingest stats: %v", err)
	}

	rows, err := fx.svc.ScoresByDate(t.Context(), "2026-01-12")
	if err != nil {
		t.Fatalf("scores by date: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("benched player must not produce a daily row, got %+v", rows)
	}
}
