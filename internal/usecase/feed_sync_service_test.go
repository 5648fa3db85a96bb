package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/schedule"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/stats"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/infrastructure/repository/memory"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/platform/logging"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/platform/resilience"
)

type stubFeedProvider struct {
	games    []ExternalGame
	boxes    map[string]ExternalBoxScore
	fetchErr map[string]error
}

func (p *stubFeedProvider) FetchSchedule(_ context.Context, _, _ string) ([]ExternalGame, error) {
	return p.games, nil
}

func (p *stubFeedProvider) FetchBoxScore(_ context.Context, gameID string) (ExternalBoxScore, error) {
	if err := p.fetchErr[gameID]; err != nil {
		return ExternalBoxScore{}, err
	}
	box, ok := p.boxes[gameID]
	if !ok {
		return ExternalBoxScore{}, fmt.Errorf("no box score for %s", gameID)
	}
	return box, nil
}

func (p *stubFeedProvider) BreakerSnapshot() resilience.CircuitSnapshot {
	return resilience.CircuitSnapshot{State: resilience.CircuitStateClosed}
}

var _ StatsFeedProvider = (*stubFeedProvider)(nil)

type feedSyncFixture struct {
	svc          *FeedSyncService
	provider     *stubFeedProvider
	scheduleRepo *memory.ScheduleRepository
	scoring      *ScoringService
}

// newFeedSyncFixture wires the sync service to a real ingestion path: one
// final game ready for box scores and one still scheduled.
func newFeedSyncFixture(t *testing.T) feedSyncFixture {
	t.Helper()

	tipoff := time.Date(2026, 1, 5, 19, 15, 0, 0, time.UTC)
	games := []schedule.Game{
		{ID: "game-0105-a", Date: "2026-01-05", TipoffAt: tipoff, HomeTeam: memory.ClubLunarOwls, AwayTeam: memory.ClubMist, Status: schedule.StatusFinal},
		{ID: "game-0105-b", Date: "2026-01-05", TipoffAt: tipoff.Add(time.Hour), HomeTeam: memory.ClubRose, AwayTeam: memory.ClubVinyl, Status: schedule.StatusScheduled},
	}

	managerRepo := memory.NewManagerRepository(memory.SeedManagers())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	rosterRepo := memory.NewRosterRepository()
	lineupRepo := memory.NewLineupRepository()
	scheduleRepo := memory.NewScheduleRepository(games)
	statsRepo := memory.NewStatsRepository()
	scoringRepo := memory.NewScoringRepository()

	seedTestRosters(t, rosterRepo)

	scoringSvc := NewScoringService(managerRepo, playerRepo, rosterRepo, lineupRepo, scheduleRepo, statsRepo, scoringRepo, nil, nil)

	provider := &stubFeedProvider{
		boxes: map[string]ExternalBoxScore{
			"game-0105-a": {
				GameID: "game-0105-a",
				Rows: []StatRowInput{
					{PlayerID: "ply-001", Counts: map[stats.Category]int{stats.CategoryRebound: 5}},
				},
			},
		},
		fetchErr: map[string]error{},
	}

	svc := NewFeedSyncService(scheduleRepo, scoringSvc, provider, FeedSyncConfig{Enabled: true, MaxWorkers: 2}, logging.NewNop())
	return feedSyncFixture{svc: svc, provider: provider, scheduleRepo: scheduleRepo, scoring: scoringSvc}
}

func TestFeedSyncService_Disabled(t *testing.T) {
	fx := newFeedSyncFixture(t)
	fx.svc.cfg.Enabled = false

	if _, err := fx.svc.SyncSchedule(t.Context(), SyncScheduleInput{StartDate: "2026-01-05", EndDate: "2026-01-19"}); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if _, err := fx.svc.SyncBoxScores(t.Context(), SyncBoxScoresInput{Date: "2026-01-05"}); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if status := fx.svc.Status(t.Context()); status.Enabled {
		t.Fatalf("disabled service reports enabled")
	}
}

func TestFeedSyncService_SyncSchedule_SkipsMalformedGames(t *testing.T) {
	fx := newFeedSyncFixture(t)
	fx.provider.games = []ExternalGame{
		{
			ID:       "game-0120-a",
			Date:     "2026-01-20",
			TipoffAt: time.Date(2026, 1, 20, 19, 15, 0, 0, time.UTC),
			HomeTeam: memory.ClubBreeze,
			AwayTeam: memory.ClubHive,
			Status:   "final",
		},
		{
			// missing the home team
			ID:       "game-0120-b",
			Date:     "2026-01-20",
			TipoffAt: time.Date(2026, 1, 20, 20, 15, 0, 0, time.UTC),
			AwayTeam: memory.ClubRose,
		},
	}

	run, err := fx.svc.SyncSchedule(t.Context(), SyncScheduleInput{StartDate: "2026-01-20", EndDate: "2026-01-20"})
	if err != nil {
		t.Fatalf("sync schedule: %v", err)
	}

	if run.SuccessCount != 1 || run.SkippedCount != 1 || run.FailedCount != 0 {
		t.Fatalf("unexpected run counts: %+v", run)
	}

	game, found, err := fx.scheduleRepo.GetByID(t.Context(), "game-0120-a")
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if !found {
		t.Fatalf("synced game not stored")
	}
	if game.Status != schedule.StatusFinal {
		t.Fatalf("feed status not normalized: got=%s want=%s", game.Status, schedule.StatusFinal)
	}
	if _, found, _ := fx.scheduleRepo.GetByID(t.Context(), "game-0120-b"); found {
		t.Fatalf("malformed game must not be stored")
	}
}

func TestFeedSyncService_SyncSchedule_RejectsBadRange(t *testing.T) {
	fx := newFeedSyncFixture(t)

	if _, err := fx.svc.SyncSchedule(t.Context(), SyncScheduleInput{StartDate: "2026-01-19", EndDate: "2026-01-05"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a backwards range, got %v", err)
	}
	if _, err := fx.svc.SyncSchedule(t.Context(), SyncScheduleInput{StartDate: "Jan 5", EndDate: "2026-01-19"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a malformed date, got %v", err)
	}
}

func TestFeedSyncService_SyncBoxScores_IngestsFinalGames(t *testing.T) {
	fx := newFeedSyncFixture(t)

	run, err := fx.svc.SyncBoxScores(t.Context(), SyncBoxScoresInput{Date: "2026-01-05"})
	if err != nil {
		t.Fatalf("sync box scores: %v", err)
	}

	if run.SuccessCount != 1 || run.SkippedCount != 1 || run.FailedCount != 0 {
		t.Fatalf("unexpected run counts: %+v", run)
	}
	if len(run.Items) != 2 || run.Items[0].ID != "game-0105-a" || run.Items[1].ID != "game-0105-b" {
		t.Fatalf("unexpected items: %+v", run.Items)
	}
	if run.Items[0].Status != syncStatusSuccess || run.Items[0].Records != 1 {
		t.Fatalf("unexpected final game row: %+v", run.Items[0])
	}
	if run.Items[1].Status != syncStatusSkipped {
		t.Fatalf("scheduled game must be skipped: %+v", run.Items[1])
	}

	// the rows went through the shared ingestion path
	rows, err := fx.scoring.ScoresByDate(t.Context(), "2026-01-05")
	if err != nil {
		t.Fatalf("scores by date: %v", err)
	}
	if len(rows) != 1 || rows[0].ManagerID != "mgr-01" || !almostEqual(rows[0].Points, 6.0) {
		t.Fatalf("unexpected daily rows after sync: %+v", rows)
	}

	status := fx.svc.Status(t.Context())
	if status.LastRun == nil || status.LastRun.RunID != run.RunID {
		t.Fatalf("status does not carry the last run: %+v", status.LastRun)
	}
	if status.Breaker.State != resilience.CircuitStateClosed {
		t.Fatalf("unexpected breaker state: %+v", status.Breaker)
	}
}

func TestFeedSyncService_SyncBoxScores_DryRunWritesNothing(t *testing.T) {
	fx := newFeedSyncFixture(t)

	run, err := fx.svc.SyncBoxScores(t.Context(), SyncBoxScoresInput{Date: "2026-01-05", DryRun: true})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}

	if run.SuccessCount != 0 || run.SkippedCount != 2 {
		t.Fatalf("unexpected dry run counts: %+v", run)
	}

	rows, err := fx.scoring.ScoresByDate(t.Context(), "2026-01-05")
	if err != nil {
		t.Fatalf("scores by date: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("dry run wrote daily rows: %+v", rows)
	}
}

func TestFeedSyncService_SyncBoxScores_FetchFailureIsPerGame(t *testing.T) {
	fx := newFeedSyncFixture(t)
	fx.provider.fetchErr["game-0105-a"] = fmt.Errorf("upstream went away")

	run, err := fx.svc.SyncBoxScores(t.Context(), SyncBoxScoresInput{Date: "2026-01-05"})
	if err != nil {
		t.Fatalf("sync box scores: %v", err)
	}

	if run.FailedCount != 1 || run.SkippedCount != 1 || run.SuccessCount != 0 {
		t.Fatalf("unexpected run counts: %+v", run)
	}
	if run.Items[0].Status != syncStatusFailed || run.Items[0].Message == "" {
		t.Fatalf("unexpected failed row: %+v", run.Items[0])
	}
}

func TestFeedSyncService_SyncBoxScores_EmptyDate(t *testing.T) {
	fx := newFeedSyncFixture(t)

	run, err := fx.svc.SyncBoxScores(t.Context(), SyncBoxScoresInput{Date: "2026-03-01"})
	if err != nil {
		t.Fatalf("sync box scores: %v", err)
	}
	if len(run.Items) != 0 || run.SuccessCount != 0 {
		t.Fatalf("unexpected run for an empty date: %+v", run)
	}
}

func TestNormalizeSyncWorkerCount(t *testing.T) {
	tests := []struct {
		name       string
		requested  int
		configured int
		taskCount  int
		want       int
	}{
		{name: "request wins", requested: 3, configured: 2, taskCount: 10, want: 3},
		{name: "falls back to config", requested: 0, configured: 2, taskCount: 10, want: 2},
		{name: "defaults to one", requested: 0, configured: 0, taskCount: 10, want: 1},
		{name: "caps at four", requested: 9, configured: 0, taskCount: 10, want: 4},
		{name: "never exceeds tasks", requested: 4, configured: 0, taskCount: 2, want: 2},
		{name: "no tasks", requested: 4, configured: 4, taskCount: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeSyncWorkerCount(tt.requested, tt.configured, tt.taskCount)
			if got != tt.want {
				t.Fatalf("normalizeSyncWorkerCount(%d, %d, %d): got=%d want=%d", tt.requested, tt.configured, tt.taskCount, got, tt.want)
			}
		})
	}
}
