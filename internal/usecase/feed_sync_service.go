package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/schedule"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/platform/logging"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/platform/resilience"
)

// ExternalGame is one schedule entry as the stats feed reports it.
type ExternalGame struct {
	ID       string
	Date     string
	TipoffAt time.Time
	HomeTeam string
	AwayTeam string
	Status   string
}

// ExternalBoxScore is one game's stat rows as the stats feed reports them.
type ExternalBoxScore struct {
	GameID string
	Rows   []StatRowInput
}

// StatsFeedProvider is the upstream the sync jobs pull from.
type StatsFeedProvider interface {
	FetchSchedule(ctx context.Context, startDate, endDate string) ([]ExternalGame, error)
	FetchBoxScore(ctx context.Context, gameID string) (ExternalBoxScore, error)
	BreakerSnapshot() resilience.CircuitSnapshot
}

// statsIngestor is the slice of ScoringService the box score sync needs.
type statsIngestor interface {
	IngestGameStats(ctx context.Context, input IngestStatsInput) (IngestResult, error)
}

const (
	syncStatusSuccess = "success"
	syncStatusFailed  = "failed"
	syncStatusSkipped = "skipped"

	syncKindSchedule  = "schedule"
	syncKindBoxScores = "box_scores"
)

// FeedSyncConfig carries the sync tuning the app wires from the environment.
type FeedSyncConfig struct {
	Enabled    bool
	MaxWorkers int
}

// FeedSyncService pulls the schedule and finished box scores from the stats
// feed and pushes them through the same ingestion path manual entry uses.
type FeedSyncService struct {
	scheduleRepo schedule.Repository
	ingestion    statsIngestor
	provider     StatsFeedProvider
	cfg          FeedSyncConfig
	logger       *logging.Logger

	lastRun atomic.Pointer[SyncRun]
	now     func() time.Time
}

func NewFeedSyncService(
	scheduleRepo schedule.Repository,
	ingestion statsIngestor,
	provider StatsFeedProvider,
	cfg FeedSyncConfig,
	logger *logging.Logger,
) *FeedSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FeedSyncService{
		scheduleRepo: scheduleRepo,
		ingestion:    ingestion,
		provider:     provider,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

type SyncScheduleInput struct {
	StartDate string
	EndDate   string
}

type SyncBoxScoresInput struct {
	Date       string
	MaxWorkers int
	// DryRun fetches and reports without writing anything.
	DryRun bool
}

type SyncItemResult struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	Records    int    `json:"records"`
	DurationMS int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

type SyncRun struct {
	RunID        string           `json:"run_id"`
	Kind         string           `json:"kind"`
	StartedAt    time.Time        `json:"started_at"`
	DurationMS   int64            `json:"duration_ms"`
	WorkerCount  int              `json:"worker_count"`
	SuccessCount int              `json:"success_count"`
	FailedCount  int              `json:"failed_count"`
	SkippedCount int              `json:"skipped_count"`
	Items        []SyncItemResult `json:"items"`
}

// SyncStatus is the feed health view: the last run plus the circuit state of
// the provider client.
type SyncStatus struct {
	Enabled bool                       `json:"enabled"`
	LastRun *SyncRun                   `json:"last_run,omitempty"`
	Breaker resilience.CircuitSnapshot `json:"breaker"`
}

// SyncSchedule pulls the feed's schedule for a date range and upserts it.
// Games the feed reports with broken fields are skipped row by row so one
// malformed entry cannot hold back the rest of the slate.
func (s *FeedSyncService) SyncSchedule(ctx context.Context, input SyncScheduleInput) (SyncRun, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedSyncService.SyncSchedule")
	defer span.End()

	if err := s.ready(); err != nil {
		return SyncRun{}, err
	}

	startDate := strings.TrimSpace(input.StartDate)
	endDate := strings.TrimSpace(input.EndDate)
	if _, err := schedule.ParseDate(startDate); err != nil {
		return SyncRun{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := schedule.ParseDate(endDate); err != nil {
		return SyncRun{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if endDate < startDate {
		return SyncRun{}, fmt.Errorf("%w: range ends %s before it starts %s", ErrInvalidInput, endDate, startDate)
	}

	run := SyncRun{
		RunID:       uuid.NewString(),
		Kind:        syncKindSchedule,
		StartedAt:   s.now().UTC(),
		WorkerCount: 1,
	}

	external, err := s.provider.FetchSchedule(ctx, startDate, endDate)
	if err != nil {
		return SyncRun{}, fmt.Errorf("fetch schedule %s..%s: %w", startDate, endDate, err)
	}

	games := make([]schedule.Game, 0, len(external))
	for _, item := range external {
		start := time.Now()
		game := schedule.Game{
			ID:       strings.TrimSpace(item.ID),
			Date:     strings.TrimSpace(item.Date),
			TipoffAt: item.TipoffAt,
			HomeTeam: strings.TrimSpace(item.HomeTeam),
			AwayTeam: strings.TrimSpace(item.AwayTeam),
			Status:   schedule.NormalizeStatus(item.Status),
		}
		row := SyncItemResult{ID: game.ID, Records: 1}
		if err := game.Validate(); err != nil {
			row.Status = syncStatusSkipped
			row.Records = 0
			row.Message = err.Error()
			s.logger.WarnContext(ctx, "skip malformed feed game", "game_id", item.ID, "error", err)
		} else {
			games = append(games, game)
			row.Status = syncStatusSuccess
		}
		row.DurationMS = time.Since(start).Milliseconds()
		run.Items = append(run.Items, row)
	}

	if len(games) > 0 {
		if err := s.scheduleRepo.UpsertMany(ctx, games); err != nil {
			return SyncRun{}, fmt.Errorf("upsert games: %w", err)
		}
	}

	for _, row := range run.Items {
		switch row.Status {
		case syncStatusSuccess:
			run.SuccessCount++
		case syncStatusSkipped:
			run.SkippedCount++
		default:
			run.FailedCount++
		}
	}
	run.DurationMS = time.Since(run.StartedAt).Milliseconds()
	s.lastRun.Store(&run)
	return run, nil
}

// SyncBoxScores pulls the box score of every final game on a date and ingests
// each one. Games fan out across a small worker pool; each game succeeds or
// fails on its own because ingestion is atomic per game.
func (s *FeedSyncService) SyncBoxScores(ctx context.Context, input SyncBoxScoresInput) (SyncRun, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedSyncService.SyncBoxScores")
	defer span.End()

	if err := s.ready(); err != nil {
		return SyncRun{}, err
	}

	date := strings.TrimSpace(input.Date)
	if _, err := schedule.ParseDate(date); err != nil {
		return SyncRun{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	games, err := s.scheduleRepo.ListByDate(ctx, date)
	if err != nil {
		return SyncRun{}, fmt.Errorf("list games by date: %w", err)
	}

	workerCount := normalizeSyncWorkerCount(input.MaxWorkers, s.cfg.MaxWorkers, len(games))
	run := SyncRun{
		RunID:       uuid.NewString(),
		Kind:        syncKindBoxScores,
		StartedAt:   s.now().UTC(),
		WorkerCount: workerCount,
		Items:       make([]SyncItemResult, 0, len(games)),
	}
	if len(games) == 0 {
		s.lastRun.Store(&run)
		return run, nil
	}

	results := make(chan SyncItemResult, len(games))

	var successCount atomic.Int32
	var failedCount atomic.Int32
	var skippedCount atomic.Int32

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return SyncRun{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for _, game := range games {
		game := game
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := s.syncOneBoxScore(ctx, game, input.DryRun)
			row.DurationMS = time.Since(start).Milliseconds()

			switch row.Status {
			case syncStatusSuccess:
				successCount.Add(1)
			case syncStatusSkipped:
				skippedCount.Add(1)
			default:
				failedCount.Add(1)
			}

			results <- row
		}); err != nil {
			workers.Done()
			return SyncRun{}, fmt.Errorf("submit game to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		run.Items = append(run.Items, row)
	}
	sort.SliceStable(run.Items, func(i, j int) bool { return run.Items[i].ID < run.Items[j].ID })

	run.SuccessCount = int(successCount.Load())
	run.FailedCount = int(failedCount.Load())
	run.SkippedCount = int(skippedCount.Load())
	run.DurationMS = time.Since(run.StartedAt).Milliseconds()
	s.lastRun.Store(&run)
	return run, nil
}

// Status reports whether the feed is wired, the last run, and the provider
// circuit state.
func (s *FeedSyncService) Status(ctx context.Context) SyncStatus {
	_, span := startUsecaseSpan(ctx, "usecase.FeedSyncService.Status")
	defer span.End()

	status := SyncStatus{Enabled: s.cfg.Enabled && s.provider != nil}
	status.LastRun = s.lastRun.Load()
	if s.provider != nil {
		status.Breaker = s.provider.BreakerSnapshot()
	}
	return status
}

func (s *FeedSyncService) syncOneBoxScore(ctx context.Context, game schedule.Game, dryRun bool) SyncItemResult {
	row := SyncItemResult{ID: game.ID}

	if game.Status != schedule.StatusFinal {
		row.Status = syncStatusSkipped
		row.Message = fmt.Sprintf("game is %s, box scores sync only for final games", game.Status)
		return row
	}

	boxScore, err := s.provider.FetchBoxScore(ctx, game.ID)
	if err != nil {
		row.Status = syncStatusFailed
		row.Message = err.Error()
		s.logger.WarnContext(ctx, "fetch box score failed", "game_id", game.ID, "error", err)
		return row
	}

	if dryRun {
		row.Status = syncStatusSkipped
		row.Records = len(boxScore.Rows)
		row.Message = fmt.Sprintf("dry run, %d rows fetched", len(boxScore.Rows))
		return row
	}

	result, err := s.ingestion.IngestGameStats(ctx, IngestStatsInput{GameID: game.ID, Rows: boxScore.Rows})
	if err != nil {
		row.Status = syncStatusFailed
		row.Message = err.Error()
		s.logger.WarnContext(ctx, "ingest box score failed", "game_id", game.ID, "error", err)
		return row
	}

	row.Status = syncStatusSuccess
	row.Records = len(result.Rows)
	return row
}

func (s *FeedSyncService) ready() error {
	if !s.cfg.Enabled {
		return fmt.Errorf("%w: stats feed sync is disabled (STATS_FEED_ENABLED=false)", ErrDependencyUnavailable)
	}
	if s.provider == nil || s.ingestion == nil || s.scheduleRepo == nil {
		return fmt.Errorf("%w: stats feed sync is not fully configured", ErrDependencyUnavailable)
	}
	return nil
}

func normalizeSyncWorkerCount(requested, configured, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	value := requested
	if value <= 0 {
		value = configured
	}
	if value <= 0 {
		value = 1
	}
	if value > 4 {
		value = 4
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
