package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/singleflight"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/lineup"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/manager"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/player"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/roster"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/schedule"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/scoring"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/stats"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/platform/cache"
)

// recomputeWorkers caps the fan out when daily rows are rebuilt after an
// ingest. Eight managers means the pool never grows far anyway.
const recomputeWorkers = 4

// ScoringService turns raw box scores into fantasy points. Stat lines are the
// source of truth; per game scores and per manager daily rows are projections
// that ingestion keeps current and RecomputeAll can rebuild from scratch.
type ScoringService struct {
	managerRepo  manager.Repository
	playerRepo   player.Repository
	rosterRepo   roster.Repository
	lineupRepo   lineup.Repository
	scheduleRepo schedule.Repository
	statsRepo    stats.Repository
	scoringRepo  scoring.Repository

	weights scoring.Weights
	cache   *cache.Store

	recomputeGroup singleflight.Group
	now            func() time.Time
}

func NewScoringService(
	managerRepo manager.Repository,
	playerRepo player.Repository,
	rosterRepo roster.Repository,
	lineupRepo lineup.Repository,
	scheduleRepo schedule.Repository,
	statsRepo stats.Repository,
	scoringRepo scoring.Repository,
	weights scoring.Weights,
	store *cache.Store,
) *ScoringService {
	if weights == nil {
		weights = scoring.DefaultWeights()
	}
	return &ScoringService{
		managerRepo:  managerRepo,
		playerRepo:   playerRepo,
		rosterRepo:   rosterRepo,
		lineupRepo:   lineupRepo,
		scheduleRepo: scheduleRepo,
		statsRepo:    statsRepo,
		scoringRepo:  scoringRepo,
		weights:      weights,
		cache:        store,
		now:          time.Now,
	}
}

type StatRowInput struct {
	PlayerID string
	Counts   map[stats.Category]int
}

type IngestStatsInput struct {
	GameID string
	Rows   []StatRowInput
}

type IngestRowResult struct {
	PlayerID string
	Points   float64
}

type IngestResult struct {
	GameID           string
	Date             string
	Rows             []IngestRowResult
	AffectedManagers []string
	DailyRowsWritten int
	DailyRowsCleared int
}

// RecomputeResult summarizes one full replay of the stat history.
type RecomputeResult struct {
	RunID        string
	GamesScored  int
	PlayerScores int
	DailyRows    int
	Dates        int
	StartedAt    time.Time
	DurationMS   int64
}

// IngestGameStats replaces the stored box score for one game and refreshes
// every projection the change can reach. The batch is atomic: every row is
// validated before anything is written, and a bad row rejects the whole
// batch. Re-ingesting a game with corrected rows, or with none to wipe a
// mistaken feed payload, converges to the same projections as ingesting the
// final rows once.
func (s *ScoringService) IngestGameStats(ctx context.Context, input IngestStatsInput) (IngestResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.IngestGameStats")
	defer span.End()

	gameID := strings.TrimSpace(input.GameID)
	if gameID == "" {
		return IngestResult{}, fmt.Errorf("%w: game_id is required", ErrInvalidInput)
	}

	game, found, err := s.scheduleRepo.GetByID(ctx, gameID)
	if err != nil {
		return IngestResult{}, fmt.Errorf("get game by id: %w", err)
	}
	if !found {
		return IngestResult{}, fmt.Errorf("%w: game %s is not on the schedule", ErrInvalidInput, gameID)
	}

	lines, err := s.validateBatch(ctx, gameID, input.Rows)
	if err != nil {
		return IngestResult{}, err
	}

	previous, err := s.statsRepo.ListByGame(ctx, gameID)
	if err != nil {
		return IngestResult{}, fmt.Errorf("list stat lines: %w", err)
	}

	if err := s.statsRepo.ReplaceGameLines(ctx, gameID, lines); err != nil {
		return IngestResult{}, fmt.Errorf("replace stat lines: %w", err)
	}

	rowResults := make([]IngestRowResult, 0, len(lines))
	gameScores := make([]scoring.PlayerGameScore, 0, len(lines))
	for _, line := range lines {
		points := s.weights.Points(line.Counts)
		rowResults = append(rowResults, IngestRowResult{PlayerID: line.PlayerID, Points: points})
		gameScores = append(gameScores, scoring.PlayerGameScore{
			GameID:   gameID,
			PlayerID: line.PlayerID,
			Date:     game.Date,
			Points:   points,
		})
	}
	if err := s.scoringRepo.ReplaceGameScores(ctx, gameID, gameScores); err != nil {
		return IngestResult{}, fmt.Errorf("replace game scores: %w", err)
	}

	touched := make(map[string]struct{}, len(previous)+len(lines))
	for _, line := range previous {
		touched[line.PlayerID] = struct{}{}
	}
	for _, line := range lines {
		touched[line.PlayerID] = struct{}{}
	}

	affected, written, cleared, err := s.recomputeDate(ctx, game.Date, touched)
	if err != nil {
		return IngestResult{}, err
	}

	return IngestResult{
		GameID:           gameID,
		Date:             game.Date,
		Rows:             rowResults,
		AffectedManagers: affected,
		DailyRowsWritten: written,
		DailyRowsCleared: cleared,
	}, nil
}

// RecomputeAll drops every derived row and replays the full stat history.
// Concurrent calls collapse into one run; the projection it leaves behind is
// the one incremental ingestion would have produced. History that references
// a game or player the league no longer knows stops the replay instead of
// being skipped.
func (s *ScoringService) RecomputeAll(ctx context.Context) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecomputeAll")
	defer span.End()

	value, err, _ := s.recomputeGroup.Do("recompute-all", func() (any, error) {
		return s.recomputeAll(ctx)
	})
	if err != nil {
		return RecomputeResult{}, err
	}

	result, ok := value.(RecomputeResult)
	if !ok {
		return RecomputeResult{}, fmt.Errorf("unexpected recompute result type %T", value)
	}
	return result, nil
}

// GameScores lists the per player fantasy output recorded for one game.
func (s *ScoringService) GameScores(ctx context.Context, gameID string) ([]scoring.PlayerGameScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.GameScores")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, fmt.Errorf("%w: game_id is required", ErrInvalidInput)
	}
	if _, found, err := s.scheduleRepo.GetByID(ctx, gameID); err != nil {
		return nil, fmt.Errorf("get game by id: %w", err)
	} else if !found {
		return nil, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}

	scores, err := s.scoringRepo.ListGameScores(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("list game scores: %w", err)
	}
	return scores, nil
}

// ManagerScores lists a manager's daily rows in date order.
func (s *ScoringService) ManagerScores(ctx context.Context, managerID string) ([]scoring.ManagerDailyScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ManagerScores")
	defer span.End()

	managerID = strings.TrimSpace(managerID)
	if managerID == "" {
		return nil, fmt.Errorf("%w: manager_id is required", ErrInvalidInput)
	}
	if _, exists, err := s.managerRepo.GetByID(ctx, managerID); err != nil {
		return nil, fmt.Errorf("get manager by id: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: manager=%s", ErrNotFound, managerID)
	}

	rows, err := s.scoringRepo.ListDailyScoresByManager(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("list daily scores: %w", err)
	}
	return rows, nil
}

// ScoresByDate lists every manager's daily row for one date. Managers whose
// active players did not record a stat line are absent.
func (s *ScoringService) ScoresByDate(ctx context.Context, date string) ([]scoring.ManagerDailyScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoresByDate")
	defer span.End()

	date = strings.TrimSpace(date)
	if _, err := schedule.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rows, err := s.scoringRepo.ListDailyScoresByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list daily scores: %w", err)
	}
	return rows, nil
}

// PlayerDayLine is one active player's contribution inside a daily breakdown.
type PlayerDayLine struct {
	PlayerID   string
	PlayerName string
	Points     float64
	Games      int
}

// DailyBreakdown explains one manager's daily row: the resolved lineup and
// what each active player contributed across the date's games.
type DailyBreakdown struct {
	ManagerID  string
	Date       string
	Provenance lineup.Provenance
	SourceDate string
	Players    []PlayerDayLine
	Total      float64
}

// Breakdown resolves the lineup for (manager, date) and itemizes the points
// behind the daily row, including zero lines for active players who never
// took the floor.
func (s *ScoringService) Breakdown(ctx context.Context, managerID, date string) (DailyBreakdown, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.Breakdown")
	defer span.End()

	managerID = strings.TrimSpace(managerID)
	date = strings.TrimSpace(date)
	if managerID == "" {
		return DailyBreakdown{}, fmt.Errorf("%w: manager_id is required", ErrInvalidInput)
	}
	if _, err := schedule.ParseDate(date); err != nil {
		return DailyBreakdown{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, exists, err := s.managerRepo.GetByID(ctx, managerID); err != nil {
		return DailyBreakdown{}, fmt.Errorf("get manager by id: %w", err)
	} else if !exists {
		return DailyBreakdown{}, fmt.Errorf("%w: manager=%s", ErrNotFound, managerID)
	}

	resolved, err := s.resolveLineup(ctx, managerID, date)
	if err != nil {
		return DailyBreakdown{}, err
	}

	dayScores, err := s.scoresForDate(ctx, date)
	if err != nil {
		return DailyBreakdown{}, err
	}

	names := make(map[string]string, len(resolved.PlayerIDs))
	if players, err := s.playerRepo.GetByIDs(ctx, resolved.PlayerIDs); err != nil {
		return DailyBreakdown{}, fmt.Errorf("get players by ids: %w", err)
	} else {
		for _, p := range players {
			names[p.ID] = p.Name
		}
	}

	breakdown := DailyBreakdown{
		ManagerID:  managerID,
		Date:       date,
		Provenance: resolved.Provenance,
		SourceDate: resolved.SourceDate,
		Players:    make([]PlayerDayLine, 0, len(resolved.PlayerIDs)),
	}
	for _, playerID := range resolved.PlayerIDs {
		line := PlayerDayLine{PlayerID: playerID, PlayerName: names[playerID]}
		for _, score := range dayScores[playerID] {
			line.Points += score.Points
			line.Games++
		}
		breakdown.Total += line.Points
		breakdown.Players = append(breakdown.Players, line)
	}

	return breakdown, nil
}

func (s *ScoringService) validateBatch(ctx context.Context, gameID string, rows []StatRowInput) ([]stats.Line, error) {
	lines := make([]stats.Line, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	ids := make([]string, 0, len(rows))

	for _, row := range rows {
		playerID := strings.TrimSpace(row.PlayerID)
		if playerID == "" {
			return nil, fmt.Errorf("%w: stat row is missing a player id", ErrInvalidInput)
		}
		if _, dup := seen[playerID]; dup {
			return nil, fmt.Errorf("%w: batch holds two rows for player %s", ErrInvalidInput, playerID)
		}
		seen[playerID] = struct{}{}
		ids = append(ids, playerID)

		line := stats.Line{GameID: gameID, PlayerID: playerID, Counts: row.Counts}
		if err := line.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		lines = append(lines, line)
	}

	known, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}
	inPool := make(map[string]struct{}, len(known))
	for _, p := range known {
		inPool[p.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := inPool[id]; !ok {
			return nil, fmt.Errorf("%w: player %s is not in the league pool", ErrInvalidInput, id)
		}
	}

	return lines, nil
}

// recomputeDate rebuilds the daily rows of every manager whose resolved
// lineup for the date includes a touched player. Managers untouched by the
// change keep their rows as they are.
func (s *ScoringService) recomputeDate(ctx context.Context, date string, touched map[string]struct{}) (affected []string, written, cleared int, err error) {
	managers, err := s.managerRepo.List(ctx)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("list managers: %w", err)
	}

	dayScores, err := s.scoresForDate(ctx, date)
	if err != nil {
		return nil, 0, 0, err
	}

	type outcome struct {
		managerID string
		affected  bool
		wrote     bool
	}
	outcomes := make([]outcome, len(managers))

	workers := pool.New().WithContext(ctx).WithMaxGoroutines(recomputeWorkers).WithCancelOnError().WithFirstError()
	for i, m := range managers {
		i, m := i, m
		workers.Go(func(ctx context.Context) error {
			resolved, err := s.resolveLineup(ctx, m.ID, date)
			if err != nil {
				return err
			}

			hit := false
			for _, playerID := range resolved.PlayerIDs {
				if _, ok := touched[playerID]; ok {
					hit = true
					break
				}
			}
			if !hit {
				return nil
			}

			wrote, err := s.writeDailyRow(ctx, m.ID, date, resolved, dayScores)
			if err != nil {
				return err
			}
			outcomes[i] = outcome{managerID: m.ID, affected: true, wrote: wrote}
			return nil
		})
	}
	if err := workers.Wait(); err != nil {
		return nil, 0, 0, err
	}

	affected = make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		if !o.affected {
			continue
		}
		affected = append(affected, o.managerID)
		if o.wrote {
			written++
		} else {
			cleared++
		}
	}
	sort.Strings(affected)
	return affected, written, cleared, nil
}

// writeDailyRow sums the resolved players' scores for the date and upserts
// the row, or deletes it when no active player recorded a line.
func (s *ScoringService) writeDailyRow(ctx context.Context, managerID, date string, resolved lineup.Resolved, dayScores map[string][]scoring.PlayerGameScore) (bool, error) {
	total := 0.0
	contributing := 0
	for _, playerID := range resolved.PlayerIDs {
		for _, score := range dayScores[playerID] {
			total += score.Points
			contributing++
		}
	}

	if contributing == 0 {
		if err := s.scoringRepo.DeleteDailyScore(ctx, managerID, date); err != nil {
			return false, fmt.Errorf("delete daily score: %w", err)
		}
		return false, nil
	}

	row := scoring.ManagerDailyScore{
		ManagerID:  managerID,
		Date:       date,
		Points:     total,
		PlayerIDs:  append([]string(nil), resolved.PlayerIDs...),
		ComputedAt: s.now().UTC(),
	}
	if err := s.scoringRepo.UpsertDailyScore(ctx, row); err != nil {
		return false, fmt.Errorf("upsert daily score: %w", err)
	}
	return true, nil
}

func (s *ScoringService) recomputeAll(ctx context.Context) (RecomputeResult, error) {
	startedAt := s.now().UTC()
	result := RecomputeResult{RunID: uuid.NewString(), StartedAt: startedAt}

	games, err := s.scheduleRepo.List(ctx)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("list games: %w", err)
	}
	gamesByID := make(map[string]schedule.Game, len(games))
	for _, game := range games {
		gamesByID[game.ID] = game
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("list players: %w", err)
	}
	knownPlayers := make(map[string]struct{}, len(players))
	for _, p := range players {
		knownPlayers[p.ID] = struct{}{}
	}

	history, err := s.statsRepo.ListAll(ctx)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("list stat history: %w", err)
	}
	for _, line := range history {
		if _, ok := gamesByID[line.GameID]; !ok {
			return RecomputeResult{}, fmt.Errorf("%w: stat history references game %s that is no longer on the schedule", ErrInvalidState, line.GameID)
		}
		if _, ok := knownPlayers[line.PlayerID]; !ok {
			return RecomputeResult{}, fmt.Errorf("%w: stat history references player %s that is no longer in the pool", ErrInvalidState, line.PlayerID)
		}
	}

	if err := s.scoringRepo.ClearDerived(ctx); err != nil {
		return RecomputeResult{}, fmt.Errorf("clear derived scores: %w", err)
	}

	linesByGame := make(map[string][]stats.Line, len(gamesByID))
	for _, line := range history {
		linesByGame[line.GameID] = append(linesByGame[line.GameID], line)
	}
	for gameID, lines := range linesByGame {
		game := gamesByID[gameID]
		gameScores := make([]scoring.PlayerGameScore, 0, len(lines))
		for _, line := range lines {
			gameScores = append(gameScores, scoring.PlayerGameScore{
				GameID:   gameID,
				PlayerID: line.PlayerID,
				Date:     game.Date,
				Points:   s.weights.Points(line.Counts),
			})
		}
		if err := s.scoringRepo.ReplaceGameScores(ctx, gameID, gameScores); err != nil {
			return RecomputeResult{}, fmt.Errorf("replace game scores: %w", err)
		}
		result.GamesScored++
		result.PlayerScores += len(gameScores)
	}

	managers, err := s.managerRepo.List(ctx)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("list managers: %w", err)
	}
	dates, err := s.scheduleRepo.ListDates(ctx)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("list game dates: %w", err)
	}
	result.Dates = len(dates)

	for _, date := range dates {
		dayScores, err := s.scoresForDate(ctx, date)
		if err != nil {
			return RecomputeResult{}, err
		}
		for _, m := range managers {
			resolved, err := s.resolveLineup(ctx, m.ID, date)
			if err != nil {
				return RecomputeResult{}, err
			}
			wrote, err := s.writeDailyRow(ctx, m.ID, date, resolved, dayScores)
			if err != nil {
				return RecomputeResult{}, err
			}
			if wrote {
				result.DailyRows++
			}
		}
	}

	if s.cache != nil {
		s.cache.Flush(ctx)
	}

	result.DurationMS = time.Since(startedAt).Milliseconds()
	return result, nil
}

// scoresForDate gathers every player game score recorded on a date, keyed by
// player. Doubleheaders land two entries under one player.
func (s *ScoringService) scoresForDate(ctx context.Context, date string) (map[string][]scoring.PlayerGameScore, error) {
	games, err := s.scheduleRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list games by date: %w", err)
	}

	out := make(map[string][]scoring.PlayerGameScore)
	for _, game := range games {
		gameScores, err := s.scoringRepo.ListGameScores(ctx, game.ID)
		if err != nil {
			return nil, fmt.Errorf("list game scores: %w", err)
		}
		for _, score := range gameScores {
			out[score.PlayerID] = append(out[score.PlayerID], score)
		}
	}
	return out, nil
}

func (s *ScoringService) resolveLineup(ctx context.Context, managerID, date string) (lineup.Resolved, error) {
	submissions, err := s.lineupRepo.ListByManager(ctx, managerID)
	if err != nil {
		return lineup.Resolved{}, fmt.Errorf("list lineups: %w", err)
	}
	entries, err := s.rosterRepo.ListEntriesByManager(ctx, managerID)
	if err != nil {
		return lineup.Resolved{}, fmt.Errorf("list roster entries: %w", err)
	}
	rosterIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		rosterIDs = append(rosterIDs, entry.PlayerID)
	}
	return lineup.ResolveForDate(managerID, date, submissions, rosterIDs), nil
}
