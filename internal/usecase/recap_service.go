package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/lineup"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/manager"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/player"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/roster"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/schedule"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/scoring"
)

// defaultRecapDays is how many recent game dates Recent covers when the
// caller does not say.
const defaultRecapDays = 3

// RecapService builds the storylines for a game date: the top scorer, the
// manager of the day, and the bench decision that hurt the most.
type RecapService struct {
	managerRepo  manager.Repository
	playerRepo   player.Repository
	rosterRepo   roster.Repository
	lineupRepo   lineup.Repository
	scheduleRepo schedule.Repository
	scoringRepo  scoring.Repository
}

func NewRecapService(
	managerRepo manager.Repository,
	playerRepo player.Repository,
	rosterRepo roster.Repository,
	lineupRepo lineup.Repository,
	scheduleRepo schedule.Repository,
	scoringRepo scoring.Repository,
) *RecapService {
	return &RecapService{
		managerRepo:  managerRepo,
		playerRepo:   playerRepo,
		rosterRepo:   rosterRepo,
		lineupRepo:   lineupRepo,
		scheduleRepo: scheduleRepo,
		scoringRepo:  scoringRepo,
	}
}

// RecapTopScorer is the highest scoring player across the date's games.
type RecapTopScorer struct {
	PlayerID   string
	PlayerName string
	ProTeam    string
	Points     float64
}

// RecapManagerOfDay is the manager whose daily row led the date.
type RecapManagerOfDay struct {
	ManagerID    string
	ManagerName  string
	TeamName     string
	Points       float64
	ActivePlayed int
}

// RecapBenchMistake is the highest scoring player left on a bench that date.
type RecapBenchMistake struct {
	ManagerID  string
	PlayerID   string
	PlayerName string
	Points     float64
}

// DailyRecap is one date's storylines. Sections are nil when the date gave
// them nothing: no stats means no top scorer, no daily rows means no manager
// of the day, every scorer active means no bench mistake.
type DailyRecap struct {
	Date         string
	GamesPlayed  int
	TopScorer    *RecapTopScorer
	ManagerOfDay *RecapManagerOfDay
	BenchMistake *RecapBenchMistake
}

// Daily builds the recap for one date.
func (s *RecapService) Daily(ctx context.Context, date string) (DailyRecap, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecapService.Daily")
	defer span.End()

	date = strings.TrimSpace(date)
	if _, err := schedule.ParseDate(date); err != nil {
		return DailyRecap{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	games, err := s.scheduleRepo.ListByDate(ctx, date)
	if err != nil {
		return DailyRecap{}, fmt.Errorf("list games by date: %w", err)
	}

	recap := DailyRecap{Date: date, GamesPlayed: len(games)}
	if len(games) == 0 {
		return recap, nil
	}

	playerPoints := make(map[string]float64)
	for _, game := range games {
		gameScores, err := s.scoringRepo.ListGameScores(ctx, game.ID)
		if err != nil {
			return DailyRecap{}, fmt.Errorf("list game scores: %w", err)
		}
		for _, score := range gameScores {
			playerPoints[score.PlayerID] += score.Points
		}
	}
	if len(playerPoints) == 0 {
		return recap, nil
	}

	topScorer, err := s.topScorer(ctx, playerPoints)
	if err != nil {
		return DailyRecap{}, err
	}
	recap.TopScorer = topScorer

	managerOfDay, err := s.managerOfDay(ctx, date, playerPoints)
	if err != nil {
		return DailyRecap{}, err
	}
	recap.ManagerOfDay = managerOfDay

	benchMistake, err := s.benchMistake(ctx, date, playerPoints)
	if err != nil {
		return DailyRecap{}, err
	}
	recap.BenchMistake = benchMistake

	return recap, nil
}

// Recent builds recaps for the latest game dates with recorded stats, newest
// first. A non positive limit falls back to the default.
func (s *RecapService) Recent(ctx context.Context, limit int) ([]DailyRecap, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecapService.Recent")
	defer span.End()

	if limit <= 0 {
		limit = defaultRecapDays
	}

	dates, err := s.scheduleRepo.ListDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list game dates: %w", err)
	}

	played := make([]string, 0, len(dates))
	for _, date := range dates {
		games, err := s.scheduleRepo.ListByDate(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("list games by date: %w", err)
		}
		hasScores := false
		for _, game := range games {
			gameScores, err := s.scoringRepo.ListGameScores(ctx, game.ID)
			if err != nil {
				return nil, fmt.Errorf("list game scores: %w", err)
			}
			if len(gameScores) > 0 {
				hasScores = true
				break
			}
		}
		if hasScores {
			played = append(played, date)
		}
	}

	if len(played) > limit {
		played = played[len(played)-limit:]
	}

	recaps := make([]DailyRecap, 0, len(played))
	for i := len(played) - 1; i >= 0; i-- {
		recap, err := s.Daily(ctx, played[i])
		if err != nil {
			return nil, err
		}
		recaps = append(recaps, recap)
	}
	return recaps, nil
}

func (s *RecapService) topScorer(ctx context.Context, playerPoints map[string]float64) (*RecapTopScorer, error) {
	bestID := ""
	bestPoints := 0.0
	for playerID, points := range playerPoints {
		if bestID == "" || points > bestPoints || (points == bestPoints && playerID < bestID) {
			bestID = playerID
			bestPoints = points
		}
	}
	if bestID == "" {
		return nil, nil
	}

	p, found, err := s.playerRepo.GetByID(ctx, bestID)
	if err != nil {
		return nil, fmt.Errorf("get player by id: %w", err)
	}
	top := &RecapTopScorer{PlayerID: bestID, Points: bestPoints}
	if found {
		top.PlayerName = p.Name
		top.ProTeam = p.ProTeam
	}
	return top, nil
}

func (s *RecapService) managerOfDay(ctx context.Context, date string, playerPoints map[string]float64) (*RecapManagerOfDay, error) {
	rows, err := s.scoringRepo.ListDailyScoresByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list daily scores: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	best := rows[0]
	for _, row := range rows[1:] {
		if row.Points > best.Points || (row.Points == best.Points && row.ManagerID < best.ManagerID) {
			best = row
		}
	}

	winner := &RecapManagerOfDay{ManagerID: best.ManagerID, Points: best.Points}
	for _, playerID := range best.PlayerIDs {
		if _, played := playerPoints[playerID]; played {
			winner.ActivePlayed++
		}
	}
	if m, exists, err := s.managerRepo.GetByID(ctx, best.ManagerID); err != nil {
		return nil, fmt.Errorf("get manager by id: %w", err)
	} else if exists {
		winner.ManagerName = m.Name
		winner.TeamName = m.TeamName
	}
	return winner, nil
}

func (s *RecapService) benchMistake(ctx context.Context, date string, playerPoints map[string]float64) (*RecapBenchMistake, error) {
	managers, err := s.managerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}

	var worst *RecapBenchMistake
	for _, m := range managers {
		entries, err := s.rosterRepo.ListEntriesByManager(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("list roster entries: %w", err)
		}
		submissions, err := s.lineupRepo.ListByManager(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("list lineups: %w", err)
		}

		rosterIDs := make([]string, 0, len(entries))
		for _, entry := range entries {
			rosterIDs = append(rosterIDs, entry.PlayerID)
		}
		resolved := lineup.ResolveForDate(m.ID, date, submissions, rosterIDs)
		active := make(map[string]struct{}, len(resolved.PlayerIDs))
		for _, playerID := range resolved.PlayerIDs {
			active[playerID] = struct{}{}
		}

		for _, playerID := range rosterIDs {
			if _, isActive := active[playerID]; isActive {
				continue
			}
			points, played := playerPoints[playerID]
			if !played {
				continue
			}
			if worst == nil || points > worst.Points || (points == worst.Points && playerID < worst.PlayerID) {
				worst = &RecapBenchMistake{ManagerID: m.ID, PlayerID: playerID, Points: points}
			}
		}
	}
	if worst == nil {
		return nil, nil
	}

	if p, found, err := s.playerRepo.GetByID(ctx, worst.PlayerID); err != nil {
		return nil, fmt.Errorf("get player by id: %w", err)
	} else if found {
		worst.PlayerName = p.Name
	}
	return worst, nil
}
