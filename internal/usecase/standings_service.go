package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/manager"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/scoring"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/standings"
)

// StandingsService ranks managers by season total. The table is computed
// from daily rows on every read, so it is always consistent with whatever
// scoring has persisted.
type StandingsService struct {
	managerRepo manager.Repository
	scoringRepo scoring.Repository
}

func NewStandingsService(managerRepo manager.Repository, scoringRepo scoring.Repository) *StandingsService {
	return &StandingsService{managerRepo: managerRepo, scoringRepo: scoringRepo}
}

// Standings returns one row per manager, ranked by descending season total
// with ties broken by ascending manager id. Every manager appears even before
// any score exists, so an empty season ranks everyone 1 through N by id.
func (s *StandingsService) Standings(ctx context.Context) ([]standings.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Standings")
	defer span.End()

	managers, err := s.managerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}

	dailyScores, err := s.scoringRepo.ListDailyScores(ctx)
	if err != nil {
		return nil, fmt.Errorf("list daily scores: %w", err)
	}

	totals := make(map[string]float64, len(managers))
	days := make(map[string]int, len(managers))
	for _, row := range dailyScores {
		totals[row.ManagerID] += row.Points
		days[row.ManagerID]++
	}

	table := make([]standings.Row, 0, len(managers))
	for _, m := range managers {
		row := standings.Row{
			ManagerID:   m.ID,
			ManagerName: m.Name,
			TeamName:    m.TeamName,
			TotalPoints: totals[m.ID],
			DaysScored:  days[m.ID],
		}
		if row.DaysScored > 0 {
			row.AveragePerDay = row.TotalPoints / float64(row.DaysScored)
		}
		table = append(table, row)
	}

	sort.SliceStable(table, func(i, j int) bool {
		if table[i].TotalPoints != table[j].TotalPoints {
			return table[i].TotalPoints > table[j].TotalPoints
		}
		return table[i].ManagerID < table[j].ManagerID
	})
	for i := range table {
		table[i].Rank = i + 1
	}

	return table, nil
}
