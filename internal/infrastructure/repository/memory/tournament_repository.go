package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/tournament"
)

type TournamentRepository struct {
	mu          sync.RWMutex
	nominations map[string]tournament.Nomination
	bracket     tournament.Bracket
	hasBracket  bool
}

func NewTournamentRepository() *TournamentRepository {
	return &TournamentRepository{nominations: make(map[string]tournament.Nomination)}
}

func (r *TournamentRepository) ListNominations(_ context.Context) ([]tournament.Nomination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tournament.Nomination, 0, len(r.nominations))
	for _, n := range r.nominations {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ManagerID < out[j].ManagerID })

	return out, nil
}

func (r *TournamentRepository) GetNomination(_ context.Context, managerID string) (tournament.Nomination, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.nominations[managerID]
	if !ok {
		return tournament.Nomination{}, false, nil
	}

	return n, true, nil
}

func (r *TournamentRepository) UpsertNomination(_ context.Context, nomination tournament.Nomination) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nominations[nomination.ManagerID] = nomination
	return nil
}

func (r *TournamentRepository) DeleteNomination(_ context.Context, managerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.nominations, managerID)
	return nil
}

func (r *TournamentRepository) GetBracket(_ context.Context) (tournament.Bracket, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.hasBracket {
		return tournament.Bracket{}, false, nil
	}

	return cloneBracket(r.bracket), true, nil
}

func (r *TournamentRepository) SaveBracket(_ context.Context, bracket tournament.Bracket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bracket = cloneBracket(bracket)
	r.hasBracket = true
	return nil
}

func cloneBracket(b tournament.Bracket) tournament.Bracket {
	copied := b
	copied.Seeds = append([]tournament.Seed(nil), b.Seeds...)
	copied.Matchups = append([]tournament.Matchup(nil), b.Matchups...)
	copied.Windows = make(map[tournament.Round]tournament.Window, len(b.Windows))
	for round, window := range b.Windows {
		copied.Windows[round] = window
	}
	return copied
}
