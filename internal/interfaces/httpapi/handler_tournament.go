package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/tournament"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/usecase"
)

func (h *Handler) NominateTournamentPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.NominateTournamentPlayer")
	defer span.End()

	var req nominateRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	nomination, err := h.tournamentService.Nominate(ctx, usecase.NominateInput{
		ManagerID: req.ManagerID,
		PlayerID:  req.PlayerID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "nominate tournament player failed", "manager_id", req.ManagerID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, nominationToDTO(ctx, nomination))
}

func (h *Handler) WithdrawTournamentNomination(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WithdrawTournamentNomination")
	defer span.End()

	managerID := strings.TrimSpace(r.PathValue("managerID"))
	if err := h.tournamentService.Withdraw(ctx, managerID); err != nil {
		h.logger.WarnContext(ctx, "withdraw tournament nomination failed", "manager_id", managerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{
		"managerId": managerID,
		"status":    "withdrawn",
	})
}

func (h *Handler) GetTournamentBracket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournamentBracket")
	defer span.End()

	view, err := h.tournamentService.Bracket(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get tournament bracket failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bracketViewToDTO(ctx, view))
}

func (h *Handler) GenerateTournamentBracket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateTournamentBracket")
	defer span.End()

	bracket, err := h.tournamentService.GenerateBracket(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "generate tournament bracket failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "tournament bracket generated", "seeds", len(bracket.Seeds))

	writeSuccess(ctx, w, http.StatusCreated, bracketToDTO(ctx, bracket))
}

func (h *Handler) ResolveTournamentRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResolveTournamentRound")
	defer span.End()

	round := strings.TrimSpace(r.PathValue("round"))

	var req resolveRoundRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	bracket, err := h.tournamentService.ResolveRound(ctx, usecase.ResolveRoundInput{
		Round:     tournament.Round(round),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "resolve tournament round failed", "round", round, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "tournament round resolved", "round", round, "window_start", req.StartDate, "window_end", req.EndDate)

	writeSuccess(ctx, w, http.StatusOK, bracketToDTO(ctx, bracket))
}

type nominateRequest struct {
	ManagerID string `json:"managerId" validate:"required"`
	PlayerID  string `json:"playerId" validate:"required"`
}

type resolveRoundRequest struct {
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
}

type nominationDTO struct {
	ManagerID   string `json:"managerId"`
	PlayerID    string `json:"playerId"`
	NominatedAt string `json:"nominatedAtUtc"`
}

type seedDTO struct {
	Seed      int    `json:"seed"`
	ManagerID string `json:"managerId"`
	PlayerID  string `json:"playerId"`
}

type matchupDTO struct {
	Round      string  `json:"round"`
	Position   int     `json:"position"`
	HomeSeed   int     `json:"homeSeed"`
	AwaySeed   int     `json:"awaySeed"`
	HomePoints float64 `json:"homePoints"`
	AwayPoints float64 `json:"awayPoints"`
	WinnerSeed int     `json:"winnerSeed,omitempty"`
	Resolved   bool    `json:"resolved"`
}

type windowDTO struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type bracketDTO struct {
	Seeds     []seedDTO            `json:"seeds"`
	Matchups  []matchupDTO         `json:"matchups"`
	Windows   map[string]windowDTO `json:"windows,omitempty"`
	UpdatedAt string               `json:"updatedAtUtc"`
}

type bracketViewDTO struct {
	Generated           bool            `json:"generated"`
	NominationsReceived int             `json:"nominationsReceived"`
	MissingNominations  int             `json:"missingNominations"`
	Nominations         []nominationDTO `json:"nominations"`
	Bracket             *bracketDTO     `json:"bracket,omitempty"`
	Champion            *seedDTO        `json:"champion,omitempty"`
}

func nominationToDTO(ctx context.Context, v tournament.Nomination) nominationDTO {
	ctx, span := startSpan(ctx, "httpapi.nominationToDTO")
	defer span.End()

	_ = ctx
	return nominationDTO{
		ManagerID:   v.ManagerID,
		PlayerID:    v.PlayerID,
		NominatedAt: v.NominatedAt.UTC().Format(time.RFC3339),
	}
}

func bracketToDTO(ctx context.Context, v tournament.Bracket) bracketDTO {
	ctx, span := startSpan(ctx, "httpapi.bracketToDTO")
	defer span.End()

	_ = ctx
	seeds := make([]seedDTO, 0, len(v.Seeds))
	for _, seed := range v.Seeds {
		seeds = append(seeds, seedDTO{Seed: seed.Seed, ManagerID: seed.ManagerID, PlayerID: seed.PlayerID})
	}

	matchups := make([]matchupDTO, 0, len(v.Matchups))
	for _, m := range v.Matchups {
		matchups = append(matchups, matchupDTO{
			Round:      string(m.Round),
			Position:   m.Position,
			HomeSeed:   m.HomeSeed,
			AwaySeed:   m.AwaySeed,
			HomePoints: m.HomePoints,
			AwayPoints: m.AwayPoints,
			WinnerSeed: m.WinnerSeed,
			Resolved:   m.Resolved,
		})
	}

	var windows map[string]windowDTO
	if len(v.Windows) > 0 {
		windows = make(map[string]windowDTO, len(v.Windows))
		for round, window := range v.Windows {
			windows[string(round)] = windowDTO{StartDate: window.StartDate, EndDate: window.EndDate}
		}
	}

	return bracketDTO{
		Seeds:     seeds,
		Matchups:  matchups,
		Windows:   windows,
		UpdatedAt: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func bracketViewToDTO(ctx context.Context, v usecase.BracketView) bracketViewDTO {
	ctx, span := startSpan(ctx, "httpapi.bracketViewToDTO")
	defer span.End()

	_ = ctx
	nominations := make([]nominationDTO, 0, len(v.Nominations))
	for _, n := range v.Nominations {
		nominations = append(nominations, nominationToDTO(ctx, n))
	}

	dto := bracketViewDTO{
		Generated:           v.Generated,
		NominationsReceived: v.NominationsReceived,
		MissingNominations:  v.MissingNominations,
		Nominations:         nominations,
	}
	if v.Bracket != nil {
		bracket := bracketToDTO(ctx, *v.Bracket)
		dto.Bracket = &bracket
	}
	if v.Champion != nil {
		dto.Champion = &seedDTO{Seed: v.Champion.Seed, ManagerID: v.Champion.ManagerID, PlayerID: v.Champion.PlayerID}
	}
	return dto
}
