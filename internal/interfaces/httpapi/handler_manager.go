package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListManagers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListManagers")
	defer span.End()

	managers, err := h.managerService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list managers failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	rosters, err := h.draftService.Rosters(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list rosters failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	rosterByManager := make(map[string][]playerDTO, len(rosters))
	for _, view := range rosters {
		players := make([]playerDTO, 0, len(view.Players))
		for _, p := range view.Players {
			players = append(players, playerToDTO(ctx, p, view.ManagerID))
		}
		rosterByManager[view.ManagerID] = players
	}

	items := make([]managerDTO, 0, len(managers))
	for _, m := range managers {
		items = append(items, managerDTO{
			ID:       m.ID,
			Name:     m.Name,
			TeamName: m.TeamName,
			Roster:   rosterByManager[m.ID],
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetManager(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetManager")
	defer span.End()

	managerID := strings.TrimSpace(r.PathValue("managerID"))
	item, err := h.managerService.Get(ctx, managerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get manager failed", "manager_id", managerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	view, err := h.draftService.RosterByManager(ctx, managerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster failed", "manager_id", managerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	players := make([]playerDTO, 0, len(view.Players))
	for _, p := range view.Players {
		players = append(players, playerToDTO(ctx, p, managerID))
	}

	writeSuccess(ctx, w, http.StatusOK, managerDTO{
		ID:       item.ID,
		Name:     item.Name,
		TeamName: item.TeamName,
		Roster:   players,
	})
}

type managerDTO struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	TeamName string      `json:"teamName"`
	Roster   []playerDTO `json:"roster"`
}
