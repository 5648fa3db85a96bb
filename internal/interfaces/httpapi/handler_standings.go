package httpapi

import "net/http"

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	rows, err := h.standingsService.Standings(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingsRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, standingsRowDTO{
			Rank:          row.Rank,
			ManagerID:     row.ManagerID,
			ManagerName:   row.ManagerName,
			TeamName:      row.TeamName,
			TotalPoints:   row.TotalPoints,
			DaysScored:    row.DaysScored,
			AveragePerDay: row.AveragePerDay,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type standingsRowDTO struct {
	Rank          int     `json:"rank"`
	ManagerID     string  `json:"managerId"`
	ManagerName   string  `json:"managerName"`
	TeamName      string  `json:"teamName"`
	TotalPoints   float64 `json:"totalPoints"`
	DaysScored    int     `json:"daysScored"`
	AveragePerDay float64 `json:"averagePerDay"`
}
