package standings

// Row is one manager's line in the season table. Ranks are strict 1..N:
// managers tied on points are ordered by ascending manager id and still
// receive distinct ranks.
type Row struct {
	ManagerID     string
	ManagerName   string
	TeamName      string
	Rank          int
	TotalPoints   float64
	DaysScored    int
	AveragePerDay float64
}
