package engine

// AggregateTotals is a player's (or team entry's) career or season totals
// folded from multiple grade entries. Per-game rates are full precision;
// callers round for display.
type AggregateTotals struct {
	GamesPlayed    int     `json:"games_played"`
	TotalPoints    int     `json:"total_points"`
	OnePoint       int     `json:"one_point"`
	TwoPoint       int     `json:"two_point"`
	ThreePoint     int     `json:"three_point"`
	TotalFouls     int     `json:"total_fouls"`
	PPG            float64 `json:"ppg"`
	TwoPtPerGame   float64 `json:"two_pt_per_game"`
	ThreePtPerGame float64 `json:"three_pt_per_game"`
	FoulsPerGame   float64 `json:"fouls_per_game"`
	// ExcludedRows counts malformed rows dropped from the fold.
	ExcludedRows int `json:"excluded_rows,omitempty"`
}

// Aggregate folds stat lines into a single total. Malformed rows (negative
// counts) are skipped and surfaced via ExcludedRows; an empty or fully
// malformed input yields the zero aggregate, never an error or a NaN rate.
func Aggregate(lines []StatLine) AggregateTotals {
	var agg AggregateTotals
	for _, line := range lines {
		if !line.valid() {
			agg.ExcludedRows++
			continue
		}
		agg.GamesPlayed += line.GamesPlayed
		agg.TotalPoints += line.TotalPoints
		agg.OnePoint += line.OnePoint
		agg.TwoPoint += line.TwoPoint
		agg.ThreePoint += line.ThreePoint
		agg.TotalFouls += line.TotalFouls
	}

	agg.PPG = perGame(agg.TotalPoints, agg.GamesPlayed)
	agg.TwoPtPerGame = perGame(agg.TwoPoint, agg.GamesPlayed)
	agg.ThreePtPerGame = perGame(agg.ThreePoint, agg.GamesPlayed)
	agg.FoulsPerGame = perGame(agg.TotalFouls, agg.GamesPlayed)

	return agg
}
