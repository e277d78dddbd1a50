package engine

// CloseGameMargin is the score difference at or under which a completed
// game counts as close.
const CloseGameMargin = 5

// Leaderboard sample minimums: below these a clutch record is still
// computed but flagged as insufficient for ranked output.
const (
	clutchMinTotalGames = 5
	clutchMinCloseGames = 3
)

// GameResult is a completed or scheduled fixture reduced to what the rater
// needs. Scores are only meaningful when Completed is true.
type GameResult struct {
	GradeID    string
	HomeTeamID string
	AwayTeamID string
	HomeScore  int
	AwayScore  int
	Completed  bool
}

// CloseRecord tallies a team's close-game outcomes within the grades it
// contested.
type CloseRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// Total returns the number of close games in the record.
func (r CloseRecord) Total() int {
	return r.Wins + r.Losses + r.Draws
}

// BuildCloseGameLedger folds completed games into per-team close records.
// Only games decided by CloseGameMargin or fewer points contribute.
func BuildCloseGameLedger(games []GameResult) map[string]CloseRecord {
	ledger := make(map[string]CloseRecord)
	for _, g := range games {
		if !g.Completed {
			continue
		}
		margin := g.HomeScore - g.AwayScore
		if margin < 0 {
			margin = -margin
		}
		if margin > CloseGameMargin {
			continue
		}

		home := ledger[g.HomeTeamID]
		away := ledger[g.AwayTeamID]
		switch {
		case g.HomeScore == g.AwayScore:
			home.Draws++
			away.Draws++
		case g.HomeScore > g.AwayScore:
			home.Wins++
			away.Losses++
		default:
			home.Losses++
			away.Wins++
		}
		if g.HomeTeamID != "" {
			ledger[g.HomeTeamID] = home
		}
		if g.AwayTeamID != "" {
			ledger[g.AwayTeamID] = away
		}
	}
	return ledger
}

// CloseGameStats summarizes completed close games for the dashboard header.
type CloseGameStats struct {
	TotalCloseGames int     `json:"total_close_games"`
	AvgMargin       float64 `json:"avg_margin"`
}

// SummarizeCloseGames reports how many completed games were close and their
// average margin.
func SummarizeCloseGames(games []GameResult) CloseGameStats {
	var stats CloseGameStats
	marginSum := 0
	for _, g := range games {
		if !g.Completed {
			continue
		}
		margin := g.HomeScore - g.AwayScore
		if margin < 0 {
			margin = -margin
		}
		if margin > CloseGameMargin {
			continue
		}
		stats.TotalCloseGames++
		marginSum += margin
	}
	if stats.TotalCloseGames > 0 {
		stats.AvgMargin = Round1(float64(marginSum) / float64(stats.TotalCloseGames))
	}
	return stats
}

// ClutchRecord is a player's close-game profile plus their composite rating.
type ClutchRecord struct {
	Rating           float64 `json:"clutch_rating"`
	OverallPPG       float64 `json:"overall_ppg"`
	CloseGameWins    int     `json:"close_game_wins"`
	CloseGameLosses  int     `json:"close_game_losses"`
	CloseGames       int     `json:"close_games"`
	TotalGames       int     `json:"total_games"`
	QualifiesForRank bool    `json:"qualifies_for_rank"`
}

// RateClutch blends a player's scoring rate with their team's close-game
// win rate and a capped volume bonus. With zero close games the rating is
// exactly the baseline scoring term; the record is still produced, but
// QualifiesForRank marks whether the sample is big enough for leaderboard
// inclusion (5+ total games, 3+ close games).
func RateClutch(totals AggregateTotals, closeRecord CloseRecord) ClutchRecord {
	closeGames := closeRecord.Total()
	ppg := totals.PPG

	rating := ppg * 0.4
	if closeGames > 0 {
		winRate := float64(closeRecord.Wins) / float64(closeGames)
		volumeBonus := float64(closeGames) / 10
		if volumeBonus > 1.5 {
			volumeBonus = 1.5
		}
		rating += winRate*50*0.4 + volumeBonus*10*0.2
	}

	return ClutchRecord{
		Rating:           rating,
		OverallPPG:       ppg,
		CloseGameWins:    closeRecord.Wins,
		CloseGameLosses:  closeRecord.Losses,
		CloseGames:       closeGames,
		TotalGames:       totals.GamesPlayed,
		QualifiesForRank: totals.GamesPlayed >= clutchMinTotalGames && closeGames >= clutchMinCloseGames,
	}
}
