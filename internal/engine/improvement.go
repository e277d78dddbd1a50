package engine

import "sort"

// Minimum games in each season for an improvement comparison to count.
const improvementMinGames = 5

// SeasonStat is one player's production within a single season, already
// summed across that season's grades.
type SeasonStat struct {
	SeasonID    string
	SeasonName  string
	GamesPlayed int
	TotalPoints int
}

// PPG returns points per game for the season.
func (s SeasonStat) PPG() float64 {
	return perGame(s.TotalPoints, s.GamesPlayed)
}

// Qualifies reports whether the season is a large enough sample for an
// improvement comparison. Non-qualifying seasons are skipped entirely, so a
// short cameo season never masks two earlier full seasons.
func (s SeasonStat) Qualifies() bool {
	return s.GamesPlayed >= improvementMinGames && s.TotalPoints > 0
}

// ImprovementRecord captures a season-over-season PPG jump.
type ImprovementRecord struct {
	PlayerID       string  `json:"player_id"`
	PlayerName     string  `json:"player_name"`
	CurrentSeason  string  `json:"current_season"`
	PreviousSeason string  `json:"previous_season"`
	CurrentPPG     float64 `json:"current_ppg"`
	PreviousPPG    float64 `json:"previous_ppg"`
	Improvement    float64 `json:"improvement"`
	GamesPlayed    int     `json:"games_played"`
}

// FindImprovement compares a player's current season against the previous
// one and returns the PPG delta, or nil when the player lacks a qualifying
// sample (5+ games and at least one point) in either season, or when their
// scoring did not improve. The caller supplies the two seasons in
// chronological order: previous first.
func FindImprovement(player PlayerIdentity, previous, current SeasonStat) *ImprovementRecord {
	if !previous.Qualifies() || !current.Qualifies() {
		return nil
	}

	prevPpg := previous.PPG()
	curPpg := current.PPG()
	improvement := Round1(curPpg - prevPpg)
	if improvement <= 0 {
		return nil
	}

	return &ImprovementRecord{
		PlayerID:       player.ID,
		PlayerName:     player.Name(),
		CurrentSeason:  current.SeasonName,
		PreviousSeason: previous.SeasonName,
		CurrentPPG:     Round1(curPpg),
		PreviousPPG:    Round1(prevPpg),
		Improvement:    improvement,
		GamesPlayed:    current.GamesPlayed,
	}
}

// RisingStars sorts improvement records by delta descending and returns at
// most limit entries. Ties keep their relative input order, which the caller
// fixes upstream by ordering candidates deterministically.
func RisingStars(records []ImprovementRecord, limit int) []ImprovementRecord {
	sorted := make([]ImprovementRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Improvement > sorted[j].Improvement
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
