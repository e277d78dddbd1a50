// Package engine implements the derived-statistics computations behind the
// analytics dashboards: aggregation, archetypes, anomaly badges, efficiency
// ranking, availability, clutch ratings, rising stars and all-star selection.
//
// Every function here is a pure transform over rows the caller has already
// fetched. The engine never opens connections, caches results or holds state
// between calls, so concurrent invocations are safe by construction.
package engine

import "math"

// StatLine is one player's accumulated line within one grade entry, as
// stored by the scraper. Point buckets are made-basket counts, not attempts.
type StatLine struct {
	PlayerID    string
	GradeID     string
	GradeName   string
	SeasonName  string
	TeamName    string
	GamesPlayed int
	TotalPoints int
	OnePoint    int
	TwoPoint    int
	ThreePoint  int
	TotalFouls  int
	Ranking     *int
}

// PlayerIdentity carries the fields detectors need to label output.
type PlayerIdentity struct {
	ID        string
	FirstName string
	LastName  string
}

// Name returns the display name.
func (p PlayerIdentity) Name() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// valid reports whether a row is usable. Negative games or counts indicate a
// corrupted scrape; such rows are excluded rather than failing the batch.
func (s StatLine) valid() bool {
	return s.GamesPlayed >= 0 &&
		s.TotalPoints >= 0 &&
		s.OnePoint >= 0 &&
		s.TwoPoint >= 0 &&
		s.ThreePoint >= 0 &&
		s.TotalFouls >= 0
}

// perGame divides a total by games, defined as 0 for an empty sample.
func perGame(total, games int) float64 {
	if games <= 0 {
		return 0
	}
	return float64(total) / float64(games)
}

// Round1 rounds to one decimal place. Rates are kept at full precision
// internally and rounded only at the presentation boundary.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
