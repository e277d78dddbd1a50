package engine

import "sort"

// foulEfficiencyCeiling caps the points-per-foul term so near-zero-foul
// outliers cannot dominate the composite.
const foulEfficiencyCeiling = 30

// EfficiencyScore computes the composite used for all-star selection and
// player rankings: scoring volume weighted 70%, bounded foul efficiency 30%.
// A player with zero fouls gets their raw points as the efficiency term
// before the ceiling applies. The weights are preserved as shipped.
func EfficiencyScore(totals AggregateTotals) float64 {
	if totals.GamesPlayed == 0 {
		return 0
	}
	efficiency := float64(totals.TotalPoints)
	if totals.TotalFouls > 0 {
		efficiency = float64(totals.TotalPoints) / float64(totals.TotalFouls)
	}
	if efficiency > foulEfficiencyCeiling {
		efficiency = foulEfficiencyCeiling
	}
	return totals.PPG*0.7 + efficiency*0.3
}

// RawPER computes the per-game efficiency base for the PER dashboard:
// (PTS + 2PT*0.5 + 3PT*1.0 - FOULS*0.8) / GP.
func RawPER(totals AggregateTotals) float64 {
	if totals.GamesPlayed == 0 {
		return 0
	}
	raw := float64(totals.TotalPoints) +
		float64(totals.TwoPoint)*0.5 +
		float64(totals.ThreePoint)*1.0 -
		float64(totals.TotalFouls)*0.8
	return raw / float64(totals.GamesPlayed)
}

// PERNormFactor returns the multiplier that rescales raw PER so the league
// average lands on 15. A degenerate population normalizes to factor 1.
func PERNormFactor(rawPERs []float64) float64 {
	if len(rawPERs) == 0 {
		return 1
	}
	sum := 0.0
	for _, v := range rawPERs {
		sum += v
	}
	avg := sum / float64(len(rawPERs))
	if avg == 0 {
		return 1
	}
	return 15 / avg
}

// RankResult places a rating within a population. Percentile is nil when the
// population is empty (the unranked sentinel), never NaN.
type RankResult struct {
	Rank       int      `json:"rank"`
	Percentile *float64 `json:"percentile"`
}

// RankWithin ranks a rating against an explicitly scoped population. The
// percentile is count-based (100 * countLowerOrEqual / N) so equal ratings
// share a percentile instead of being split by input order. Rank is
// 1 + count of strictly higher ratings, which likewise gives ties the same
// ordinal. The caller decides the population scope (grade, season, global);
// scopes are never mixed here.
func RankWithin(rating float64, population []float64) RankResult {
	if len(population) == 0 {
		return RankResult{Rank: 0, Percentile: nil}
	}

	higher := 0
	lowerOrEqual := 0
	for _, v := range population {
		if v > rating {
			higher++
		} else {
			lowerOrEqual++
		}
	}

	pct := 100 * float64(lowerOrEqual) / float64(len(population))
	return RankResult{Rank: higher + 1, Percentile: &pct}
}

// PercentileOf returns the share of the population strictly below the value,
// on a 0-100 scale. Used by scouting report percentiles where "beat N% of
// peers" is the framing. Returns 0 for an empty population.
func PercentileOf(population []float64, value float64) int {
	if len(population) == 0 {
		return 0
	}
	below := 0
	for _, v := range population {
		if v < value {
			below++
		}
	}
	return int(float64(below)/float64(len(population))*100 + 0.5)
}

// SortDescending sorts ratings high-to-low in place and returns the slice.
func SortDescending(ratings []float64) []float64 {
	sort.Sort(sort.Reverse(sort.Float64Slice(ratings)))
	return ratings
}
