package engine

import (
	"math"
	"sort"
)

// Minimum games for a player to enter the scouting comparison population.
const scoutingMinGames = 2

// StatProfile is the per-game rate vector a scouting report compares on.
type StatProfile struct {
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	PPG        float64 `json:"ppg"`
	TwoPtPG    float64 `json:"two_pt_pg"`
	ThreePtPG  float64 `json:"three_pt_pg"`
	FoulsPG    float64 `json:"fouls_pg"`
}

// ProfileFromTotals builds a scouting profile from aggregated totals.
func ProfileFromTotals(player PlayerIdentity, totals AggregateTotals) StatProfile {
	return StatProfile{
		PlayerID:   player.ID,
		PlayerName: player.Name(),
		PPG:        totals.PPG,
		TwoPtPG:    totals.TwoPtPerGame,
		ThreePtPG:  totals.ThreePtPerGame,
		FoulsPG:    totals.FoulsPerGame,
	}
}

// StatPercentiles places each rate within the population, 0-100. Fouls are
// inverted so a higher number always reads as better.
type StatPercentiles struct {
	Scoring    int `json:"scoring"`
	InsideGame int `json:"inside_game"`
	Outside    int `json:"outside_shooting"`
	Discipline int `json:"discipline"`
}

// Composite is the mean of the four percentiles.
func (p StatPercentiles) Composite() float64 {
	return float64(p.Scoring+p.InsideGame+p.Outside+p.Discipline) / 4
}

// Comparable is another player whose statistical profile is close to the
// subject's. Similarity is 0-100, higher is closer.
type Comparable struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Similarity int    `json:"similarity"`
}

// ScoutingReport is the full comparison output for one player.
type ScoutingReport struct {
	Percentiles StatPercentiles `json:"percentiles"`
	Grade       string          `json:"grade"`
	Strengths   []string        `json:"strengths"`
	Weaknesses  []string        `json:"weaknesses"`
	Comparables []Comparable    `json:"comparables"`
}

// BuildScoutingReport compares a subject against a population of peer
// profiles. The subject must not appear in the population; the caller
// filters peers to those with a meaningful sample (scoutingMinGames or
// more). Percentiles count peers strictly below the subject on each rate,
// with fouls inverted. Strengths are dimensions at or above the 75th
// percentile, weaknesses at or below the 25th. Comparables are the three
// nearest peers by Euclidean distance over min-max-normalized rates.
func BuildScoutingReport(subject StatProfile, population []StatProfile) ScoutingReport {
	ppgs := make([]float64, len(population))
	twos := make([]float64, len(population))
	threes := make([]float64, len(population))
	fouls := make([]float64, len(population))
	for i, p := range population {
		ppgs[i] = p.PPG
		twos[i] = p.TwoPtPG
		threes[i] = p.ThreePtPG
		fouls[i] = p.FoulsPG
	}

	pct := StatPercentiles{
		Scoring:    PercentileOf(ppgs, subject.PPG),
		InsideGame: PercentileOf(twos, subject.TwoPtPG),
		Outside:    PercentileOf(threes, subject.ThreePtPG),
		Discipline: 100 - PercentileOf(fouls, subject.FoulsPG),
	}

	labels := []struct {
		name  string
		value int
	}{
		{"Scoring", pct.Scoring},
		{"Inside game", pct.InsideGame},
		{"Outside shooting", pct.Outside},
		{"Discipline", pct.Discipline},
	}
	strengths := []string{}
	weaknesses := []string{}
	for _, l := range labels {
		if l.value >= 75 {
			strengths = append(strengths, l.name)
		} else if l.value <= 25 {
			weaknesses = append(weaknesses, l.name)
		}
	}

	return ScoutingReport{
		Percentiles: pct,
		Grade:       letterGrade(pct.Composite()),
		Strengths:   strengths,
		Weaknesses:  weaknesses,
		Comparables: findComparables(subject, population),
	}
}

// letterGrade maps a 0-100 composite onto report-card bands.
func letterGrade(composite float64) string {
	switch {
	case composite >= 90:
		return "A+"
	case composite >= 80:
		return "A"
	case composite >= 70:
		return "B+"
	case composite >= 60:
		return "B"
	case composite >= 50:
		return "C+"
	case composite >= 40:
		return "C"
	case composite >= 30:
		return "D"
	default:
		return "F"
	}
}

// findComparables returns the three nearest peers. Each rate is min-max
// normalized over subject plus population so no single dimension dominates
// the distance. Similarity maps distance onto 0-100, with 2.0 (the full
// diagonal) treated as maximally dissimilar.
func findComparables(subject StatProfile, population []StatProfile) []Comparable {
	if len(population) == 0 {
		return []Comparable{}
	}

	all := append([]StatProfile{subject}, population...)
	minP, maxP := boundsOf(all)

	norm := func(v, lo, hi float64) float64 {
		if hi == lo {
			return 0
		}
		return (v - lo) / (hi - lo)
	}
	vec := func(p StatProfile) [4]float64 {
		return [4]float64{
			norm(p.PPG, minP[0], maxP[0]),
			norm(p.TwoPtPG, minP[1], maxP[1]),
			norm(p.ThreePtPG, minP[2], maxP[2]),
			norm(p.FoulsPG, minP[3], maxP[3]),
		}
	}

	sv := vec(subject)
	type scored struct {
		profile  StatProfile
		distance float64
	}
	candidates := make([]scored, 0, len(population))
	for _, p := range population {
		pv := vec(p)
		sum := 0.0
		for i := 0; i < 4; i++ {
			d := sv[i] - pv[i]
			sum += d * d
		}
		candidates = append(candidates, scored{profile: p, distance: math.Sqrt(sum)})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	n := 3
	if len(candidates) < n {
		n = len(candidates)
	}
	comparables := make([]Comparable, 0, n)
	for _, c := range candidates[:n] {
		similarity := int(math.Round((1 - c.distance/2) * 100))
		if similarity < 0 {
			similarity = 0
		}
		comparables = append(comparables, Comparable{
			PlayerID:   c.profile.PlayerID,
			PlayerName: c.profile.PlayerName,
			Similarity: similarity,
		})
	}
	return comparables
}

func boundsOf(profiles []StatProfile) (min, max [4]float64) {
	for i, p := range profiles {
		v := [4]float64{p.PPG, p.TwoPtPG, p.ThreePtPG, p.FoulsPG}
		if i == 0 {
			min, max = v, v
			continue
		}
		for j := 0; j < 4; j++ {
			if v[j] < min[j] {
				min[j] = v[j]
			}
			if v[j] > max[j] {
				max[j] = v[j]
			}
		}
	}
	return min, max
}
