package engine

import "sort"

// Minimum completed games for a team to receive a power rating.
const powerMinGames = 3

// TeamSeason is a team's season record plus roster scoring inputs for the
// power formula.
type TeamSeason struct {
	TeamID        string
	TeamName      string
	SeasonName    string
	Wins          int
	Losses        int
	Draws         int
	PointsFor     int
	PointsAgainst int
	// RosterPPGs holds each rostered player's points per game, any order.
	RosterPPGs []float64
}

// GamesPlayed returns the team's completed game count.
func (t TeamSeason) GamesPlayed() int {
	return t.Wins + t.Losses + t.Draws
}

// WinPct returns wins over completed games, 0 when none.
func (t TeamSeason) WinPct() float64 {
	gp := t.GamesPlayed()
	if gp == 0 {
		return 0
	}
	return float64(t.Wins) / float64(gp)
}

// avgPointDiff is the per-game scoring margin.
func (t TeamSeason) avgPointDiff() float64 {
	gp := t.GamesPlayed()
	if gp == 0 {
		return 0
	}
	return float64(t.PointsFor-t.PointsAgainst) / float64(gp)
}

// top5Avg averages the five best roster PPGs (fewer if the roster is small).
func (t TeamSeason) top5Avg() float64 {
	return topNAvg(t.RosterPPGs, 5)
}

// benchAvg averages the roster PPGs beyond the top five.
func (t TeamSeason) benchAvg() float64 {
	if len(t.RosterPPGs) <= 5 {
		return 0
	}
	sorted := sortedDesc(t.RosterPPGs)
	sum := 0.0
	for _, v := range sorted[5:] {
		sum += v
	}
	return sum / float64(len(sorted)-5)
}

func topNAvg(values []float64, n int) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := sortedDesc(values)
	if len(sorted) < n {
		n = len(sorted)
	}
	sum := 0.0
	for _, v := range sorted[:n] {
		sum += v
	}
	return sum / float64(n)
}

func sortedDesc(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Sort(sort.Reverse(sort.Float64Slice(out)))
	return out
}

// PowerRanking is one team's placed rating.
type PowerRanking struct {
	Rank         int     `json:"rank"`
	TeamID       string  `json:"team_id"`
	TeamName     string  `json:"team_name"`
	SeasonName   string  `json:"season_name"`
	Power        float64 `json:"power"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	Draws        int     `json:"draws"`
	WinPct       float64 `json:"win_pct"`
	AvgPointDiff float64 `json:"avg_point_diff"`
	Top5PPG      float64 `json:"top5_ppg"`
}

// RankTeamPower rates every team with at least powerMinGames completed
// games and returns them sorted by power descending with ranks assigned.
// The formula blends winning (40%), scoring margin normalized across the
// field (25%), top-end talent (20%), and bench depth (15%).
func RankTeamPower(teams []TeamSeason) []PowerRanking {
	eligible := make([]TeamSeason, 0, len(teams))
	for _, t := range teams {
		if t.GamesPlayed() >= powerMinGames {
			eligible = append(eligible, t)
		}
	}
	if len(eligible) == 0 {
		return []PowerRanking{}
	}

	minDiff, maxDiff := eligible[0].avgPointDiff(), eligible[0].avgPointDiff()
	maxTop5, maxBench := 0.0, 0.0
	for _, t := range eligible {
		d := t.avgPointDiff()
		if d < minDiff {
			minDiff = d
		}
		if d > maxDiff {
			maxDiff = d
		}
		if v := t.top5Avg(); v > maxTop5 {
			maxTop5 = v
		}
		if v := t.benchAvg(); v > maxBench {
			maxBench = v
		}
	}
	// Floors keep the normalizers sane for a tightly bunched field.
	if maxDiff < 1 {
		maxDiff = 1
	}
	if minDiff > -1 {
		minDiff = -1
	}
	if maxBench < 0.1 {
		maxBench = 0.1
	}

	rankings := make([]PowerRanking, 0, len(eligible))
	for _, t := range eligible {
		normDiff := 50.0
		if maxDiff != minDiff {
			normDiff = (t.avgPointDiff() - minDiff) / (maxDiff - minDiff) * 100
		}
		top5Score := 0.0
		if maxTop5 > 0 {
			top5Score = t.top5Avg() / maxTop5 * 100
		}
		benchScore := t.benchAvg() / maxBench * 100

		power := t.WinPct()*100*0.4 + normDiff*0.25 + top5Score*0.2 + benchScore*0.15
		rankings = append(rankings, PowerRanking{
			TeamID:       t.TeamID,
			TeamName:     t.TeamName,
			SeasonName:   t.SeasonName,
			Power:        Round1(power),
			Wins:         t.Wins,
			Losses:       t.Losses,
			Draws:        t.Draws,
			WinPct:       Round1(t.WinPct() * 100),
			AvgPointDiff: Round1(t.avgPointDiff()),
			Top5PPG:      Round1(t.top5Avg()),
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Power > rankings[j].Power
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}
	return rankings
}
