package engine

import "fmt"

// PredictionInput is one side of a hypothetical matchup.
type PredictionInput struct {
	TeamID   string
	TeamName string
	Wins     int
	Losses   int
	Draws    int
	// RosterPPGs holds each rostered player's points per game.
	RosterPPGs []float64
}

func (p PredictionInput) gamesPlayed() int {
	return p.Wins + p.Losses + p.Draws
}

func (p PredictionInput) winPct() float64 {
	gp := p.gamesPlayed()
	if gp == 0 {
		return 0
	}
	return float64(p.Wins) / float64(gp)
}

// avgPPG averages the roster's scoring over at most its top five players,
// so deep rosters are not diluted by garbage-time entries.
func (p PredictionInput) avgPPG() float64 {
	n := len(p.RosterPPGs)
	if n == 0 {
		return 0
	}
	if n > 5 {
		n = 5
	}
	top := sortedDesc(p.RosterPPGs)[:n]
	sum := 0.0
	for _, v := range top {
		sum += v
	}
	return sum / float64(n)
}

// depth is the combined scoring of the top five roster players.
func (p PredictionInput) depth() float64 {
	sorted := sortedDesc(p.RosterPPGs)
	n := len(sorted)
	if n > 5 {
		n = 5
	}
	sum := 0.0
	for _, v := range sorted[:n] {
		sum += v
	}
	return sum
}

// HeadToHead is the prior meeting record between the two teams, from team
// one's perspective.
type HeadToHead struct {
	TeamOneWins int
	TeamTwoWins int
	Draws       int
}

func (h HeadToHead) total() int {
	return h.TeamOneWins + h.TeamTwoWins + h.Draws
}

// PredictionFactor explains one contribution to the probability.
type PredictionFactor struct {
	Name      string  `json:"name"`
	Advantage string  `json:"advantage"`
	Impact    float64 `json:"impact"`
}

// MatchupPrediction is the predicted outcome of a hypothetical game.
type MatchupPrediction struct {
	TeamOne        string             `json:"team_one"`
	TeamTwo        string             `json:"team_two"`
	TeamOneWinProb int                `json:"team_one_win_prob"`
	TeamTwoWinProb int                `json:"team_two_win_prob"`
	Factors        []PredictionFactor `json:"factors"`
}

// PredictMatchup estimates team one's win probability from record, scoring,
// depth and prior meetings. Each factor is clamped so no single edge can
// swamp the rest, and the final probability stays within 5-95 because a
// season this short never supports certainty.
func PredictMatchup(one, two PredictionInput, h2h HeadToHead) MatchupPrediction {
	prob := 50.0
	factors := []PredictionFactor{}

	addFactor := func(name string, impact, limit float64) {
		impact = clamp(impact, -limit, limit)
		prob += impact
		advantage := "Even"
		if impact > 0 {
			advantage = one.TeamName
		} else if impact < 0 {
			advantage = two.TeamName
		}
		factors = append(factors, PredictionFactor{
			Name:      name,
			Advantage: advantage,
			Impact:    Round1(impact),
		})
	}

	addFactor("Win rate", (one.winPct()-two.winPct())*40, 20)
	addFactor("Scoring", (one.avgPPG()-two.avgPPG())*1.5, 15)
	addFactor("Roster depth", (one.depth()-two.depth())*0.3, 10)

	if h2h.total() > 0 {
		edge := float64(h2h.TeamOneWins)/float64(h2h.total()) - 0.5
		addFactor(fmt.Sprintf("Head to head (%d prior meetings)", h2h.total()), edge*20, 10)
	}

	prob = clamp(prob, 5, 95)
	oneProb := int(prob + 0.5)

	return MatchupPrediction{
		TeamOne:        one.TeamName,
		TeamTwo:        two.TeamName,
		TeamOneWinProb: oneProb,
		TeamTwoWinProb: 100 - oneProb,
		Factors:        factors,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
