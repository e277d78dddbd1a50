package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredictMatchupCapsAtNinetyFive(t *testing.T) {
	strong := PredictionInput{
		TeamID: "t1", TeamName: "Thunder",
		Wins:       10,
		RosterPPGs: []float64{20, 20, 20, 20, 20},
	}
	weak := PredictionInput{
		TeamID: "t2", TeamName: "Saints",
		Losses:     10,
		RosterPPGs: []float64{5, 5, 5, 5, 5},
	}

	pred := PredictMatchup(strong, weak, HeadToHead{})

	assert.Equal(t, 95, pred.TeamOneWinProb)
	assert.Equal(t, 5, pred.TeamTwoWinProb)
	assert.Len(t, pred.Factors, 3)
	for _, f := range pred.Factors {
		assert.Equal(t, "Thunder", f.Advantage)
	}
}

func TestPredictMatchupEvenTeams(t *testing.T) {
	a := PredictionInput{TeamName: "A", Wins: 5, Losses: 5, RosterPPGs: []float64{10, 10, 10, 10, 10}}
	b := PredictionInput{TeamName: "B", Wins: 5, Losses: 5, RosterPPGs: []float64{10, 10, 10, 10, 10}}

	pred := PredictMatchup(a, b, HeadToHead{})

	assert.Equal(t, 50, pred.TeamOneWinProb)
	assert.Equal(t, 50, pred.TeamTwoWinProb)
	for _, f := range pred.Factors {
		assert.Equal(t, "Even", f.Advantage)
		assert.Equal(t, 0.0, f.Impact)
	}
}

func TestPredictMatchupHeadToHeadFactor(t *testing.T) {
	a := PredictionInput{TeamName: "A", Wins: 5, Losses: 5, RosterPPGs: []float64{10, 10, 10, 10, 10}}
	b := PredictionInput{TeamName: "B", Wins: 5, Losses: 5, RosterPPGs: []float64{10, 10, 10, 10, 10}}

	pred := PredictMatchup(a, b, HeadToHead{TeamOneWins: 3, TeamTwoWins: 1})

	assert.Len(t, pred.Factors, 4)
	h2h := pred.Factors[3]
	assert.Contains(t, h2h.Name, "4 prior meetings")
	assert.Equal(t, "A", h2h.Advantage)
	// (3/4 - 0.5) * 20
	assert.InDelta(t, 5.0, h2h.Impact, 0.0001)
	assert.Equal(t, 55, pred.TeamOneWinProb)
}

func TestPredictMatchupProbabilitiesSumToHundred(t *testing.T) {
	a := PredictionInput{TeamName: "A", Wins: 7, Losses: 3, RosterPPGs: []float64{14, 12, 9}}
	b := PredictionInput{TeamName: "B", Wins: 4, Losses: 6, RosterPPGs: []float64{11, 10, 8, 6}}

	pred := PredictMatchup(a, b, HeadToHead{TeamOneWins: 1, TeamTwoWins: 2})
	assert.Equal(t, 100, pred.TeamOneWinProb+pred.TeamTwoWinProb)
	assert.GreaterOrEqual(t, pred.TeamOneWinProb, 5)
	assert.LessOrEqual(t, pred.TeamOneWinProb, 95)
}

func TestPredictionInputAvgPPGUsesTopFive(t *testing.T) {
	deep := PredictionInput{RosterPPGs: []float64{20, 18, 16, 14, 12, 1, 1, 1}}
	assert.InDelta(t, 16.0, deep.avgPPG(), 0.0001)

	thin := PredictionInput{RosterPPGs: []float64{9, 3}}
	assert.InDelta(t, 6.0, thin.avgPPG(), 0.0001)

	assert.Equal(t, 0.0, PredictionInput{}.avgPPG())
}
