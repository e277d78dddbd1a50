package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankTeamPower(t *testing.T) {
	teams := []TeamSeason{
		{
			TeamID: "t1", TeamName: "Thunder", SeasonName: "Winter 2025",
			Wins: 9, Losses: 1, PointsFor: 800, PointsAgainst: 600,
			RosterPPGs: []float64{20, 18, 15, 12, 10, 5, 3},
		},
		{
			TeamID: "t2", TeamName: "Breakers", SeasonName: "Winter 2025",
			Wins: 5, Losses: 5, PointsFor: 700, PointsAgainst: 700,
			RosterPPGs: []float64{15, 12, 10, 8, 6},
		},
		{
			// Two games played, below the eligibility floor.
			TeamID: "t3", TeamName: "Saints", SeasonName: "Winter 2025",
			Wins: 1, Losses: 1, PointsFor: 100, PointsAgainst: 90,
			RosterPPGs: []float64{10, 8},
		},
	}

	rankings := RankTeamPower(teams)

	assert.Len(t, rankings, 2)
	assert.Equal(t, "t1", rankings[0].TeamID)
	assert.Equal(t, 1, rankings[0].Rank)
	assert.Equal(t, "t2", rankings[1].TeamID)
	assert.Equal(t, 2, rankings[1].Rank)
	assert.Greater(t, rankings[0].Power, rankings[1].Power)
	assert.InDelta(t, 90.0, rankings[0].WinPct, 0.0001)
	assert.InDelta(t, 20.0, rankings[0].AvgPointDiff, 0.0001)
	assert.InDelta(t, 15.0, rankings[0].Top5PPG, 0.0001)
}

func TestRankTeamPowerDrawsCountAsGames(t *testing.T) {
	teams := []TeamSeason{{
		TeamID: "t1", TeamName: "Thunder",
		Wins: 1, Draws: 2, PointsFor: 150, PointsAgainst: 150,
		RosterPPGs: []float64{10},
	}}

	rankings := RankTeamPower(teams)
	assert.Len(t, rankings, 1)
	assert.InDelta(t, 33.3, rankings[0].WinPct, 0.05)
}

func TestRankTeamPowerEmptyAndIneligible(t *testing.T) {
	assert.Empty(t, RankTeamPower(nil))
	assert.Empty(t, RankTeamPower([]TeamSeason{{TeamID: "t1", Wins: 2}}))
}

func TestTeamSeasonBenchAvg(t *testing.T) {
	deep := TeamSeason{RosterPPGs: []float64{20, 18, 15, 12, 10, 6, 4}}
	assert.InDelta(t, 5.0, deep.benchAvg(), 0.0001)

	shallow := TeamSeason{RosterPPGs: []float64{20, 18}}
	assert.Equal(t, 0.0, shallow.benchAvg())
}
