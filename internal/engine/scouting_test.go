package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func scoutingPopulation() []StatProfile {
	return []StatProfile{
		{PlayerID: "q", PlayerName: "Quinn", PPG: 2, TwoPtPG: 0.5, ThreePtPG: 0.1, FoulsPG: 1},
		{PlayerID: "r", PlayerName: "Riley", PPG: 4, TwoPtPG: 1.0, ThreePtPG: 0.3, FoulsPG: 2},
		{PlayerID: "s", PlayerName: "Sasha", PPG: 6, TwoPtPG: 1.5, ThreePtPG: 0.6, FoulsPG: 3},
		{PlayerID: "u", PlayerName: "Uri", PPG: 8, TwoPtPG: 2.0, ThreePtPG: 0.9, FoulsPG: 4},
	}
}

func TestBuildScoutingReportDominantSubject(t *testing.T) {
	subject := StatProfile{PlayerID: "p", PlayerName: "Parker", PPG: 10, TwoPtPG: 3, ThreePtPG: 1.5, FoulsPG: 0}

	report := BuildScoutingReport(subject, scoutingPopulation())

	assert.Equal(t, 100, report.Percentiles.Scoring)
	assert.Equal(t, 100, report.Percentiles.InsideGame)
	assert.Equal(t, 100, report.Percentiles.Outside)
	// Fewest fouls in the field inverts to a perfect discipline mark.
	assert.Equal(t, 100, report.Percentiles.Discipline)
	assert.Equal(t, "A+", report.Grade)
	assert.ElementsMatch(t, []string{"Scoring", "Inside game", "Outside shooting", "Discipline"}, report.Strengths)
	assert.Empty(t, report.Weaknesses)
	assert.Len(t, report.Comparables, 3)
	// Uri's profile sits closest to the subject's.
	assert.Equal(t, "u", report.Comparables[0].PlayerID)
}

func TestBuildScoutingReportWeakSubject(t *testing.T) {
	subject := StatProfile{PlayerID: "p", PPG: 1, TwoPtPG: 0.2, ThreePtPG: 0, FoulsPG: 5}

	report := BuildScoutingReport(subject, scoutingPopulation())

	assert.Equal(t, 0, report.Percentiles.Scoring)
	assert.Equal(t, 0, report.Percentiles.Discipline)
	assert.Equal(t, "F", report.Grade)
	assert.Empty(t, report.Strengths)
	assert.Contains(t, report.Weaknesses, "Scoring")
	assert.Contains(t, report.Weaknesses, "Discipline")
}

func TestBuildScoutingReportMidfieldSubject(t *testing.T) {
	subject := StatProfile{PlayerID: "p", PPG: 5, TwoPtPG: 1.2, ThreePtPG: 0.5, FoulsPG: 2.5}

	report := BuildScoutingReport(subject, scoutingPopulation())

	assert.Equal(t, 50, report.Percentiles.Scoring)
	assert.Equal(t, 50, report.Percentiles.Discipline)
	assert.Equal(t, "C+", report.Grade)
	assert.Empty(t, report.Strengths)
	assert.Empty(t, report.Weaknesses)
}

func TestBuildScoutingReportEmptyPopulation(t *testing.T) {
	subject := StatProfile{PlayerID: "p", PPG: 5}

	report := BuildScoutingReport(subject, nil)

	assert.Equal(t, 0, report.Percentiles.Scoring)
	assert.Equal(t, 100, report.Percentiles.Discipline)
	assert.Empty(t, report.Comparables)
}

func TestFindComparablesSimilarityBounds(t *testing.T) {
	subject := StatProfile{PlayerID: "p", PPG: 10, TwoPtPG: 3, ThreePtPG: 1, FoulsPG: 1}
	twin := StatProfile{PlayerID: "t", PPG: 10, TwoPtPG: 3, ThreePtPG: 1, FoulsPG: 1}
	opposite := StatProfile{PlayerID: "o", PPG: 0, TwoPtPG: 0, ThreePtPG: 0, FoulsPG: 5}

	report := BuildScoutingReport(subject, []StatProfile{twin, opposite})

	assert.Equal(t, "t", report.Comparables[0].PlayerID)
	assert.Equal(t, 100, report.Comparables[0].Similarity)
	assert.GreaterOrEqual(t, report.Comparables[1].Similarity, 0)
	assert.Less(t, report.Comparables[1].Similarity, 100)
}
