package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindImprovement(t *testing.T) {
	player := PlayerIdentity{ID: "p1", FirstName: "Alex", LastName: "Reyes"}

	t.Run("ppg jump is rounded", func(t *testing.T) {
		previous := SeasonStat{SeasonID: "s1", SeasonName: "Winter 2024", GamesPlayed: 6, TotalPoints: 14}
		current := SeasonStat{SeasonID: "s2", SeasonName: "Summer 2025", GamesPlayed: 7, TotalPoints: 70}

		rec := FindImprovement(player, previous, current)
		assert.NotNil(t, rec)
		assert.InDelta(t, 7.7, rec.Improvement, 0.0001)
		assert.InDelta(t, 10.0, rec.CurrentPPG, 0.0001)
		assert.InDelta(t, 2.3, rec.PreviousPPG, 0.0001)
		assert.Equal(t, "Summer 2025", rec.CurrentSeason)
		assert.Equal(t, "Winter 2024", rec.PreviousSeason)
		assert.Equal(t, "Alex Reyes", rec.PlayerName)
	})

	t.Run("decline returns nil", func(t *testing.T) {
		previous := SeasonStat{SeasonID: "s1", GamesPlayed: 8, TotalPoints: 80}
		current := SeasonStat{SeasonID: "s2", GamesPlayed: 8, TotalPoints: 40}
		assert.Nil(t, FindImprovement(player, previous, current))
	})

	t.Run("flat season returns nil", func(t *testing.T) {
		previous := SeasonStat{SeasonID: "s1", GamesPlayed: 8, TotalPoints: 80}
		current := SeasonStat{SeasonID: "s2", GamesPlayed: 8, TotalPoints: 80}
		assert.Nil(t, FindImprovement(player, previous, current))
	})

	t.Run("thin samples excluded", func(t *testing.T) {
		thin := SeasonStat{SeasonID: "s1", GamesPlayed: 4, TotalPoints: 8}
		full := SeasonStat{SeasonID: "s2", GamesPlayed: 8, TotalPoints: 80}
		assert.Nil(t, FindImprovement(player, thin, full))
		assert.Nil(t, FindImprovement(player, full, thin))
	})

	t.Run("scoreless season excluded", func(t *testing.T) {
		scoreless := SeasonStat{SeasonID: "s1", GamesPlayed: 8}
		full := SeasonStat{SeasonID: "s2", GamesPlayed: 8, TotalPoints: 80}
		assert.Nil(t, FindImprovement(player, scoreless, full))
	})
}

func TestSeasonStatQualifies(t *testing.T) {
	assert.True(t, SeasonStat{GamesPlayed: 5, TotalPoints: 1}.Qualifies())
	assert.False(t, SeasonStat{GamesPlayed: 4, TotalPoints: 40}.Qualifies())
	assert.False(t, SeasonStat{GamesPlayed: 8, TotalPoints: 0}.Qualifies())
}

func TestRisingStars(t *testing.T) {
	records := []ImprovementRecord{
		{PlayerID: "a", Improvement: 2.1},
		{PlayerID: "b", Improvement: 7.7},
		{PlayerID: "c", Improvement: 4.0},
		{PlayerID: "d", Improvement: 4.0},
	}

	got := RisingStars(records, 3)

	assert.Len(t, got, 3)
	assert.Equal(t, "b", got[0].PlayerID)
	// Ties keep input order.
	assert.Equal(t, "c", got[1].PlayerID)
	assert.Equal(t, "d", got[2].PlayerID)

	// Input slice untouched.
	assert.Equal(t, "a", records[0].PlayerID)
}

func TestRisingStarsNoLimit(t *testing.T) {
	records := []ImprovementRecord{{PlayerID: "a", Improvement: 1}, {PlayerID: "b", Improvement: 2}}
	assert.Len(t, RisingStars(records, 0), 2)
	assert.Len(t, RisingStars(records, 50), 2)
}
