package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fullcourtvision/backend/internal/models"
)

func TestStatLinesFromStats(t *testing.T) {
	seasonA := &models.Season{ID: "season-a", Name: "Winter 2025"}
	seasonB := &models.Season{ID: "season-b", Name: "Summer 2025"}
	stats := []models.PlayerStat{
		{
			PlayerID:    "p1",
			GradeID:     "g1",
			TeamName:    "Hawks",
			GamesPlayed: 8,
			TotalPoints: 96,
			Grade:       &models.Grade{ID: "g1", Name: "U16 Division 1", Season: seasonA},
		},
		{
			PlayerID:    "p1",
			GradeID:     "g2",
			TeamName:    "Hawks",
			GamesPlayed: 5,
			TotalPoints: 40,
			Grade:       &models.Grade{ID: "g2", Name: "U16 Division 2", Season: seasonB},
		},
		{
			PlayerID:    "p1",
			GradeID:     "g3",
			TeamName:    "Fill-in",
			GamesPlayed: 1,
			TotalPoints: 2,
			// No grade preloaded; names resolve to empty strings.
		},
	}

	t.Run("no filter keeps all rows with resolved names", func(t *testing.T) {
		lines := statLinesFromStats(stats, nil)

		assert.Len(t, lines, 3)
		assert.Equal(t, "U16 Division 1", lines[0].GradeName)
		assert.Equal(t, "Winter 2025", lines[0].SeasonName)
		assert.Equal(t, "", lines[2].GradeName)
		assert.Equal(t, "", lines[2].SeasonName)
	})

	t.Run("season filter drops out-of-scope rows", func(t *testing.T) {
		lines := statLinesFromStats(stats, func(s *models.Season) bool {
			return s != nil && s.ID == "season-b"
		})

		assert.Len(t, lines, 1)
		assert.Equal(t, "g2", lines[0].GradeID)
	})

	t.Run("filter excludes rows without a season", func(t *testing.T) {
		lines := statLinesFromStats(stats, func(s *models.Season) bool {
			return s != nil
		})

		assert.Len(t, lines, 2)
	})
}

func TestEntryKey(t *testing.T) {
	assert.Equal(t, entryKey("g1", "Hawks"), entryKey("g1", "HAWKS"))
	assert.NotEqual(t, entryKey("g1", "Hawks"), entryKey("g2", "Hawks"))
}

func TestSyntheticParticipation(t *testing.T) {
	t.Run("contiguous rounds all played", func(t *testing.T) {
		participation := syntheticParticipation(4)

		assert.Len(t, participation, 4)
		for i, round := range participation {
			assert.Equal(t, i+1, round.Round)
			assert.True(t, round.Played)
		}
	})

	t.Run("zero games yields nothing", func(t *testing.T) {
		assert.Nil(t, syntheticParticipation(0))
	})
}
