package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"github.com/fullcourtvision/backend/internal/engine"
	"github.com/fullcourtvision/backend/internal/models"
)

func dateOf(year int, month time.Month, day int) *datatypes.Date {
	d := datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
	return &d
}

func statInSeason(season *models.Season, gradeID string, games, points int) models.PlayerStat {
	return models.PlayerStat{
		GradeID:     gradeID,
		GamesPlayed: games,
		TotalPoints: points,
		Grade:       &models.Grade{ID: gradeID, SeasonID: season.ID, Season: season},
	}
}

func TestSeasonTotalsFor(t *testing.T) {
	winter := &models.Season{ID: "s-winter", Name: "Winter 2024", StartDate: dateOf(2024, 4, 1)}
	summer := &models.Season{ID: "s-summer", Name: "Summer 2024", StartDate: dateOf(2024, 10, 1)}
	undated := &models.Season{ID: "s-undated", Name: "Historic"}

	t.Run("orders most recent first and sums across grades", func(t *testing.T) {
		totals := seasonTotalsFor([]models.PlayerStat{
			statInSeason(winter, "g1", 6, 48),
			statInSeason(summer, "g2", 4, 52),
			statInSeason(summer, "g3", 3, 20),
		})

		assert.Len(t, totals, 2)
		assert.Equal(t, "s-summer", totals[0].SeasonID)
		assert.Equal(t, 7, totals[0].GamesPlayed)
		assert.Equal(t, 72, totals[0].TotalPoints)
		assert.Equal(t, "s-winter", totals[1].SeasonID)
	})

	t.Run("drops undated seasons", func(t *testing.T) {
		totals := seasonTotalsFor([]models.PlayerStat{
			statInSeason(undated, "g1", 10, 100),
			statInSeason(winter, "g2", 5, 30),
		})

		assert.Len(t, totals, 1)
		assert.Equal(t, "s-winter", totals[0].SeasonID)
	})

	t.Run("same start date breaks on season id descending", func(t *testing.T) {
		twinA := &models.Season{ID: "s-a", Name: "A", StartDate: dateOf(2025, 1, 1)}
		twinB := &models.Season{ID: "s-b", Name: "B", StartDate: dateOf(2025, 1, 1)}

		totals := seasonTotalsFor([]models.PlayerStat{
			statInSeason(twinA, "g1", 3, 12),
			statInSeason(twinB, "g2", 3, 18),
		})

		assert.Equal(t, "s-b", totals[0].SeasonID)
		assert.Equal(t, "s-a", totals[1].SeasonID)
	})
}

func TestQualifyingSeasons(t *testing.T) {
	s2023 := &models.Season{ID: "s-2023", Name: "Winter 2023", StartDate: dateOf(2023, 4, 1)}
	s2024 := &models.Season{ID: "s-2024", Name: "Winter 2024", StartDate: dateOf(2024, 4, 1)}
	s2025 := &models.Season{ID: "s-2025", Name: "Winter 2025", StartDate: dateOf(2025, 4, 1)}

	t.Run("cameo season does not block two full seasons", func(t *testing.T) {
		seasons := qualifyingSeasons(seasonTotalsFor([]models.PlayerStat{
			statInSeason(s2023, "g1", 10, 50),
			statInSeason(s2024, "g2", 10, 120),
			statInSeason(s2025, "g3", 3, 12),
		}))

		assert.Len(t, seasons, 2)
		assert.Equal(t, "s-2024", seasons[0].SeasonID)
		assert.Equal(t, "s-2023", seasons[1].SeasonID)

		rec := engine.FindImprovement(engine.PlayerIdentity{ID: "p1", FirstName: "Jo", LastName: "Riser"}, seasons[1], seasons[0])
		assert.NotNil(t, rec)
		assert.Equal(t, 7.0, rec.Improvement)
		assert.Equal(t, "Winter 2024", rec.CurrentSeason)
	})

	t.Run("scoreless season drops out", func(t *testing.T) {
		seasons := qualifyingSeasons(seasonTotalsFor([]models.PlayerStat{
			statInSeason(s2023, "g1", 8, 40),
			statInSeason(s2024, "g2", 8, 0),
		}))

		assert.Len(t, seasons, 1)
		assert.Equal(t, "s-2023", seasons[0].SeasonID)
	})

	t.Run("fewer than two qualifying seasons yields no comparison", func(t *testing.T) {
		seasons := qualifyingSeasons(seasonTotalsFor([]models.PlayerStat{
			statInSeason(s2024, "g1", 10, 80),
			statInSeason(s2025, "g2", 4, 30),
		}))

		assert.Len(t, seasons, 1)
	})
}

func TestTopRows(t *testing.T) {
	rows := []LeaderboardEntry{
		{PlayerID: "low", GamesPlayed: 3, PPG: 22.0},
		{PlayerID: "mid", GamesPlayed: 8, PPG: 14.0},
		{PlayerID: "high", GamesPlayed: 10, PPG: 18.0},
	}

	t.Run("filters then sorts", func(t *testing.T) {
		board := topRows(rows, func(r LeaderboardEntry) bool { return r.GamesPlayed >= 5 },
			func(a, b LeaderboardEntry) bool { return a.PPG > b.PPG })

		assert.Len(t, board, 2)
		assert.Equal(t, "high", board[0].PlayerID)
		assert.Equal(t, "mid", board[1].PlayerID)
	})

	t.Run("nil filter keeps everything", func(t *testing.T) {
		board := topRows(rows, nil,
			func(a, b LeaderboardEntry) bool { return a.PPG > b.PPG })

		assert.Len(t, board, 3)
		assert.Equal(t, "low", board[0].PlayerID)
	})

	t.Run("caps at board limit", func(t *testing.T) {
		many := make([]LeaderboardEntry, boardLimit+10)
		board := topRows(many, nil,
			func(a, b LeaderboardEntry) bool { return a.PPG > b.PPG })

		assert.Len(t, board, boardLimit)
	})
}
