package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeAvailability(t *testing.T) {
	t.Run("zero possible entries excluded from ratio", func(t *testing.T) {
		entries := []AvailabilityEntry{
			{GamesPlayed: 9, PossibleGames: 10},
			{GamesPlayed: 0, PossibleGames: 0},
		}
		rec := ComputeAvailability(entries)
		assert.Equal(t, 9, rec.TotalGames)
		assert.Equal(t, 10, rec.TotalPossible)
		assert.Equal(t, 90, rec.AvailabilityPct)
		assert.Equal(t, 1, rec.GamesMissed)
	})

	t.Run("ratios summed not averaged", func(t *testing.T) {
		// 2/2 plus 5/10 is 7/12 = 58%, not the 75% a mean of ratios gives.
		entries := []AvailabilityEntry{
			{GamesPlayed: 2, PossibleGames: 2},
			{GamesPlayed: 5, PossibleGames: 10},
		}
		rec := ComputeAvailability(entries)
		assert.Equal(t, 58, rec.AvailabilityPct)
		assert.Equal(t, 5, rec.GamesMissed)
	})

	t.Run("overplayed estimate clamps", func(t *testing.T) {
		entries := []AvailabilityEntry{{GamesPlayed: 12, PossibleGames: 10}}
		rec := ComputeAvailability(entries)
		assert.Equal(t, 100, rec.AvailabilityPct)
		assert.Equal(t, 0, rec.GamesMissed)
	})

	t.Run("empty input", func(t *testing.T) {
		rec := ComputeAvailability(nil)
		assert.Equal(t, 0, rec.AvailabilityPct)
		assert.Equal(t, 0, rec.LongestStreak)
	})
}

func TestLongestRunStreak(t *testing.T) {
	tests := []struct {
		name          string
		participation []RoundParticipation
		expected      int
	}{
		{
			name: "missed round resets",
			participation: []RoundParticipation{
				{Round: 1, Played: true},
				{Round: 2, Played: true},
				{Round: 3, Played: false},
				{Round: 4, Played: true},
				{Round: 5, Played: true},
				{Round: 6, Played: true},
			},
			expected: 3,
		},
		{
			name: "numbering hole resets",
			participation: []RoundParticipation{
				{Round: 1, Played: true},
				{Round: 2, Played: true},
				{Round: 5, Played: true},
				{Round: 6, Played: true},
			},
			expected: 2,
		},
		{
			name: "unsorted input",
			participation: []RoundParticipation{
				{Round: 4, Played: true},
				{Round: 1, Played: true},
				{Round: 3, Played: true},
				{Round: 2, Played: true},
			},
			expected: 4,
		},
		{
			name: "never played",
			participation: []RoundParticipation{
				{Round: 1, Played: false},
				{Round: 2, Played: false},
			},
			expected: 0,
		},
		{name: "empty", participation: nil, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := AvailabilityEntry{GamesPlayed: 1, PossibleGames: 1, Participation: tt.participation}
			rec := ComputeAvailability([]AvailabilityEntry{entry})
			assert.Equal(t, tt.expected, rec.LongestStreak)
		})
	}
}
