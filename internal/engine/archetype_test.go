package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyArchetype(t *testing.T) {
	tests := []struct {
		name      string
		ppg       float64
		threePtPg float64
		twoPtPg   float64
		foulsPg   float64
		expected  Archetype
	}{
		{name: "High scorer", ppg: 15, expected: ArchetypeHighVolume},
		{name: "High scorer beats sharpshooter rule", ppg: 18, threePtPg: 4, twoPtPg: 1, expected: ArchetypeHighVolume},
		{name: "Three point heavy", ppg: 10, threePtPg: 2.5, twoPtPg: 3, foulsPg: 1, expected: ArchetypeSharpshooter},
		{name: "Threes below ratio threshold", ppg: 10, threePtPg: 2, twoPtPg: 5, foulsPg: 1, expected: ArchetypeInsideScorer},
		{name: "Heavy fouler", ppg: 10, foulsPg: 3, expected: ArchetypePhysical},
		{name: "Moderate fouler low scoring", ppg: 5, foulsPg: 2, expected: ArchetypePhysical},
		{name: "Moderate fouler high scoring", ppg: 12, twoPtPg: 4, foulsPg: 2, expected: ArchetypeInsideScorer},
		{name: "Inside dominant", ppg: 9, threePtPg: 1, twoPtPg: 3.5, expected: ArchetypeInsideScorer},
		{name: "Nothing stands out", ppg: 6, threePtPg: 0.5, twoPtPg: 1, foulsPg: 1, expected: ArchetypeBalanced},
		{name: "Zero line", expected: ArchetypeBalanced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyArchetype(tt.ppg, tt.threePtPg, tt.twoPtPg, tt.foulsPg)
			assert.Equal(t, tt.expected, got)
		})
	}
}
