package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ids(players []ScoredPlayer) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.PlayerID
	}
	return out
}

func TestSelectAllStarsArchetypeDiversity(t *testing.T) {
	// Three archetypes in the pool force the last two spots to cover the
	// two not yet represented, bumping a higher-scored duplicate.
	sorted := []ScoredPlayer{
		{PlayerID: "a", Score: 100, Archetype: ArchetypeHighVolume},
		{PlayerID: "b", Score: 90, Archetype: ArchetypeHighVolume},
		{PlayerID: "c", Score: 80, Archetype: ArchetypeHighVolume},
		{PlayerID: "d", Score: 70, Archetype: ArchetypeSharpshooter},
		{PlayerID: "e", Score: 60, Archetype: ArchetypePhysical},
		{PlayerID: "f", Score: 50, Archetype: ArchetypeHighVolume},
	}

	got := SelectAllStars(sorted)

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(got.Team))
	assert.Equal(t, []string{"f"}, ids(got.HonorableMentions))
}

func TestSelectAllStarsTopScorerAlwaysStarts(t *testing.T) {
	sorted := []ScoredPlayer{
		{PlayerID: "a", Score: 100, Archetype: ArchetypeBalanced},
		{PlayerID: "b", Score: 90, Archetype: ArchetypeBalanced},
		{PlayerID: "c", Score: 80, Archetype: ArchetypeBalanced},
		{PlayerID: "d", Score: 70, Archetype: ArchetypeBalanced},
		{PlayerID: "e", Score: 60, Archetype: ArchetypeBalanced},
		{PlayerID: "f", Score: 50, Archetype: ArchetypeBalanced},
	}

	got := SelectAllStars(sorted)
	assert.Equal(t, "a", got.Team[0].PlayerID)
	assert.Len(t, got.Team, AllStarTeamSize)
}

func TestSelectAllStarsDegradesWithFewArchetypes(t *testing.T) {
	// Only two archetypes exist. The diversity floor of three forces an
	// early off-score pick, then the second forced scan finds nothing new
	// and falls back to best remaining. A full five is still returned.
	sorted := []ScoredPlayer{
		{PlayerID: "a", Score: 100, Archetype: ArchetypeHighVolume},
		{PlayerID: "b", Score: 90, Archetype: ArchetypeHighVolume},
		{PlayerID: "c", Score: 80, Archetype: ArchetypeHighVolume},
		{PlayerID: "d", Score: 70, Archetype: ArchetypeHighVolume},
		{PlayerID: "e", Score: 60, Archetype: ArchetypeHighVolume},
		{PlayerID: "f", Score: 55, Archetype: ArchetypeBalanced},
		{PlayerID: "g", Score: 40, Archetype: ArchetypeBalanced},
	}

	got := SelectAllStars(sorted)

	assert.Equal(t, []string{"a", "b", "c", "f", "d"}, ids(got.Team))
	assert.Equal(t, []string{"e", "g"}, ids(got.HonorableMentions))
}

func TestSelectTeamCustomSize(t *testing.T) {
	sorted := []ScoredPlayer{
		{PlayerID: "a", Score: 100, Archetype: ArchetypeHighVolume},
		{PlayerID: "b", Score: 90, Archetype: ArchetypeHighVolume},
		{PlayerID: "c", Score: 80, Archetype: ArchetypeSharpshooter},
		{PlayerID: "d", Score: 70, Archetype: ArchetypePhysical},
	}

	// Team of three with a two-archetype floor: the forced pick lands on
	// the sharpshooter before the second high-volume player.
	got := SelectTeam(sorted, 3, 2)
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))
}

func TestSelectAllStarsSmallPoolReturnedWhole(t *testing.T) {
	sorted := []ScoredPlayer{
		{PlayerID: "a", Score: 20, Archetype: ArchetypeBalanced},
		{PlayerID: "b", Score: 10, Archetype: ArchetypeBalanced},
	}

	got := SelectAllStars(sorted)
	assert.Equal(t, []string{"a", "b"}, ids(got.Team))
	assert.Empty(t, got.HonorableMentions)
}

func TestSelectAllStarsEmptyPool(t *testing.T) {
	got := SelectAllStars(nil)
	assert.Empty(t, got.Team)
	assert.Empty(t, got.HonorableMentions)
}

func TestScoredPlayerQualifies(t *testing.T) {
	assert.True(t, ScoredPlayer{GamesPlayed: 3}.Qualifies())
	assert.False(t, ScoredPlayer{GamesPlayed: 2}.Qualifies())
}
