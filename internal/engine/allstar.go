package engine

// Selection pool minimums and sizes.
const (
	allStarMinGames       = 3
	AllStarTeamSize       = 5
	MinDistinctArchetypes = 3
	HonorableMentionCount = 5
)

// ScoredPlayer is an all-star candidate with their composite score and
// classified archetype.
type ScoredPlayer struct {
	PlayerID    string    `json:"player_id"`
	PlayerName  string    `json:"player_name"`
	TeamName    string    `json:"team_name"`
	GradeName   string    `json:"grade_name"`
	Score       float64   `json:"score"`
	PPG         float64   `json:"ppg"`
	GamesPlayed int       `json:"games_played"`
	Archetype   Archetype `json:"archetype"`
}

// Qualifies reports whether the candidate meets the selection pool minimum.
func (p ScoredPlayer) Qualifies() bool {
	return p.GamesPlayed >= allStarMinGames
}

// AllStarSelection is a picked starting five plus the next best candidates.
type AllStarSelection struct {
	Team              []ScoredPlayer `json:"team"`
	HonorableMentions []ScoredPlayer `json:"honorable_mentions"`
}

// SelectTeam greedily picks teamSize players from candidates already sorted
// by score descending. The best player is always taken. Each later spot
// takes the best remaining candidate, unless the number of archetypes still
// needed to reach minDistinct equals or exceeds the open spots; then the
// pick is forced to the best candidate of an unrepresented archetype. When
// the pool holds fewer archetypes than minDistinct the forced scan finds
// nothing and the pick falls back to best remaining, so the constraint
// degrades instead of leaving spots empty. Single pass, no backtracking; a
// feasible team, not necessarily the score-maximizing one. A pool no bigger
// than teamSize is returned whole.
func SelectTeam(sorted []ScoredPlayer, teamSize, minDistinct int) []ScoredPlayer {
	if len(sorted) <= teamSize {
		team := make([]ScoredPlayer, len(sorted))
		copy(team, sorted)
		return team
	}

	team := make([]ScoredPlayer, 0, teamSize)
	represented := make(map[Archetype]bool)

	remaining := make([]ScoredPlayer, len(sorted)-1)
	copy(remaining, sorted[1:])

	team = append(team, sorted[0])
	represented[sorted[0].Archetype] = true

	for len(team) < teamSize && len(remaining) > 0 {
		spotsLeft := teamSize - len(team)
		needed := minDistinct - len(represented)
		if needed < 0 {
			needed = 0
		}

		pickIdx := -1
		if needed >= spotsLeft {
			for i, p := range remaining {
				if !represented[p.Archetype] {
					pickIdx = i
					break
				}
			}
		}
		if pickIdx == -1 {
			pickIdx = 0
		}

		pick := remaining[pickIdx]
		team = append(team, pick)
		represented[pick.Archetype] = true
		remaining = append(remaining[:pickIdx], remaining[pickIdx+1:]...)
	}

	return team
}

// SelectAllStars applies the standard team size and diversity floor, then
// fills honorable mentions with the next best unpicked candidates.
func SelectAllStars(sorted []ScoredPlayer) AllStarSelection {
	team := SelectTeam(sorted, AllStarTeamSize, MinDistinctArchetypes)

	picked := make(map[string]bool, len(team))
	for _, p := range team {
		picked[p.PlayerID] = true
	}

	mentions := make([]ScoredPlayer, 0, HonorableMentionCount)
	for _, p := range sorted {
		if len(mentions) == HonorableMentionCount {
			break
		}
		if !picked[p.PlayerID] {
			mentions = append(mentions, p)
		}
	}

	return AllStarSelection{Team: team, HonorableMentions: mentions}
}
