package engine

import "sort"

// RoundParticipation marks whether a player appeared in one round of an
// entry's fixture.
type RoundParticipation struct {
	Round  int
	Played bool
}

// AvailabilityEntry is one grade/team entry's participation figures.
// PossibleGames is the team's contested game count for the entry, estimated
// upstream (max games played by any teammate in the same grade entry).
type AvailabilityEntry struct {
	GamesPlayed   int
	PossibleGames int
	Participation []RoundParticipation
}

// AvailabilityRecord summarizes how much of their team's schedule a player
// was present for.
type AvailabilityRecord struct {
	TotalGames      int `json:"total_games"`
	TotalPossible   int `json:"total_possible"`
	AvailabilityPct int `json:"availability_pct"`
	LongestStreak   int `json:"longest_streak"`
	GamesMissed     int `json:"games_missed"`
}

// ComputeAvailability folds entries into an overall availability record.
// Numerators and denominators are summed before the percentage is taken, so
// a two-game cameo season cannot distort a full season's figure. Entries
// with zero possible games are excluded from both the ratio and the streak.
// The percentage is always within [0, 100] and games missed never goes
// negative, even when a player somehow outplays the possible-games estimate.
func ComputeAvailability(entries []AvailabilityEntry) AvailabilityRecord {
	var rec AvailabilityRecord
	for _, e := range entries {
		if e.PossibleGames <= 0 || e.GamesPlayed < 0 {
			continue
		}
		rec.TotalGames += e.GamesPlayed
		rec.TotalPossible += e.PossibleGames

		if streak := longestRunStreak(e.Participation); streak > rec.LongestStreak {
			rec.LongestStreak = streak
		}
	}

	if rec.TotalPossible > 0 {
		pct := int(float64(rec.TotalGames)/float64(rec.TotalPossible)*100 + 0.5)
		if pct > 100 {
			pct = 100
		}
		rec.AvailabilityPct = pct
	}

	rec.GamesMissed = rec.TotalPossible - rec.TotalGames
	if rec.GamesMissed < 0 {
		rec.GamesMissed = 0
	}

	return rec
}

// longestRunStreak scans round-ordered participation and returns the longest
// run of consecutive appearances. Any gap (a missed round or a hole in the
// round numbering) resets the counter.
func longestRunStreak(participation []RoundParticipation) int {
	if len(participation) == 0 {
		return 0
	}

	ordered := make([]RoundParticipation, len(participation))
	copy(ordered, participation)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Round < ordered[j].Round
	})

	longest, run := 0, 0
	prevRound := 0
	for i, p := range ordered {
		contiguous := i == 0 || p.Round == prevRound+1
		if p.Played && contiguous {
			run++
		} else if p.Played {
			run = 1
		} else {
			run = 0
		}
		if run > longest {
			longest = run
		}
		prevRound = p.Round
	}
	return longest
}
