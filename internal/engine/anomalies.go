package engine

import (
	"fmt"
	"math"
)

// Severity tiers an anomaly badge.
type Severity string

const (
	SeverityNotable   Severity = "notable"
	SeverityRare      Severity = "rare"
	SeverityLegendary Severity = "legendary"
)

// AnomalyType identifies a badge family.
type AnomalyType string

const (
	AnomalyIronman              AnomalyType = "ironman"
	AnomalyScoringSpike         AnomalyType = "scoring_spike"
	AnomalySharpshooter         AnomalyType = "sharpshooter"
	AnomalyFoulTrouble          AnomalyType = "foul_trouble"
	AnomalyThreePointSpecialist AnomalyType = "three_point_specialist"
	AnomalyVolumeScorer         AnomalyType = "volume_scorer"
	AnomalyDefensiveDiscipline  AnomalyType = "defensive_discipline"
	AnomalyRisingStar           AnomalyType = "rising_star"
	AnomalyConsistentPerformer  AnomalyType = "consistent_performer"
)

// Anomaly is one badge awarded to a player's career stat line.
type Anomaly struct {
	Type        AnomalyType `json:"type"`
	Label       string      `json:"label"`
	Description string      `json:"description"`
	Severity    Severity    `json:"severity"`
	Emoji       string      `json:"emoji"`
	Detail      string      `json:"detail"`
}

// DetectAnomalies scans a player's full career row set and returns the
// badges that fire. Rules are evaluated independently in a fixed order, so
// output is deterministic and idempotent; several badges may fire at once,
// except that a career-level foul-trouble badge suppresses the per-grade
// variant. Empty or zero-game input yields an empty list.
func DetectAnomalies(stats []StatLine, player PlayerIdentity) []Anomaly {
	anomalies := []Anomaly{}
	if len(stats) == 0 {
		return anomalies
	}

	agg := Aggregate(stats)
	if agg.GamesPlayed == 0 {
		return anomalies
	}

	overallPpg := agg.PPG
	overallFpg := agg.FoulsPerGame

	// Ironman: 0 fouls across 20+ games
	if agg.TotalFouls == 0 && agg.GamesPlayed >= 20 {
		anomalies = append(anomalies, Anomaly{
			Type:        AnomalyIronman,
			Label:       "Ironman",
			Description: "Zero fouls across an entire career",
			Severity:    SeverityLegendary,
			Emoji:       "🛡️",
			Detail:      fmt.Sprintf("%d games played with 0 total fouls — remarkable discipline.", agg.GamesPlayed),
		})
	} else if agg.TotalFouls == 0 && agg.GamesPlayed >= 10 {
		anomalies = append(anomalies, Anomaly{
			Type:        AnomalyIronman,
			Label:       "Clean Sheet",
			Description: "Zero fouls across 10+ games",
			Severity:    SeverityRare,
			Emoji:       "🛡️",
			Detail:      fmt.Sprintf("%d games played with 0 total fouls.", agg.GamesPlayed),
		})
	}

	// Scoring spikes: each grade's PPG vs the career average. Only the
	// first qualifying spike is reported.
	var gradesWithGames []StatLine
	for _, row := range stats {
		if row.valid() && row.GamesPlayed >= 3 {
			gradesWithGames = append(gradesWithGames, row)
		}
	}
	for _, row := range gradesWithGames {
		gradePpg := perGame(row.TotalPoints, row.GamesPlayed)
		if overallPpg > 0 && gradePpg > overallPpg*2 && gradePpg >= 5 {
			severity := SeverityRare
			if gradePpg > overallPpg*3 {
				severity = SeverityLegendary
			}
			gradeName := row.GradeName
			if gradeName == "" {
				gradeName = row.GradeID
			}
			detail := fmt.Sprintf("%.1f PPG in %s", gradePpg, gradeName)
			if row.SeasonName != "" {
				detail += fmt.Sprintf(" (%s)", row.SeasonName)
			}
			detail += fmt.Sprintf(" vs career average of %.1f PPG.", overallPpg)
			anomalies = append(anomalies, Anomaly{
				Type:        AnomalyScoringSpike,
				Label:       "Scoring Spike",
				Description: "Averaged 2x+ their career PPG in a grade",
				Severity:    severity,
				Emoji:       "🔥",
				Detail:      detail,
			})
			break
		}
	}

	// Three-point specialist
	if agg.ThreePoint >= 20 && agg.GamesPlayed >= 10 {
		threePtPg := agg.ThreePtPerGame
		if threePtPg >= 1.5 {
			severity := SeverityRare
			if threePtPg >= 3 {
				severity = SeverityLegendary
			}
			anomalies = append(anomalies, Anomaly{
				Type:        AnomalyThreePointSpecialist,
				Label:       "Sniper",
				Description: "Elite three-point shooter",
				Severity:    severity,
				Emoji:       "🎯",
				Detail:      fmt.Sprintf("%.1f three-pointers per game (%d total across %d games).", threePtPg, agg.ThreePoint, agg.GamesPlayed),
			})
		}
	}

	// Volume scorer: high PPG across many games
	if agg.GamesPlayed >= 15 && overallPpg >= 15 {
		severity := SeverityNotable
		if overallPpg >= 25 {
			severity = SeverityLegendary
		} else if overallPpg >= 20 {
			severity = SeverityRare
		}
		anomalies = append(anomalies, Anomaly{
			Type:        AnomalyVolumeScorer,
			Label:       "Volume Scorer",
			Description: "Sustained high-volume scoring",
			Severity:    severity,
			Emoji:       "💪",
			Detail:      fmt.Sprintf("%.1f PPG across %d career games (%d total points).", overallPpg, agg.GamesPlayed, agg.TotalPoints),
		})
	}

	// Foul trouble: consistently high fouls
	if agg.GamesPlayed >= 10 && overallFpg >= 3 {
		severity := SeverityNotable
		if overallFpg >= 4 {
			severity = SeverityRare
		}
		anomalies = append(anomalies, Anomaly{
			Type:        AnomalyFoulTrouble,
			Label:       "Foul Trouble",
			Description: "Consistently high foul rate",
			Severity:    severity,
			Emoji:       "⚠️",
			Detail:      fmt.Sprintf("%.1f fouls per game across %d games.", overallFpg, agg.GamesPlayed),
		})
	}

	// Per-grade foul magnet, only when the career-level badge did not fire
	for _, row := range gradesWithGames {
		fpg := perGame(row.TotalFouls, row.GamesPlayed)
		if fpg >= 5 {
			if !hasAnomaly(anomalies, AnomalyFoulTrouble) {
				gradeName := row.GradeName
				if gradeName == "" {
					gradeName = row.GradeID
				}
				anomalies = append(anomalies, Anomaly{
					Type:        AnomalyFoulTrouble,
					Label:       "Foul Magnet",
					Description: "5+ fouls per game in a grade",
					Severity:    SeverityRare,
					Emoji:       "⚠️",
					Detail:      fmt.Sprintf("%.1f fouls per game in %s.", fpg, gradeName),
				})
			}
			break
		}
	}

	// Defensive discipline: very low foul rate with high games
	if agg.GamesPlayed >= 20 && overallFpg > 0 && overallFpg <= 0.5 {
		anomalies = append(anomalies, Anomaly{
			Type:        AnomalyDefensiveDiscipline,
			Label:       "Disciplined",
			Description: "Extremely low foul rate",
			Severity:    SeverityNotable,
			Emoji:       "🧘",
			Detail:      fmt.Sprintf("Only %.2f fouls per game across %d games.", overallFpg, agg.GamesPlayed),
		})
	}

	// Top ranked: top 3 finish in multiple grades
	topRankings := 0
	for _, row := range stats {
		if row.Ranking != nil && *row.Ranking <= 3 && row.GamesPlayed >= 5 {
			topRankings++
		}
	}
	if topRankings >= 2 {
		severity := SeverityRare
		if topRankings >= 3 {
			severity = SeverityLegendary
		}
		anomalies = append(anomalies, Anomaly{
			Type:        AnomalyRisingStar,
			Label:       "Top Ranked",
			Description: "Top 3 ranking in multiple grades",
			Severity:    severity,
			Emoji:       "⭐",
			Detail:      fmt.Sprintf("Finished top 3 in %d different grades.", topRankings),
		})
	}

	// Consistent performer: similar PPG across multiple grades
	if len(gradesWithGames) >= 3 {
		ppgs := make([]float64, 0, len(gradesWithGames))
		sum := 0.0
		for _, row := range gradesWithGames {
			ppg := perGame(row.TotalPoints, row.GamesPlayed)
			ppgs = append(ppgs, ppg)
			sum += ppg
		}
		mean := sum / float64(len(ppgs))
		if mean >= 3 {
			variance := 0.0
			for _, p := range ppgs {
				variance += (p - mean) * (p - mean)
			}
			variance /= float64(len(ppgs))
			cv := math.Sqrt(variance) / mean
			if cv <= 0.2 {
				anomalies = append(anomalies, Anomaly{
					Type:        AnomalyConsistentPerformer,
					Label:       "Mr. Consistent",
					Description: "Remarkably consistent scoring across grades",
					Severity:    SeverityNotable,
					Emoji:       "📊",
					Detail:      fmt.Sprintf("%.1f PPG average with very low variance across %d grades.", mean, len(gradesWithGames)),
				})
			}
		}
	}

	// Sharpshooter: high scorer with zero one-pointers. Attempts are not
	// scraped, so never going to the line is the closest proxy for a pure
	// field-goal scorer.
	if agg.GamesPlayed >= 10 && overallPpg >= 8 && agg.OnePoint == 0 {
		anomalies = append(anomalies, Anomaly{
			Type:        AnomalySharpshooter,
			Label:       "Sharpshooter",
			Description: "High scorer who never goes to the free throw line",
			Severity:    SeverityNotable,
			Emoji:       "🏹",
			Detail:      fmt.Sprintf("%.1f PPG across %d games with zero free throws — pure field goal scorer.", overallPpg, agg.GamesPlayed),
		})
	}

	return anomalies
}

func hasAnomaly(anomalies []Anomaly, t AnomalyType) bool {
	for _, a := range anomalies {
		if a.Type == t {
			return true
		}
	}
	return false
}
