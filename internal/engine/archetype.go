package engine

// Archetype is a discrete playstyle label derived from per-game rates.
type Archetype string

const (
	ArchetypeHighVolume   Archetype = "High Volume"
	ArchetypeSharpshooter Archetype = "Sharpshooter"
	ArchetypePhysical     Archetype = "Physical"
	ArchetypeInsideScorer Archetype = "Inside Scorer"
	ArchetypeBalanced     Archetype = "Balanced"
)

// ClassifyArchetype maps per-game rates to an archetype using ordered
// threshold rules; the first match wins, so the priority order is part of
// the contract. Every input maps to some label, with Balanced as the
// fallback. The thresholds are tuned for recognizable, stable labels and
// are kept exactly as shipped.
func ClassifyArchetype(ppg, threePtPg, twoPtPg, foulsPg float64) Archetype {
	// High Volume: top scorers
	if ppg >= 15 {
		return ArchetypeHighVolume
	}
	// Sharpshooter: relies on 3s
	if threePtPg >= 2 && threePtPg > twoPtPg*0.6 {
		return ArchetypeSharpshooter
	}
	// Physical: high foul rate relative to scoring
	if foulsPg >= 3 || (foulsPg >= 2 && ppg < 8) {
		return ArchetypePhysical
	}
	// Inside Scorer: dominated by 2pt
	if twoPtPg >= 3 && twoPtPg > threePtPg*2 {
		return ArchetypeInsideScorer
	}
	return ArchetypeBalanced
}
