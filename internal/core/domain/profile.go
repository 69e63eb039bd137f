package domain

import (
	"sort"
	"time"
)

// LearnerProfile holds per-dimension scores (0..100) describing a student's
// current scientific-thinking ability.
type LearnerProfile struct {
	StudentID string                         `json:"student_id"`
	Scores    map[CognitiveDimension]float64 `json:"scores"`
	UpdatedAt time.Time                      `json:"updated_at"`
}

// WeakestDimensions returns the n lowest-scoring dimensions, ties broken by
// the declared DimensionOrder. Dimensions missing from the profile count as
// zero (completely untrained).
func (p *LearnerProfile) WeakestDimensions(n int) []CognitiveDimension {
	if n <= 0 {
		return nil
	}

	ranked := make([]CognitiveDimension, len(DimensionOrder))
	copy(ranked, DimensionOrder)

	score := func(d CognitiveDimension) float64 {
		if p == nil || p.Scores == nil {
			return 0
		}
		return p.Scores[d]
	}
	order := func(d CognitiveDimension) int {
		for i, known := range DimensionOrder {
			if d == known {
				return i
			}
		}
		return len(DimensionOrder)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := score(ranked[i]), score(ranked[j])
		if si != sj {
			return si < sj
		}
		return order(ranked[i]) < order(ranked[j])
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
