package domain

import "time"

// Role identifies which side of the dialogue produced an interaction
type Role string

const (
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
)

// InterventionType is the pedagogical category of a tutor turn.
// The set is closed: classification and selection always operate over
// exactly these values.
type InterventionType string

const (
	InterventionClarification   InterventionType = "clarification"
	InterventionHypothesisProbe InterventionType = "hypothesis_probe"
	InterventionEvidenceProbe   InterventionType = "evidence_probe"
	InterventionMetacognition   InterventionType = "metacognition"
	InterventionEncouragement   InterventionType = "encouragement"
)

// InterventionTypes lists all intervention categories in their canonical order
var InterventionTypes = []InterventionType{
	InterventionClarification,
	InterventionHypothesisProbe,
	InterventionEvidenceProbe,
	InterventionMetacognition,
	InterventionEncouragement,
}

// Valid reports whether t is one of the known intervention categories
func (t InterventionType) Valid() bool {
	for _, known := range InterventionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// CognitiveDimension is one axis of the learner's scientific-thinking profile
type CognitiveDimension string

const (
	DimensionObservacion     CognitiveDimension = "observacion"
	DimensionHipotesis       CognitiveDimension = "hipotesis"
	DimensionExperimentacion CognitiveDimension = "experimentacion"
	DimensionAnalisis        CognitiveDimension = "analisis"
	DimensionComunicacion    CognitiveDimension = "comunicacion"
)

// DimensionOrder is the declared dimension order, used as the tie-breaker
// when ranking profile scores.
var DimensionOrder = []CognitiveDimension{
	DimensionObservacion,
	DimensionHipotesis,
	DimensionExperimentacion,
	DimensionAnalisis,
	DimensionComunicacion,
}

// ChunkRef records one context chunk used by a tutor turn, for traceability
type ChunkRef struct {
	ChunkIndex int     `json:"chunk_index"`
	Similarity float64 `json:"similarity"`
}

// Interaction is one turn of tutor dialogue. Interactions are append-only
// and strictly chronological per attempt; they are never mutated or deleted.
type Interaction struct {
	ID                 string             `json:"id"`
	AttemptID          string             `json:"attempt_id"`
	Role               Role               `json:"role"`
	Message            string             `json:"message"`
	InterventionType   InterventionType   `json:"interaction_type,omitempty"` // tutor turns only
	CognitiveDimension CognitiveDimension `json:"cognitive_dimension,omitempty"`
	Strategy           string             `json:"intervention_strategy,omitempty"`
	NotebookSnapshot   Notebook           `json:"context_snapshot"`
	ChunksUsed         []ChunkRef         `json:"chunks_used,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}

// NextIntervention selects the tutor's next pedagogical category from the
// learner's notebook state and the recent dialogue history.
//
// Rules, in priority order:
//   - no question or no hypotheses recorded yet: clarification
//   - three or more tutor turns without a metacognitive one: metacognition
//   - no observations recorded: evidence_probe
//   - no experiments recorded: hypothesis_probe
//   - otherwise: encouragement
//
// The result never repeats the category of the immediately preceding tutor
// turn; when a rule would, its listed alternative is used instead.
func NextIntervention(notebook Notebook, history []*Interaction) InterventionType {
	prev := lastTutorIntervention(history)

	switch {
	case notebook.Question == "" || len(notebook.Hypotheses) == 0:
		return avoidRepeat(prev, InterventionClarification, InterventionHypothesisProbe)
	case tutorTurns(history) >= 3 && !recentMetacognition(history, 3):
		return avoidRepeat(prev, InterventionMetacognition, InterventionEvidenceProbe)
	case len(notebook.Observations) == 0:
		return avoidRepeat(prev, InterventionEvidenceProbe, InterventionHypothesisProbe)
	case len(notebook.Experiments) == 0:
		return avoidRepeat(prev, InterventionHypothesisProbe, InterventionEvidenceProbe)
	default:
		return avoidRepeat(prev, InterventionEncouragement, InterventionMetacognition)
	}
}

func avoidRepeat(prev, primary, alternative InterventionType) InterventionType {
	if primary == prev {
		return alternative
	}
	return primary
}

func lastTutorIntervention(history []*Interaction) InterventionType {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == RoleTutor {
			return history[i].InterventionType
		}
	}
	return ""
}

func tutorTurns(history []*Interaction) int {
	n := 0
	for _, in := range history {
		if in.Role == RoleTutor {
			n++
		}
	}
	return n
}

// recentMetacognition reports whether any of the last n tutor turns was
// a metacognitive intervention.
func recentMetacognition(history []*Interaction, n int) bool {
	seen := 0
	for i := len(history) - 1; i >= 0 && seen < n; i-- {
		if history[i].Role != RoleTutor {
			continue
		}
		if history[i].InterventionType == InterventionMetacognition {
			return true
		}
		seen++
	}
	return false
}
