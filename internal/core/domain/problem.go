package domain

// ProblemType identifies the kind of open-ended problem to generate
type ProblemType string

const (
	ProblemMatematico ProblemType = "matematico"
	ProblemFisico     ProblemType = "fisico"
	ProblemIntegrado  ProblemType = "integrado"
)

// ProblemTypes lists all generatable problem kinds
var ProblemTypes = []ProblemType{ProblemMatematico, ProblemFisico, ProblemIntegrado}

// Valid reports whether t is a known problem type
func (t ProblemType) Valid() bool {
	for _, known := range ProblemTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Scaffolding holds graded support material for a generated problem
type Scaffolding struct {
	Inicial    string `json:"inicial"`
	Intermedio string `json:"intermedio"`
	Avanzado   string `json:"avanzado"`
}

// ProblemStatement is a generated open-ended STEM problem
type ProblemStatement struct {
	Title                string               `json:"title"`
	Context              string               `json:"context"`
	Challenge            string               `json:"challenge"`
	Scaffolding          Scaffolding          `json:"scaffolding"`
	ExpectedApproaches   []string             `json:"expected_approaches"`
	MetacognitivePrompts []string             `json:"metacognitive_prompts"`
	ProblemType          ProblemType          `json:"problem_type"`
	Difficulty           Difficulty           `json:"difficulty"`
	CognitiveTargets     []CognitiveDimension `json:"cognitive_targets,omitempty"`
	IsFallback           bool                 `json:"is_fallback"`
}
