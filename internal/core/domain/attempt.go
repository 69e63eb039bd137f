package domain

import "time"

// AttemptStatus represents the lifecycle state of a work session
type AttemptStatus string

const (
	AttemptStatusInProgress AttemptStatus = "in_progress"
	AttemptStatusSubmitted  AttemptStatus = "submitted"
	AttemptStatusEvaluated  AttemptStatus = "evaluated"
)

// Notebook holds the structured scientific-notebook content a learner
// fills in while working through an article.
type Notebook struct {
	Question     string   `json:"pregunta"`
	Hypotheses   []string `json:"hipotesis"`
	Experiments  []string `json:"experimentos"`
	Observations []string `json:"observaciones"`
	Conclusions  string   `json:"conclusiones"`
}

// Attempt is a learner's in-progress or submitted work session on one article.
// It anchors the interaction log of the tutor dialogue.
type Attempt struct {
	ID             string        `json:"id"`
	ArticleID      string        `json:"article_id"`
	StudentID      string        `json:"student_id"`
	CurrentSection string        `json:"current_section"`
	Notebook       Notebook      `json:"notebook"`
	Status         AttemptStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
