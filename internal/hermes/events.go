package hermes

import "time"

// AssessmentCompletedEvent carries the derived result only, never form input.
type AssessmentCompletedEvent struct {
	AssessmentID string    `json:"assessment_id"`
	Probability  float64   `json:"probability"`
	Tier         string    `json:"tier"`
	ModelID      string    `json:"model_id"`
	Timestamp    time.Time `json:"timestamp"`
}

type AssessmentRejectedEvent struct {
	Reason    string    `json:"reason"`
	Field     string    `json:"field,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
