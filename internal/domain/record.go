package domain

import "time"

type ResolutionKind string

const (
	ResolutionStandard ResolutionKind = "STANDARD"
	ResolutionAI       ResolutionKind = "AI_RESOLUTION"
)

// Record is one immutable calculation log entry: an input expression, its
// outcome, and how the outcome was produced (arithmetic vs AI narrative).
type Record struct {
	Timestamp time.Time
	Input     string
	Output    string
	Kind      ResolutionKind
}
