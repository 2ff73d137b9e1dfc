package ports

import "context"

// Explainer produces a free-text narrative explanation for an expression.
// Implementations make exactly one outbound call per invocation and must be
// safe to call from a goroutine: no mutable shared state.
type Explainer interface {
	Explain(ctx context.Context, expression string) (string, error)
}
