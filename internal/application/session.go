package application

import (
	"sync"

	"github.com/bnema/aicalc/internal/domain"
	"github.com/bnema/aicalc/internal/ports"
)

// Session owns the mutable state of one calculator run: the expression the
// user is composing and the append-only calculation log. The log is
// single-writer by contract; the mutex keeps that invariant even when a
// shell offloads the explain call to a goroutine.
type Session struct {
	mu         sync.Mutex
	clock      ports.Clock
	expression string
	records    []domain.Record
}

func NewSession(clock ports.Clock) *Session {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Session{clock: clock}
}

// AppendToken appends raw input to the current expression.
func (s *Session) AppendToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expression += token
}

// SetExpression replaces the current expression wholesale. Used to re-seed
// the session with an evaluation result.
func (s *Session) SetExpression(expression string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expression = expression
}

func (s *Session) Clear() {
	s.SetExpression("")
}

func (s *Session) Expression() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.expression
}

// Append records a completed evaluation or AI call. It always succeeds and
// stamps the record with the current wall-clock time. Records are never
// mutated or removed afterwards.
func (s *Session) Append(input, output string, kind domain.ResolutionKind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, domain.Record{
		Timestamp: s.clock.Now(),
		Input:     input,
		Output:    output,
		Kind:      kind,
	})
}

// Records returns a copy of the log in insertion order.
func (s *Session) Records() []domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Record, len(s.records))
	copy(out, s.records)

	return out
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}
