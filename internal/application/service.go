package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/aicalc/internal/domain"
	"github.com/bnema/aicalc/internal/eval"
	"github.com/bnema/aicalc/internal/ports"
)

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

func ParseExportFormat(raw string) (ExportFormat, error) {
	switch format := ExportFormat(strings.ToLower(raw)); format {
	case ExportCSV, ExportXLSX:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// Service orchestrates the expression-and-log pipeline: evaluate or explain
// the session expression, record the outcome, export the log on demand.
type Service struct {
	session   *Session
	registry  *domain.Registry
	explainer ports.Explainer
	exporters map[ExportFormat]ports.LogExporter
	evalOpts  []eval.Option
}

type ServiceConfig struct {
	Registry  *domain.Registry
	Explainer ports.Explainer
	Exporters map[ExportFormat]ports.LogExporter
	Clock     ports.Clock

	// ApproximatePlaceholders substitutes 1 for unresolved placeholder
	// tokens. Off by default: unresolved placeholders are evaluation errors.
	ApproximatePlaceholders bool
}

func NewService(cfg ServiceConfig) *Service {
	registry := cfg.Registry
	if registry == nil {
		registry = domain.NewRegistry(domain.BuiltinConstants())
	}

	var evalOpts []eval.Option
	if cfg.ApproximatePlaceholders {
		evalOpts = append(evalOpts, eval.WithPlaceholderFallback(1))
	}

	return &Service{
		session:   NewSession(cfg.Clock),
		registry:  registry,
		explainer: cfg.Explainer,
		exporters: cfg.Exporters,
		evalOpts:  evalOpts,
	}
}

func (s *Service) Expression() string {
	return s.session.Expression()
}

func (s *Service) AppendToken(token string) {
	s.session.AppendToken(token)
}

func (s *Service) Clear() {
	s.session.Clear()
}

// InsertConstant appends the registry entry for label to the expression:
// the decimal literal for numeric constants, a bracketed placeholder for
// symbolic ones.
func (s *Service) InsertConstant(label string) error {
	value, err := s.registry.Lookup(label)
	if err != nil {
		return fmt.Errorf("lookup constant %q: %w", label, err)
	}

	s.session.AppendToken(value.Token())

	return nil
}

func (s *Service) Constants() []domain.Constant {
	return s.registry.All()
}

// Evaluate evaluates the current expression. On success the result is
// logged as a STANDARD record and becomes the next expression. On failure
// the expression resets to empty and nothing is logged.
func (s *Service) Evaluate(_ context.Context) (string, error) {
	input := s.session.Expression()

	result, err := eval.Evaluate(input, s.evalOpts...)
	if err != nil {
		s.session.Clear()
		return "", fmt.Errorf("evaluate %q: %w", input, err)
	}

	s.session.Append(input, result, domain.ResolutionStandard)
	s.session.SetExpression(result)

	return result, nil
}

// Explain sends the current expression to the explanation client and logs
// the narrative as an AI_RESOLUTION record. A failed call leaves the log
// and the expression untouched.
func (s *Service) Explain(ctx context.Context) (string, error) {
	input := s.session.Expression()
	if strings.TrimSpace(input) == "" {
		return "", domain.ErrMissingInput
	}
	if s.explainer == nil {
		return "", domain.ErrUnconfiguredClient
	}

	narrative, err := s.explainer.Explain(ctx, input)
	if err != nil {
		return "", fmt.Errorf("explain %q: %w", input, err)
	}

	s.session.Append(input, narrative, domain.ResolutionAI)

	return narrative, nil
}

// Export serializes the whole log to destination in the given format and
// returns the number of records written.
func (s *Service) Export(ctx context.Context, destination string, format ExportFormat) (int, error) {
	exporter, ok := s.exporters[format]
	if !ok {
		return 0, fmt.Errorf("unsupported export format %q", format)
	}

	count, err := exporter.Export(ctx, destination, s.session.Records())
	if err != nil {
		return 0, fmt.Errorf("export log: %w", err)
	}

	return count, nil
}

func (s *Service) Records() []domain.Record {
	return s.session.Records()
}
