package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/aicalc/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	// NarrativeWidth truncates AI narratives in the single-line view.
	// Zero keeps them untruncated.
	NarrativeWidth int
}

func renderView(records []domain.Record, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Calculation Log"),
		s.header.Render(fmt.Sprintf("records: %d", len(records))),
	}

	if len(records) == 0 {
		lines = append(lines, s.empty.Render("No calculations logged yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, record := range records {
		lines = append(lines, renderRecord(record, opts, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderRecord(record domain.Record, opts RenderOptions, s styles) string {
	timestamp := s.timestamp.Render(record.Timestamp.Format(time.RFC3339))
	badge := kindBadge(record.Kind, s)
	input := s.input.Render(record.Input)
	arrow := s.arrow.Render("->")

	output := record.Output
	outputStyle := s.standard
	if record.Kind == domain.ResolutionAI {
		outputStyle = s.narrative
		output = truncateNarrative(output, opts.NarrativeWidth)
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		timestamp,
		" ",
		badge,
		" ",
		input,
		" ",
		arrow,
		" ",
		outputStyle.Render(output),
	)
}

func kindBadge(kind domain.ResolutionKind, s styles) string {
	if kind == domain.ResolutionAI {
		return s.aiBadge.Render("[AI]")
	}

	return s.stdBadge.Render("[=]")
}

func truncateNarrative(narrative string, width int) string {
	narrative = strings.ReplaceAll(narrative, "\n", " ")
	if width <= 0 || len(narrative) <= width {
		return narrative
	}

	return narrative[:width] + "..."
}
