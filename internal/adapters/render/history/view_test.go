package history

import (
	"testing"
	"time"

	"github.com/bnema/aicalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEmptyLog(t *testing.T) {
	output, err := Render(nil, RenderOptions{})
	require.NoError(t, err)
	assert.Contains(t, output, "Calculation Log")
	assert.Contains(t, output, "records: 0")
	assert.Contains(t, output, "No calculations logged yet.")
}

func TestRenderMixedRecords(t *testing.T) {
	base := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	records := []domain.Record{
		{Timestamp: base, Input: "2+2", Output: "4", Kind: domain.ResolutionStandard},
		{Timestamp: base.Add(time.Minute), Input: "E=h*nu", Output: "Planck's relation\ncouples energy and frequency.", Kind: domain.ResolutionAI},
	}

	output, err := Render(records, RenderOptions{})
	require.NoError(t, err)
	assert.Contains(t, output, "records: 2")
	assert.Contains(t, output, "2026-08-27T10:00:00Z")
	assert.Contains(t, output, "[=]")
	assert.Contains(t, output, "2+2")
	assert.Contains(t, output, "[AI]")
	// Narrative newlines are flattened for the single-line view.
	assert.Contains(t, output, "Planck's relation couples energy and frequency.")
}

func TestRenderTruncatesNarrative(t *testing.T) {
	records := []domain.Record{
		{
			Timestamp: time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC),
			Input:     "E=h*nu",
			Output:    "A very long narrative that should not dominate the log view at all",
			Kind:      domain.ResolutionAI,
		},
	}

	output, err := Render(records, RenderOptions{NarrativeWidth: 20})
	require.NoError(t, err)
	assert.Contains(t, output, "A very long narrativ...")
	assert.NotContains(t, output, "dominate")
}
