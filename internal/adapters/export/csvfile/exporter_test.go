package csvfile

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bnema/aicalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []domain.Record {
	base := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)

	return []domain.Record{
		{Timestamp: base, Input: "2+2", Output: "4", Kind: domain.ResolutionStandard},
		{Timestamp: base.Add(time.Minute), Input: "E=h*nu", Output: "Planck's relation, with a comma", Kind: domain.ResolutionAI},
	}
}

func TestExportWritesHeaderAndRowsInOrder(t *testing.T) {
	t.Parallel()

	destination := filepath.Join(t.TempDir(), "log.csv")
	count, err := NewExporter().Export(context.Background(), destination, sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	file, err := os.Open(destination)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Timestamp", "Input_Equation", "Output_Result", "Resolution_Type"}, rows[0])
	assert.Equal(t, []string{"2026-08-27T10:00:00Z", "2+2", "4", "STANDARD"}, rows[1])
	assert.Equal(t, []string{"2026-08-27T10:01:00Z", "E=h*nu", "Planck's relation, with a comma", "AI_RESOLUTION"}, rows[2])
}

func TestExportEmptyLogCreatesNoFile(t *testing.T) {
	t.Parallel()

	destination := filepath.Join(t.TempDir(), "log.csv")
	_, err := NewExporter().Export(context.Background(), destination, nil)
	require.ErrorIs(t, err, domain.ErrEmptyLog)

	_, statErr := os.Stat(destination)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestExportTwiceYieldsIdenticalBytes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	records := sampleRecords()

	first := filepath.Join(dir, "a.csv")
	second := filepath.Join(dir, "b.csv")

	_, err := NewExporter().Export(context.Background(), first, records)
	require.NoError(t, err)
	_, err = NewExporter().Export(context.Background(), second, records)
	require.NoError(t, err)

	firstBytes, err := os.ReadFile(first)
	require.NoError(t, err)
	secondBytes, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, firstBytes, secondBytes)
}

func TestExportLeavesNoTempFileBehind(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := NewExporter().Export(context.Background(), filepath.Join(dir, "log.csv"), sampleRecords())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.HasSuffix(entry.Name(), ".tmp"), "temp file %s left behind", entry.Name())
	}
}

func TestExportCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	destination := filepath.Join(t.TempDir(), "log.csv")
	_, err := NewExporter().Export(ctx, destination, sampleRecords())
	require.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(destination)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}
