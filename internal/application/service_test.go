package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/aicalc/internal/domain"
	"github.com/bnema/aicalc/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type stubExplainer struct {
	narrative string
	err       error
	calls     int
}

func (e *stubExplainer) Explain(_ context.Context, _ string) (string, error) {
	e.calls++
	if e.err != nil {
		return "", e.err
	}

	return e.narrative, nil
}

type recordingExporter struct {
	destination string
	records     []domain.Record
	err         error
}

func (e *recordingExporter) Export(_ context.Context, destination string, records []domain.Record) (int, error) {
	e.destination = destination
	e.records = records
	if e.err != nil {
		return 0, e.err
	}

	return len(records), nil
}

func newTestService(t *testing.T, cfg ServiceConfig) *Service {
	t.Helper()

	if cfg.Clock == nil {
		cfg.Clock = fixedClock{now: time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)}
	}

	return NewService(cfg)
}

func TestEvaluateAppendsStandardRecordAndReseedsExpression(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, ServiceConfig{})
	svc.AppendToken("2+2")

	result, err := svc.Evaluate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "4", result)
	assert.Equal(t, "4", svc.Expression())

	records := svc.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "2+2", records[0].Input)
	assert.Equal(t, "4", records[0].Output)
	assert.Equal(t, domain.ResolutionStandard, records[0].Kind)
	assert.False(t, records[0].Timestamp.IsZero())
}

func TestEvaluateDivisionByZeroResetsExpressionWithoutRecord(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, ServiceConfig{})
	svc.AppendToken("10/0")

	_, err := svc.Evaluate(context.Background())
	require.ErrorIs(t, err, domain.ErrDivisionByZero)
	assert.Empty(t, svc.Expression())
	assert.Empty(t, svc.Records())
}

func TestInsertConstantThenEvaluate(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, ServiceConfig{})
	require.NoError(t, svc.InsertConstant("Planck (h)"))
	svc.AppendToken("*2")
	assert.Equal(t, "6.626e-34*2", svc.Expression())

	result, err := svc.Evaluate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.3252e-33", result)
}

func TestInsertConstantUnknownLabel(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, ServiceConfig{})
	err := svc.InsertConstant("No Such Constant")
	require.ErrorIs(t, err, domain.ErrConstantNotFound)
	assert.Empty(t, svc.Expression())
}

func TestInsertSymbolicConstantRejectedByNumericPath(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, ServiceConfig{})
	require.NoError(t, svc.InsertConstant("Frequency (ν)"))
	svc.AppendToken("*3")

	_, err := svc.Evaluate(context.Background())
	require.ErrorIs(t, err, domain.ErrUnresolvedPlaceholder)
	assert.Empty(t, svc.Records())
}

func TestEvaluateWithPlaceholderApproximation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, ServiceConfig{ApproximatePlaceholders: true})
	require.NoError(t, svc.InsertConstant("Frequency (ν)"))
	svc.AppendToken("*3")

	result, err := svc.Evaluate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "3", result)
}

func TestExplainEmptyExpressionMakesNoCall(t *testing.T) {
	t.Parallel()

	explainer := &stubExplainer{narrative: "unused"}
	svc := newTestService(t, ServiceConfig{Explainer: explainer})

	_, err := svc.Explain(context.Background())
	require.ErrorIs(t, err, domain.ErrMissingInput)
	assert.Zero(t, explainer.calls)
	assert.Empty(t, svc.Records())
}

func TestExplainWithoutClient(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, ServiceConfig{})
	svc.AppendToken("E=h*nu")

	_, err := svc.Explain(context.Background())
	require.ErrorIs(t, err, domain.ErrUnconfiguredClient)
}

func TestExplainAppendsAIResolutionRecord(t *testing.T) {
	t.Parallel()

	explainer := &stubExplainer{narrative: "Planck's relation couples energy and frequency."}
	svc := newTestService(t, ServiceConfig{Explainer: explainer})
	svc.AppendToken("E=h*nu")

	narrative, err := svc.Explain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, explainer.narrative, narrative)
	assert.Equal(t, 1, explainer.calls)

	records := svc.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "E=h*nu", records[0].Input)
	assert.Equal(t, explainer.narrative, records[0].Output)
	assert.Equal(t, domain.ResolutionAI, records[0].Kind)

	// The expression survives an explanation; only evaluation re-seeds it.
	assert.Equal(t, "E=h*nu", svc.Expression())
}

func TestExplainFailureLeavesLogUntouched(t *testing.T) {
	t.Parallel()

	transportErr := errors.New("status 429: quota exceeded")
	explainer := &stubExplainer{err: transportErr}
	svc := newTestService(t, ServiceConfig{Explainer: explainer})
	svc.AppendToken("1+1")

	_, err := svc.Explain(context.Background())
	require.ErrorIs(t, err, transportErr)
	assert.Equal(t, 1, explainer.calls)
	assert.Empty(t, svc.Records())
	assert.Equal(t, "1+1", svc.Expression())
}

func TestExportDispatchesToRegisteredExporter(t *testing.T) {
	t.Parallel()

	exporter := &recordingExporter{}
	svc := newTestService(t, ServiceConfig{
		Exporters: map[ExportFormat]ports.LogExporter{ExportCSV: exporter},
	})
	svc.AppendToken("2+2")
	_, err := svc.Evaluate(context.Background())
	require.NoError(t, err)

	count, err := svc.Export(context.Background(), "out.csv", ExportCSV)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "out.csv", exporter.destination)
	require.Len(t, exporter.records, 1)
	assert.Equal(t, "2+2", exporter.records[0].Input)
}

func TestExportUnknownFormat(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, ServiceConfig{})
	_, err := svc.Export(context.Background(), "out.bin", ExportFormat("bin"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}

func TestParseExportFormat(t *testing.T) {
	t.Parallel()

	format, err := ParseExportFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, ExportCSV, format)

	format, err = ParseExportFormat("xlsx")
	require.NoError(t, err)
	assert.Equal(t, ExportXLSX, format)

	_, err = ParseExportFormat("parquet")
	require.Error(t, err)
}
