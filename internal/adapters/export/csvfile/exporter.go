// Package csvfile exports the calculation log as RFC-4180 comma-separated
// rows with a fixed header.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/aicalc/internal/domain"
	"github.com/bnema/aicalc/internal/ports"
)

const (
	exportFileMode  = 0o600
	tempFilePattern = ".log-*.csv.tmp"
)

var header = []string{"Timestamp", "Input_Equation", "Output_Result", "Resolution_Type"}

type Exporter struct{}

var _ ports.LogExporter = (*Exporter)(nil)

func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes every record as one row, in append order. The file is
// written to a temporary path and renamed into place, so a failure never
// leaves a partial file at the destination.
func (e *Exporter) Export(ctx context.Context, destination string, records []domain.Record) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, domain.ErrEmptyLog
	}

	tempFile, err := os.CreateTemp(filepath.Dir(destination), tempFilePattern)
	if err != nil {
		return 0, fmt.Errorf("create temp export file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	writer := csv.NewWriter(tempFile)
	if err := writer.Write(header); err != nil {
		_ = tempFile.Close()
		return 0, fmt.Errorf("write export header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.Timestamp.Format(time.RFC3339),
			record.Input,
			record.Output,
			string(record.Kind),
		}
		if err := writer.Write(row); err != nil {
			_ = tempFile.Close()
			return 0, fmt.Errorf("write export row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = tempFile.Close()
		return 0, fmt.Errorf("flush export rows: %w", err)
	}

	if err := tempFile.Chmod(exportFileMode); err != nil {
		_ = tempFile.Close()
		return 0, fmt.Errorf("chmod temp export file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return 0, fmt.Errorf("close temp export file: %w", err)
	}

	if err := os.Rename(tempName, destination); err != nil {
		return 0, fmt.Errorf("replace export file: %w", err)
	}

	cleanup = false

	return len(records), nil
}
