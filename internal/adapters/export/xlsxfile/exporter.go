// Package xlsxfile exports the calculation log as a single-sheet workbook
// with literal cell values, one row per record.
package xlsxfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/aicalc/internal/domain"
	"github.com/bnema/aicalc/internal/ports"
	"github.com/xuri/excelize/v2"
)

const (
	sheetName       = "Log"
	exportFileMode  = 0o600
	tempFilePattern = ".log-*.xlsx.tmp"
)

var header = []any{"Timestamp", "Input_Equation", "Output_Result", "Resolution_Type"}

type Exporter struct{}

var _ ports.LogExporter = (*Exporter)(nil)

func NewExporter() *Exporter {
	return &Exporter{}
}

func (e *Exporter) Export(ctx context.Context, destination string, records []domain.Record) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, domain.ErrEmptyLog
	}

	workbook := excelize.NewFile()
	defer func() {
		_ = workbook.Close()
	}()

	index, err := workbook.NewSheet(sheetName)
	if err != nil {
		return 0, fmt.Errorf("create log sheet: %w", err)
	}
	workbook.SetActiveSheet(index)
	if err := workbook.DeleteSheet("Sheet1"); err != nil {
		return 0, fmt.Errorf("remove default sheet: %w", err)
	}

	if err := writeRow(workbook, 1, header); err != nil {
		return 0, err
	}
	for i, record := range records {
		row := []any{
			record.Timestamp.Format(time.RFC3339),
			record.Input,
			record.Output,
			string(record.Kind),
		}
		if err := writeRow(workbook, i+2, row); err != nil {
			return 0, err
		}
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

	if _, err := workbook.WriteTo(tempFile); err != nil {
		_ = tempFile.Close()
		return 0, fmt.Errorf("write temp export file: %w", err)
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

func writeRow(workbook *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("resolve cell for row %d: %w", row, err)
	}

	if err := workbook.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}

	return nil
}
