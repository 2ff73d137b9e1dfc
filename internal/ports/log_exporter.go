package ports

import (
	"context"

	"github.com/bnema/aicalc/internal/domain"
)

// LogExporter serializes log records to a file, one row per record, in
// append order. The write is atomic: on failure no partial file may remain
// at the destination. Returns the number of records written.
type LogExporter interface {
	Export(ctx context.Context, destination string, records []domain.Record) (int, error)
}
