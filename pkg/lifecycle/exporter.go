package lifecycle

import (
	"context"
)

// Exporter writes features of stored regions for training tools.
type Exporter interface {
	// Export replaces the content of the output file with one row per
	// stored region and returns the number of rows.
	Export(ctx context.Context, path string) (int, error)
}
