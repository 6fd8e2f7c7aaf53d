package lifecycle_test

import (
	"testing"

	"github.com/gnames/faunamap/internal/ioexport"
	"github.com/gnames/faunamap/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
)

// TestExporterContract ensures that ioexport.ExporterImpl satisfies the
// lifecycle.Exporter interface.
func TestExporterContract(t *testing.T) {
	var _ lifecycle.Exporter = &ioexport.ExporterImpl{}

	assert.True(t, true, "ioexport.ExporterImpl should implement lifecycle.Exporter")
}
