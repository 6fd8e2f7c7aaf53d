package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCommands_Descriptions verifies every command has usage, short and
// long descriptions and a run function.
func TestCommands_Descriptions(t *testing.T) {
	tests := []struct {
		name string
		cmd  *cobra.Command
		long string
	}{
		{"region", getRegionCmd(), "regions.yaml"},
		{"coords", getCoordsCmd(), "50 km"},
		{"regions", getRegionsCmd(), "min_summary"},
		{"survey", getSurveyCmd(), "survey: true"},
		{"export", getExportCmd(), "region_features"},
		{"cache", getCacheCmd(), "api_cache.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.cmd.Name())
			assert.NotEmpty(t, tt.cmd.Short)
			assert.Contains(t, tt.cmd.Long, tt.long)
			assert.NotNil(t, tt.cmd.RunE, "RunE should be set")
		})
	}
}

// TestCommands_Flags verifies flags of commands.
func TestCommands_Flags(t *testing.T) {
	tests := []struct {
		name      string
		cmd       *cobra.Command
		flag      string
		shorthand string
		def       string
	}{
		{"region force", getRegionCmd(), "force", "f", "false"},
		{"coords force", getCoordsCmd(), "force", "f", "false"},
		{"export output", getExportCmd(), "output", "o", ""},
		{"cache clear", getCacheCmd(), "clear", "c", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := tt.cmd.Flags().Lookup(tt.flag)
			require.NotNil(t, flag, "--%s flag should exist", tt.flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.def, flag.DefValue)
		})
	}
}

// TestCommands_Args verifies argument validation.
func TestCommands_Args(t *testing.T) {
	tests := []struct {
		name  string
		cmd   *cobra.Command
		args  []string
		valid bool
	}{
		{"region without name", getRegionCmd(), nil, false},
		{"region with two words", getRegionCmd(), []string{"Амурская", "область"}, true},
		{"coords with one value", getCoordsCmd(), []string{"55.7"}, false},
		{"coords with two values", getCoordsCmd(), []string{"55.7", "37.6"}, true},
		{"regions with args", getRegionsCmd(), []string{"Москва"}, false},
		{"survey without args", getSurveyCmd(), nil, true},
		{"export with args", getExportCmd(), []string{"out.sqlite"}, false},
		{"cache without args", getCacheCmd(), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.ValidateArgs(tt.args)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
