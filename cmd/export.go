package cmd

import (
	"github.com/gnames/faunamap/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getExportCmd returns the export command.
func getExportCmd() *cobra.Command {
	var output string

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export region features to SQLite",
		Long: `Export biodiversity features of all stored regions to SQLite.

The 'region_features' table is replaced on every run and gets one row per
stored region: class ratios, Shannon diversity, temporal activity and the
mean point of records with coordinates. The default output file is
~/.local/share/faunamap/features.sqlite.

Examples:
  faunamap export
  faunamap export -o /tmp/features.sqlite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runExport(output)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	exportCmd.Flags().StringVarP(
		&output, "output", "o", "",
		"path of the SQLite output file",
	)

	return exportCmd
}

func runExport(output string) error {
	if output == "" {
		output = config.ExportPath(cfg.HomeDir)
	}

	ctx, cancel := signalContext()
	defer cancel()

	n, err := newExporter(cfg).Export(ctx, output)
	if err != nil {
		return err
	}
	if n == 0 {
		gn.Warn("No regions are stored yet, the table is empty")
	}
	return nil
}
