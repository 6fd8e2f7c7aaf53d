package cmd

import (
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getRegionCmd returns the region command.
func getRegionCmd() *cobra.Command {
	var force bool

	regionCmd := &cobra.Command{
		Use:   "region <native name>",
		Short: "Find animals of a region by its native name",
		Long: `Find animals of a region by its native name.

The name is matched against ~/.config/faunamap/regions.yaml, including
aliases and names without the administrative suffix. Records come from
GBIF and from the local database of well-known animals. Results are
saved to ~/.local/share/faunamap/regions and reused on the next run.

Examples:
  faunamap region Амурская область
  faunamap region "Республика Татарстан" --force`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRegion(strings.Join(args, " "), force)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	regionCmd.Flags().BoolVarP(
		&force, "force", "f", false,
		"fetch records again even if the region is stored",
	)

	return regionCmd
}

func runRegion(native string, force bool) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	set, err := a.finder.Region(ctx, native, force)
	if err != nil {
		return err
	}
	printRecordSet(os.Stdout, set)
	return nil
}
