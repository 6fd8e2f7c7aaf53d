package cmd

import (
	"os"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getRegionsCmd returns the regions command.
func getRegionsCmd() *cobra.Command {
	regionsCmd := &cobra.Command{
		Use:   "regions",
		Short: "Summarize stored regions",
		Long: `Summarize regions found so far.

For every stored region it shows the number of records and species, and
the number of significant records, i.e. records of species seen at least
filter.min_summary times that are not excluded by filter.excluded_classes.`,
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRegions()
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return regionsCmd
}

func runRegions() error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	printSummaries(os.Stdout, a.finder.Summaries())
	return nil
}
