package cmd

import (
	"fmt"
	"os"

	faunamap "github.com/gnames/faunamap/pkg"
	"github.com/spf13/cobra"
)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf(
			"\nversion: %s\nbuild: %s\n\n", faunamap.Version, faunamap.Build,
		)
		os.Exit(0)
	}
}
