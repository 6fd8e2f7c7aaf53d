package cmd

import (
	"os"
	"strconv"

	"github.com/gnames/faunamap/internal/iofinder"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getCoordsCmd returns the coords command.
func getCoordsCmd() *cobra.Command {
	var force bool

	coordsCmd := &cobra.Command{
		Use:   "coords <lat> <lon>",
		Short: "Find animals of the region of a point",
		Long: `Find animals of the region a point belongs to.

The region is determined by a reverse-geocoding service. If the region
has no records, animals are searched within 50 km around the point.
Negative coordinates need '--' before them.

Examples:
  faunamap coords 55.75 37.62
  faunamap coords -- 43.1 131.9`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCoords(args[0], args[1], force)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	coordsCmd.Flags().BoolVarP(
		&force, "force", "f", false,
		"fetch records again even if the region is stored",
	)

	return coordsCmd
}

// parseCoords converts command arguments to a point.
func parseCoords(latStr, lonStr string) (float64, float64, error) {
	lat, errLat := strconv.ParseFloat(latStr, 64)
	lon, errLon := strconv.ParseFloat(lonStr, 64)
	if errLat != nil || errLon != nil {
		return 0, 0, iofinder.CoordinatesFormatError(latStr, lonStr)
	}
	return lat, lon, nil
}

func runCoords(latStr, lonStr string, force bool) error {
	lat, lon, err := parseCoords(latStr, lonStr)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	set, err := a.finder.Coordinates(ctx, lat, lon, force)
	if err != nil {
		return err
	}
	printRecordSet(os.Stdout, set)
	return nil
}
