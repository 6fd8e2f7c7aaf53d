package cmd

import (
	"os"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getCacheCmd returns the cache command.
func getCacheCmd() *cobra.Command {
	var clean bool

	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Show or clear API caches",
		Long: `Show statistics of API caches or clear them.

Faunamap keeps three caches in ~/.cache/faunamap:
  - api_cache.json:                 occurrence batches
  - coordinates_regions.json:       reverse-geocoding results
  - taxonomy_translations.json:     translations of taxa

Examples:
  faunamap cache
  faunamap cache --clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCache(clean)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	cacheCmd.Flags().BoolVarP(
		&clean, "clear", "c", false,
		"remove all entries from caches",
	)

	return cacheCmd
}

func runCache(clean bool) error {
	list := newCaches(cfg.HomeDir).list()
	for _, nc := range list {
		if clean {
			if err := nc.cache.Clear(); err != nil {
				return err
			}
			continue
		}
		printCacheStats(os.Stdout, nc.name, nc.cache.Stats())
	}
	if clean {
		gn.Info("Removed entries of <em>%d</em> caches", len(list))
	}
	return nil
}
