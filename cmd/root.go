/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gnames/faunamap/internal/ioconfig"
	"github.com/gnames/faunamap/internal/iofs"
	"github.com/gnames/faunamap/internal/iologger"
	faunamap "github.com/gnames/faunamap/pkg"
	"github.com/gnames/faunamap/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

var (
	homeDir      string
	opts         []config.Option
	cfg          *config.Config
	withProgress bool
)

// getRootCmd creates the base command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf(
			"version: %s\nbuild:   %s", faunamap.Version, faunamap.Build,
		),
		Use:   "faunamap",
		Short: "Faunamap collects animal occurrences of Russian regions",
		Long: `Faunamap collects animal occurrence records of Russian regions from
GBIF, merges them with a local database of well-known animals, translates
taxa and computes biodiversity statistics of every region.

Main features:
  - region:  find animals of a region by its native name
  - coords:  find animals of the region of a point
  - regions: summarize regions found so far
  - survey:  check how much data GBIF has for regions
  - export:  write region features into a SQLite file
  - cache:   show or clear API caches

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (FAUNAMAP_*)
  3. Config file (~/.config/faunamap/config.yaml)
  4. Built-in defaults

Nested fields use underscores (gbif.country -> FAUNAMAP_GBIF_COUNTRY).`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "faunamap version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for faunamap")

	rootCmd.PersistentFlags().BoolVarP(
		&withProgress, "progress", "p", false,
		"show progress bars",
	)

	rootCmd.AddCommand(
		getRegionCmd(),
		getCoordsCmd(),
		getRegionsCmd(),
		getSurveyCmd(),
		getExportCmd(),
		getCacheCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	ensure := []func(string) error{
		iofs.EnsureConfigFile,
		iofs.EnsureRegionsFile,
		iofs.EnsureLocalDB,
	}
	for _, fn := range ensure {
		if err = fn(homeDir); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
	}

	gn.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(homeDir),
	)

	if opts, err = ioconfig.Load(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	cfg.Update(opts)

	// Set runtime-only settings after config is loaded
	cfg.Update([]config.Option{
		config.OptHomeDir(homeDir),
		config.OptWithProgress(withProgress),
	})

	// Reconfigure logging with user's settings and proper log file location
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"country", cfg.GBIF.Country,
	)

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log)
}

func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	iologger.Close()
	if err != nil {
		os.Exit(1)
	}
}
