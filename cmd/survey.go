package cmd

import (
	"os"

	"github.com/gnames/faunamap/internal/iofinder"
	"github.com/gnames/faunamap/pkg/region"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getSurveyCmd returns the survey command.
func getSurveyCmd() *cobra.Command {
	surveyCmd := &cobra.Command{
		Use:   "survey [native name...]",
		Short: "Check how much data GBIF has for regions",
		Long: `Check how much data GBIF has for regions.

For every region it requests the number of records and a small sample
to estimate which kingdoms dominate. Without arguments, regions marked
with 'survey: true' in ~/.config/faunamap/regions.yaml are checked.

Examples:
  faunamap survey
  faunamap survey Москва "Амурская область"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSurvey(args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return surveyCmd
}

// surveyCandidates resolves native names, or returns marked regions
// when names are empty.
func surveyCandidates(
	res *region.Resolver,
	names []string,
) ([]region.Entry, error) {
	if len(names) == 0 {
		return res.SurveyCandidates(), nil
	}
	cands := make([]region.Entry, 0, len(names))
	for _, n := range names {
		e := res.Resolve(n)
		if e.IsUnknown() {
			return nil, iofinder.RegionNotResolvedError(n)
		}
		cands = append(cands, e)
	}
	return cands, nil
}

func runSurvey(names []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	cands, err := surveyCandidates(a.resolver, names)
	if err != nil {
		return err
	}
	gn.Info("Surveying <em>%d</em> regions", len(cands))

	res := a.finder.Survey(ctx, cands)
	if err = ctx.Err(); err != nil {
		return iofinder.CancelledError(err)
	}
	printSurvey(os.Stdout, res)
	return nil
}
