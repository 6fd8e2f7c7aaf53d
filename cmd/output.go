package cmd

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/faunamap/pkg/cache"
	"github.com/gnames/faunamap/pkg/lifecycle"
	"github.com/gnames/faunamap/pkg/occurrence"
	"github.com/gnames/faunamap/pkg/store"
)

// byCount returns keys of m sorted by decreasing value, then by key.
func byCount(m map[string]int) []string {
	return slices.SortedFunc(maps.Keys(m), func(a, b string) int {
		if c := cmp.Compare(m[b], m[a]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
}

func printRecordSet(w io.Writer, set store.RegionRecordSet) {
	s := set.Stats
	fmt.Fprintf(w, "\n%s (%s)\n", set.Native, set.Key)
	fmt.Fprintf(w, "updated: %s\n", set.LastUpdated.Format(time.DateTime))
	fmt.Fprintf(w, "records: %s, species: %s\n",
		humanize.Comma(int64(set.TotalRecords)),
		humanize.Comma(int64(set.UniqueSpecies)),
	)
	if set.TotalRecords == 0 {
		return
	}
	fmt.Fprintf(w, "shannon diversity: %.3f\n", s.ShannonDiversity)
	if s.DominantClass != "" {
		fmt.Fprintf(w, "dominant class: %s (%.1f%%)\n",
			s.DominantClass, s.DominantClassRatio*100)
	}
	fmt.Fprintf(w, "recent records: %d, latest year: %d\n",
		s.RecentRecords, s.LatestYear)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nclass\trecords")
	for _, k := range byCount(s.ClassDistribution) {
		fmt.Fprintf(tw, "%s\t%d\n", k, s.ClassDistribution[k])
	}
	tw.Flush()

	common := make(map[string]string)
	for _, r := range set.Records {
		if r.CommonName != "" {
			common[r.ScientificName] = r.CommonName
		}
	}
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nspecies\tcommon name\trecords")
	for _, sp := range s.TopSpecies {
		fmt.Fprintf(tw, "%s\t%s\t%d\n",
			sp.Name, occurrence.Display(common[sp.Name]), sp.Count)
	}
	tw.Flush()
}

func printSummaries(w io.Writer, sums []store.Summary) {
	if len(sums) == 0 {
		fmt.Fprintln(w, "No regions are stored yet")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "key\tregion\tupdated\trecords\tspecies\tsignificant\ttop class")
	for _, s := range sums {
		top := occurrence.Unspecified
		if classes := byCount(s.ClassDistribution); len(classes) > 0 {
			top = classes[0]
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Key, s.Native,
			s.LastUpdated.Format(time.DateOnly),
			humanize.Comma(int64(s.TotalRecords)),
			humanize.Comma(int64(s.UniqueSpecies)),
			humanize.Comma(int64(s.SignificantRecords)),
			top,
		)
	}
	tw.Flush()
}

func printSurvey(w io.Writer, res []lifecycle.SurveyResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "key\tregion\trecords\tsample kingdoms")
	for _, r := range res {
		count := humanize.Comma(int64(r.Count))
		if r.Failed {
			count = "failed"
		}
		var ks []string
		for _, k := range byCount(r.Kingdoms) {
			ks = append(ks, fmt.Sprintf("%s: %d", k, r.Kingdoms[k]))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.Region.Key, r.Region.Native, count, strings.Join(ks, ", "))
	}
	tw.Flush()
}

func printCacheStats(w io.Writer, name string, s cache.Stats) {
	fmt.Fprintf(w, "%s: %s entries, %s requests, %s hits (%.1f%%)\n",
		name,
		humanize.Comma(int64(s.Entries)),
		humanize.Comma(int64(s.TotalRequests)),
		humanize.Comma(int64(s.CacheHits)),
		s.HitRatio()*100,
	)
}
