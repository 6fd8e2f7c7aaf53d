// Package biostat derives the per-region biodiversity feature vector from
// a list of occurrence records. Compute is a pure function: the result
// depends only on the multiset of records, not on their order.
package biostat

import (
	"cmp"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/gnames/faunamap/pkg/occurrence"
)

// epsilon keeps the logarithm of Shannon index finite.
const epsilon = 1e-10

// topSpeciesNum is the number of species reported in TopSpecies.
const topSpeciesNum = 10

// Params contains settings of the temporal window.
type Params struct {
	// ReferenceYear is the last year of the recent activity window.
	// If it is zero, the latest observed year is used.
	ReferenceYear int

	// WindowYears is the length of the recent activity window, 5 by default.
	WindowYears int
}

// SpeciesCount is the number of records of one scientific name.
type SpeciesCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats is the biodiversity feature vector of a region.
type Stats struct {
	TotalSpecies int `json:"total_species"`
	TotalRecords int `json:"total_records"`

	MammalSpecies    int `json:"mammal_species"`
	BirdSpecies      int `json:"bird_species"`
	ReptileSpecies   int `json:"reptile_species"`
	AmphibianSpecies int `json:"amphibian_species"`
	FishSpecies      int `json:"fish_species"`
	InsectSpecies    int `json:"insect_species"`
	OtherSpecies     int `json:"other_species"`

	MammalRatio    float64 `json:"mammal_ratio"`
	BirdRatio      float64 `json:"bird_ratio"`
	ReptileRatio   float64 `json:"reptile_ratio"`
	AmphibianRatio float64 `json:"amphibian_ratio"`
	FishRatio      float64 `json:"fish_ratio"`
	InsectRatio    float64 `json:"insect_ratio"`
	OtherRatio     float64 `json:"other_ratio"`

	ShannonDiversity   float64 `json:"shannon_diversity"`
	DominantClass      string  `json:"dominant_class,omitempty"`
	DominantClassRatio float64 `json:"dominant_class_ratio"`
	RareSpeciesRatio   float64 `json:"rare_species_ratio"`
	RecordsPerSpecies  float64 `json:"records_per_species"`

	// RecentRecords is the number of records in the recent window.
	RecentRecords int `json:"recent_records"`
	// MaxYearRecords is the largest number of records of a single year.
	MaxYearRecords int `json:"max_year_records"`
	// LatestYear is the most recent year observed.
	LatestYear int `json:"data_freshness"`

	RecordsByYear     map[int]int    `json:"records_by_year"`
	ClassDistribution map[string]int `json:"class_distribution"`
	TopSpecies        []SpeciesCount `json:"top_species"`
}

// Compute calculates statistics of the records.
//
// Species are distinct non-empty scientific names. Records without a name
// count toward TotalRecords and class distribution, never as species.
// All ratios, the dominant class included, are zero when there are no
// species.
func Compute(records []occurrence.Record, params Params) Stats {
	res := Stats{
		TotalRecords:      len(records),
		RecordsByYear:     make(map[int]int),
		ClassDistribution: make(map[string]int),
	}

	speciesCount := make(map[string]int)
	buckets := make(map[Bucket]map[string]struct{})

	for _, r := range records {
		if y, ok := r.Year(); ok {
			res.RecordsByYear[y]++
		}

		class := strings.TrimSpace(r.Class)
		if class != "" {
			res.ClassDistribution[class]++
		}

		name := strings.TrimSpace(r.ScientificName)
		if name == "" {
			continue
		}
		speciesCount[name]++
		for _, b := range BucketsOf(class) {
			if buckets[b] == nil {
				buckets[b] = make(map[string]struct{})
			}
			buckets[b][name] = struct{}{}
		}
	}

	res.TotalSpecies = len(speciesCount)
	res.MammalSpecies = len(buckets[Mammal])
	res.BirdSpecies = len(buckets[Bird])
	res.ReptileSpecies = len(buckets[Reptile])
	res.AmphibianSpecies = len(buckets[Amphibian])
	res.FishSpecies = len(buckets[Fish])
	res.InsectSpecies = len(buckets[Insect])
	res.OtherSpecies = len(buckets[Other])

	if res.TotalSpecies > 0 {
		total := float64(res.TotalSpecies)
		res.MammalRatio = float64(res.MammalSpecies) / total
		res.BirdRatio = float64(res.BirdSpecies) / total
		res.ReptileRatio = float64(res.ReptileSpecies) / total
		res.AmphibianRatio = float64(res.AmphibianSpecies) / total
		res.FishRatio = float64(res.FishSpecies) / total
		res.InsectRatio = float64(res.InsectSpecies) / total
		res.OtherRatio = float64(res.OtherSpecies) / total
		res.RecordsPerSpecies = float64(res.TotalRecords) / total

		var rare int
		for _, v := range speciesCount {
			if v == 1 {
				rare++
			}
		}
		res.RareSpeciesRatio = float64(rare) / total
		res.DominantClass, res.DominantClassRatio = dominant(
			res.ClassDistribution, res.TotalRecords,
		)
	}

	res.ShannonDiversity = Shannon(res.ClassDistribution)
	res.RecentRecords, res.MaxYearRecords, res.LatestYear = temporal(
		res.RecordsByYear, params,
	)
	res.TopSpecies = topSpecies(speciesCount, topSpeciesNum)
	return res
}

// Shannon returns the Shannon diversity index of a distribution of labels.
// It is zero for an empty distribution or a single label.
func Shannon(dist map[string]int) float64 {
	if len(dist) < 2 {
		return 0
	}
	var sum int
	for _, v := range dist {
		sum += v
	}
	if sum == 0 {
		return 0
	}

	var res float64
	// fixed summation order keeps floating point results reproducible
	for _, k := range slices.Sorted(maps.Keys(dist)) {
		p := float64(dist[k]) / float64(sum)
		res -= p * math.Log(p+epsilon)
	}
	return max(res, 0)
}

func dominant(dist map[string]int, total int) (string, float64) {
	if len(dist) == 0 || total == 0 {
		return "", 0
	}
	var label string
	var count int
	for _, k := range slices.Sorted(maps.Keys(dist)) {
		if dist[k] > count {
			label, count = k, dist[k]
		}
	}
	return label, float64(count) / float64(total)
}

func temporal(byYear map[int]int, params Params) (recent, peak, latest int) {
	if len(byYear) == 0 {
		return 0, 0, 0
	}
	for y, count := range byYear {
		peak = max(peak, count)
		latest = max(latest, y)
	}

	ref := params.ReferenceYear
	if ref <= 0 {
		ref = latest
	}
	window := params.WindowYears
	if window <= 0 {
		window = 5
	}
	for i := range window {
		recent += byYear[ref-i]
	}
	return recent, peak, latest
}

func topSpecies(counts map[string]int, n int) []SpeciesCount {
	res := make([]SpeciesCount, 0, len(counts))
	for k, v := range counts {
		res = append(res, SpeciesCount{Name: k, Count: v})
	}
	slices.SortFunc(res, func(a, b SpeciesCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	if len(res) > n {
		res = res[:n]
	}
	return res
}
