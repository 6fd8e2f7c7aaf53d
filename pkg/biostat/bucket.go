package biostat

import "strings"

// Bucket is a coarse class group used for species counts.
type Bucket int

const (
	Other Bucket = iota
	Mammal
	Bird
	Reptile
	Amphibian
	Fish
	Insect
)

// bucketKeywords are matched as case-insensitive substrings of a class.
var bucketKeywords = []struct {
	bucket   Bucket
	keywords []string
}{
	{Mammal, []string{"mammalia"}},
	{Bird, []string{"aves"}},
	{Reptile, []string{"reptilia"}},
	{Amphibian, []string{"amphibia"}},
	{Fish, []string{"actinopterygii", "chondrichthyes"}},
	{Insect, []string{"insecta"}},
}

func (b Bucket) String() string {
	switch b {
	case Mammal:
		return "mammal"
	case Bird:
		return "bird"
	case Reptile:
		return "reptile"
	case Amphibian:
		return "amphibian"
	case Fish:
		return "fish"
	case Insect:
		return "insect"
	default:
		return "other"
	}
}

// BucketsOf returns every bucket whose keywords occur in the class.
// A class without matches, including an empty one, belongs to Other.
func BucketsOf(class string) []Bucket {
	class = strings.ToLower(class)
	var res []Bucket
	for _, v := range bucketKeywords {
		for _, kw := range v.keywords {
			if strings.Contains(class, kw) {
				res = append(res, v.bucket)
				break
			}
		}
	}
	if len(res) == 0 {
		return []Bucket{Other}
	}
	return res
}
