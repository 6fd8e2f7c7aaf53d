package classify

// category is a coarse group of organisms an indicator points to.
type category int

const (
	animal category = iota + 1
	plant
	fungus
)

// rank is the taxonomic field an indicator is matched against.
type rank int

const (
	kingdomRank rank = iota
	phylumRank
	classRank
)

// indicators maps lowercase taxon names per rank to the category they
// indicate. Names are unique within a rank.
var indicators = map[rank]map[string]category{
	kingdomRank: {
		"animalia": animal,
		"plantae":  plant,
		"fungi":    fungus,
	},
	phylumRank: {
		"chordata":      animal,
		"arthropoda":    animal,
		"mollusca":      animal,
		"annelida":      animal,
		"cnidaria":      animal,
		"echinodermata": animal,

		"magnoliophyta":   plant,
		"tracheophyta":    plant,
		"bryophyta":       plant,
		"marchantiophyta": plant,

		"ascomycota":    fungus,
		"basidiomycota": fungus,
	},
	classRank: {
		"mammalia":       animal,
		"aves":           animal,
		"reptilia":       animal,
		"amphibia":       animal,
		"actinopterygii": animal,
		"insecta":        animal,
		"arachnida":      animal,
		"gastropoda":     animal,
		"bivalvia":       animal,
		"malacostraca":   animal,
		"actinopoda":     animal,
		"branchiopoda":   animal,
		"cephalopoda":    animal,
		"clitellata":     animal,
		"demospongiae":   animal,
		"entognatha":     animal,
		"eurotatoria":    animal,
		"gymnolaemata":   animal,
		"holothuroidea":  animal,
		"hydrozoa":       animal,
		"maxillopoda":    animal,
		"merostomata":    animal,
		"monogononta":    animal,
		"oligochaeta":    animal,
		"ostracoda":      animal,
		"polychaeta":     animal,
		"polyplacophora": animal,
		"scyphozoa":      animal,
		"tentaculata":    animal,
		"turbellaria":    animal,

		"magnoliopsida":  plant,
		"liliopsida":     plant,
		"pinopsida":      plant,
		"lycopodiopsida": plant,
	},
}

// plantBasisMarkers are substrings of basisOfRecord that indicate plants.
var plantBasisMarkers = []string{"plant", "herbarium"}

// speciesSuffixes are endings of single-word names that still look like
// species epithets.
var speciesSuffixes = []string{"us", "a", "is", "ensis"}

// extraRankNames are names of higher taxa that are not indicators but
// should never count as species.
var extraRankNames = []string{
	"chondrichthyes", "agnatha", "myriapoda", "crustacea", "anthozoa",
	"collembola", "diplopoda", "chilopoda", "squamata", "testudines",
	"crocodylia", "vertebrata", "invertebrata", "protozoa", "chromista",
	"bacteria", "archaea", "viruses", "incertae sedis",
}
