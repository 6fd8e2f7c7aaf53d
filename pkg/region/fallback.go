package region

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// adminSuffixes are removed from names before a key is derived.
// Longer phrases go first so that their parts are not removed separately.
var adminSuffixes = []string{
	"автономный округ", "автономная область", "народная республика",
	"республика", "область", "край", "район", "обл.", "г.",
	"autonomous okrug", "autonomous oblast", "republic of", "republic",
	"oblast", "krai", "kray", "region", "province", "district",
}

var translit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "shch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

// Fallback derives a key from a name that is missing in the regions table.
// Administrative suffixes are removed, Cyrillic is transliterated,
// diacritics are folded, words are title-cased and joined without spaces.
// If nothing is left, UnknownKey is returned.
func Fallback(native string) string {
	s := strings.ToLower(strings.TrimSpace(native))
	for _, suf := range adminSuffixes {
		s = strings.ReplaceAll(s, suf, " ")
	}

	var sb strings.Builder
	for _, r := range s {
		if lat, ok := translit[r]; ok {
			sb.WriteString(lat)
			continue
		}
		sb.WriteRune(r)
	}

	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		sb.String(),
	)
	if err != nil {
		folded = sb.String()
	}

	words := strings.FieldsFunc(folded, func(r rune) bool {
		return !(r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
	})
	if len(words) == 0 {
		return UnknownKey
	}

	caser := cases.Title(language.Und)
	for i := range words {
		words[i] = caser.String(words[i])
	}
	return strings.Join(words, "")
}
