package wordlist

import (
	"strings"
	"unicode"

	"github.com/verte-zerg/keydrill/internal/layout"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// alphabets lists the letters each language adds to a-z.
var alphabets = map[string]string{
	"en": "",
	"de": "äöüß",
	"fr": "àâæçéèêëîïôœùûüÿ",
	"es": "áéíñóúü",
}

// FilterForLang keeps lowercase words spelled in the language's alphabet.
// Languages without a known alphabet keep any lowercase word of letters.
func FilterForLang(lang string) FilterFunc {
	extra, known := alphabets[strings.ToLower(lang)]
	return func(word string) bool {
		if word == "" {
			return false
		}
		for _, r := range word {
			switch {
			case r >= 'a' && r <= 'z':
			case known && strings.ContainsRune(extra, r):
			case !known && unicode.IsLetter(r) && unicode.IsLower(r):
			default:
				return false
			}
		}
		return true
	}
}

// TypeableOn keeps words whose characters all have a key on the layout.
func TypeableOn(fm *layout.FingerMap) FilterFunc {
	return func(word string) bool {
		for _, r := range word {
			if fm.FingerFor(r) == 0 {
				return false
			}
		}
		return word != ""
	}
}

// All keeps words that every filter keeps.
func All(filters ...FilterFunc) FilterFunc {
	return func(word string) bool {
		for _, keep := range filters {
			if !keep(word) {
				return false
			}
		}
		return true
	}
}
