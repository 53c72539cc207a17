package analytics

import (
	"slices"
	"sort"
	"unicode"

	"github.com/verte-zerg/keydrill/internal/metrics"
	"github.com/verte-zerg/keydrill/internal/model"
)

var typeLabels = map[model.CharacterType]string{
	model.CharLowercase:   "Lowercase",
	model.CharUppercase:   "Uppercase",
	model.CharNumbers:     "Numbers",
	model.CharPunctuation: "Punctuation & Symbols",
	model.CharWhitespace:  "Whitespace",
}

// CharacterTypeOf classifies r. Letters outside ASCII count as punctuation.
func CharacterTypeOf(r rune) model.CharacterType {
	switch {
	case r >= 'a' && r <= 'z':
		return model.CharLowercase
	case r >= 'A' && r <= 'Z':
		return model.CharUppercase
	case r >= '0' && r <= '9':
		return model.CharNumbers
	case unicode.IsSpace(r):
		return model.CharWhitespace
	default:
		return model.CharPunctuation
	}
}

// delayCount is the number of recorded delays, except that a bucket with
// none still reports 1.
func delayCount(delays []float64) int {
	if len(delays) == 0 {
		return 1
	}
	return len(delays)
}

// singleCharWPM is the speed implied by one character per avgDelay.
func singleCharWPM(avgDelay float64) float64 {
	if avgDelay <= 0 {
		return 0
	}
	return metrics.Round(perMinute(1, avgDelay), 0)
}

type charData struct {
	delays   []float64
	errors   int
	mistypes []rune
}

func analyzeCharacters(keystrokes []model.KeystrokeEvent, target []rune) []model.CharacterAnalysis {
	groups := newGrouping[rune, charData]()
	for i, ks := range keystrokes {
		expected, ok := expectedAt(target, ks.Index)
		if !ok {
			continue
		}
		data := groups.get(expected)
		if !ks.IsCorrect {
			data.errors++
			if !slices.Contains(data.mistypes, ks.Char) {
				data.mistypes = append(data.mistypes, ks.Char)
			}
		}
		if delay, ok := delayBefore(keystrokes, i); ok {
			data.delays = append(data.delays, delay)
		}
	}

	result := make([]model.CharacterAnalysis, 0, len(groups.keys))
	for _, ch := range groups.keys {
		data := groups.vals[ch]
		avgDelay := mean(data.delays)
		mistypes := data.mistypes
		if mistypes == nil {
			mistypes = []rune{}
		}
		result = append(result, model.CharacterAnalysis{
			Char:     ch,
			Count:    delayCount(data.delays),
			AvgDelay: metrics.Round(avgDelay, 0),
			WPM:      singleCharWPM(avgDelay),
			Errors:   data.errors,
			Mistypes: mistypes,
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].AvgDelay > result[j].AvgDelay
	})
	return result
}

type typeData struct {
	delays []float64
	chars  []rune
}

func analyzeCharacterTypes(keystrokes []model.KeystrokeEvent, target []rune) []model.CharacterTypeAnalysis {
	groups := newGrouping[model.CharacterType, typeData]()
	for i, ks := range keystrokes {
		expected, ok := expectedAt(target, ks.Index)
		if !ok {
			continue
		}
		data := groups.get(CharacterTypeOf(expected))
		if !slices.Contains(data.chars, expected) {
			data.chars = append(data.chars, expected)
		}
		if delay, ok := delayBefore(keystrokes, i); ok {
			data.delays = append(data.delays, delay)
		}
	}

	result := make([]model.CharacterTypeAnalysis, 0, len(groups.keys))
	for _, typ := range groups.keys {
		data := groups.vals[typ]
		avgDelay := mean(data.delays)
		result = append(result, model.CharacterTypeAnalysis{
			Type:     typ,
			Label:    typeLabels[typ],
			Count:    delayCount(data.delays),
			AvgDelay: metrics.Round(avgDelay, 0),
			WPM:      singleCharWPM(avgDelay),
			Chars:    data.chars,
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].AvgDelay > result[j].AvgDelay
	})
	return result
}
