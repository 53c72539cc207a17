package stats

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/keydrill/internal/model"
)

// CharFrequency counts how often a character was expected and how many of
// those keystrokes missed.
type CharFrequency struct {
	Char   string
	Count  int
	Errors int
}

// FrequencyFromAggregates converts stored per-character totals.
func FrequencyFromAggregates(aggs []model.CharAggregate) []CharFrequency {
	out := make([]CharFrequency, 0, len(aggs))
	for _, agg := range aggs {
		out = append(out, CharFrequency{Char: agg.Char, Count: agg.Correct + agg.Incorrect, Errors: agg.Incorrect})
	}
	return out
}

// FrequencyFromAnalysis converts the character breakdown of one session.
func FrequencyFromAnalysis(chars []model.CharacterAnalysis) []CharFrequency {
	out := make([]CharFrequency, 0, len(chars))
	for _, c := range chars {
		out = append(out, CharFrequency{Char: string(c.Char), Count: c.Count, Errors: c.Errors})
	}
	return out
}

// TopCharsByFrequency returns the n most frequent non-whitespace characters.
// Ties go to the character with more errors, then to the lower character.
func TopCharsByFrequency(freqs []CharFrequency, n int) []CharFrequency {
	if n <= 0 {
		return nil
	}
	out := make([]CharFrequency, 0, len(freqs))
	for _, f := range freqs {
		r, _ := utf8.DecodeRuneInString(f.Char)
		if f.Count == 0 || unicode.IsSpace(r) {
			continue
		}
		out = append(out, f)
	}
	slices.SortFunc(out, func(a, b CharFrequency) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		if a.Errors != b.Errors {
			return b.Errors - a.Errors
		}
		return strings.Compare(a.Char, b.Char)
	})
	return out[:min(n, len(out))]
}

// FormatTopChars renders frequencies as "e×12(1) t×9", with the error count
// in parentheses when there is one.
func FormatTopChars(freqs []CharFrequency) string {
	parts := make([]string, 0, len(freqs))
	for _, f := range freqs {
		part := fmt.Sprintf("%s×%d", f.Char, f.Count)
		if f.Errors > 0 {
			part += fmt.Sprintf("(%d)", f.Errors)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " ")
}
