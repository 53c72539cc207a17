package analytics

import (
	"sort"

	"github.com/verte-zerg/keydrill/internal/metrics"
	"github.com/verte-zerg/keydrill/internal/model"
)

type ngramData struct {
	times  []float64
	errors int
}

// collectNgrams groups runs of n index-consecutive keystrokes by their
// expected characters. A correction breaks the run.
func collectNgrams(keystrokes []model.KeystrokeEvent, target []rune, n int) *grouping[string, ngramData] {
	groups := newGrouping[string, ngramData]()
	chars := make([]rune, n)
outer:
	for i := n - 1; i < len(keystrokes); i++ {
		window := keystrokes[i-n+1 : i+1]
		hasError := false
		for j, ks := range window {
			if j > 0 && ks.Index != window[j-1].Index+1 {
				continue outer
			}
			r, ok := expectedAt(target, ks.Index)
			if !ok {
				continue outer
			}
			chars[j] = r
			if !ks.IsCorrect {
				hasError = true
			}
		}
		data := groups.get(string(chars))
		data.times = append(data.times, millis(window[n-1].Timestamp.Sub(window[0].Timestamp)))
		if hasError {
			data.errors++
		}
	}
	return groups
}

func analyzeBigrams(keystrokes []model.KeystrokeEvent, target []rune) []model.BigramAnalysis {
	groups := collectNgrams(keystrokes, target, 2)
	result := make([]model.BigramAnalysis, 0, len(groups.keys))
	for _, key := range groups.keys {
		data := groups.vals[key]
		runes := []rune(key)
		result = append(result, model.BigramAnalysis{
			Bigram:  key,
			Chars:   [2]rune{runes[0], runes[1]},
			Count:   len(data.times),
			AvgTime: metrics.Round(mean(data.times), 0),
			Errors:  data.errors,
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].AvgTime > result[j].AvgTime
	})
	return result
}

func analyzeTrigrams(keystrokes []model.KeystrokeEvent, target []rune) []model.TrigramAnalysis {
	groups := collectNgrams(keystrokes, target, 3)
	result := make([]model.TrigramAnalysis, 0, len(groups.keys))
	for _, key := range groups.keys {
		data := groups.vals[key]
		runes := []rune(key)
		result = append(result, model.TrigramAnalysis{
			Trigram: key,
			Chars:   [3]rune{runes[0], runes[1], runes[2]},
			Count:   len(data.times),
			AvgTime: metrics.Round(mean(data.times), 0),
			Errors:  data.errors,
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].AvgTime > result[j].AvgTime
	})
	return result
}
