package analytics

import (
	"sort"
	"time"
	"unicode"

	"github.com/verte-zerg/keydrill/internal/metrics"
	"github.com/verte-zerg/keydrill/internal/model"
)

type wordSpan struct {
	word       string
	start, end int
}

// splitWords returns the maximal non-whitespace runs of target.
func splitWords(target []rune) []wordSpan {
	var spans []wordSpan
	start := -1
	for i, r := range target {
		if unicode.IsSpace(r) {
			if start != -1 {
				spans = append(spans, wordSpan{word: string(target[start:i]), start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		spans = append(spans, wordSpan{word: string(target[start:]), start: start, end: len(target)})
	}
	return spans
}

type occurrence struct {
	seen        int
	first, last time.Time
	errors      int
}

type wordData struct {
	times  []float64
	errors int
}

// analyzeWords groups word occurrences by text. A word's accuracy subtracts
// every incorrect keystroke made inside it, corrected or not, from its
// character count, so a heavily corrected word scores below zero. This
// matches the accuracy older session records were written with and is kept
// on purpose.
func analyzeWords(keystrokes []model.KeystrokeEvent, target []rune) []model.WordAnalysis {
	spans := splitWords(target)
	spanAt := make([]int, len(target))
	for i := range spanAt {
		spanAt[i] = -1
	}
	for s, span := range spans {
		for i := span.start; i < span.end; i++ {
			spanAt[i] = s
		}
	}

	occ := make([]occurrence, len(spans))
	for _, ks := range keystrokes {
		if ks.Index < 0 || ks.Index >= len(target) || spanAt[ks.Index] < 0 {
			continue
		}
		o := &occ[spanAt[ks.Index]]
		if o.seen == 0 {
			o.first = ks.Timestamp
		}
		o.last = ks.Timestamp
		o.seen++
		if !ks.IsCorrect {
			o.errors++
		}
	}

	groups := newGrouping[string, wordData]()
	for s, span := range spans {
		o := occ[s]
		if o.seen == 0 {
			continue
		}
		var spent float64
		if o.seen > 1 {
			spent = millis(o.last.Sub(o.first))
		}
		data := groups.get(span.word)
		data.times = append(data.times, spent)
		data.errors += o.errors
	}

	result := make([]model.WordAnalysis, 0, len(groups.keys))
	for _, word := range groups.keys {
		data := groups.vals[word]
		length := float64(len([]rune(word)))
		avgTime := mean(data.times)
		totalChars := length * float64(len(data.times))
		accuracy := 1.0
		if totalChars > 0 {
			accuracy = (totalChars - float64(data.errors)) / totalChars
		}
		result = append(result, model.WordAnalysis{
			Word:     word,
			Count:    len(data.times),
			AvgTime:  metrics.Round(avgTime, 0),
			WPM:      metrics.Round(perMinute(length, avgTime), 0),
			Errors:   data.errors,
			Accuracy: metrics.Round(accuracy, 2),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].AvgTime < result[j].AvgTime
	})
	return result
}
