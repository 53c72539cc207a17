// Package analytics breaks a keystroke log down by word, n-gram, finger,
// hand, character and character class.
//
// Every per-position grouping keys on the expected character at the
// keystroke's index, so a mistyped position still counts toward the
// character the typist was aiming for. Events whose index falls outside the
// target text are skipped. Averages and rates are rounded the way the
// reports have always been rounded: times to whole milliseconds, WPM to
// whole words, finger and word accuracy to two decimals, hand accuracy to a
// whole percentage.
package analytics

import (
	"time"

	"github.com/verte-zerg/keydrill/internal/layout"
	"github.com/verte-zerg/keydrill/internal/metrics"
	"github.com/verte-zerg/keydrill/internal/model"
)

// FingerLookup resolves a character to a finger number (1-10), or 0 if unknown.
type FingerLookup interface {
	FingerFor(r rune) int
}

// Calculate builds the analytics report. It never mutates keystrokes.
// A nil fingers uses the default layout.
func Calculate(keystrokes []model.KeystrokeEvent, targetText string, fingers FingerLookup) model.TypingAnalytics {
	if len(keystrokes) == 0 {
		return empty()
	}
	if fingers == nil {
		fingers = layout.FingerMapFor(layout.Default)
	}
	target := []rune(targetText)
	totalTime := millis(keystrokes[len(keystrokes)-1].Timestamp.Sub(keystrokes[0].Timestamp))

	return model.TypingAnalytics{
		Keystrokes:     append([]model.KeystrokeEvent(nil), keystrokes...),
		Words:          analyzeWords(keystrokes, target),
		Bigrams:        analyzeBigrams(keystrokes, target),
		Trigrams:       analyzeTrigrams(keystrokes, target),
		Fingers:        analyzeFingers(keystrokes, target, fingers, totalTime),
		Hands:          analyzeHands(keystrokes, target, fingers, totalTime),
		Characters:     analyzeCharacters(keystrokes, target),
		CharacterTypes: analyzeCharacterTypes(keystrokes, target),
		TotalTime:      totalTime,
		TotalChars:     len(keystrokes),
	}
}

func empty() model.TypingAnalytics {
	return model.TypingAnalytics{
		Keystrokes:     []model.KeystrokeEvent{},
		Words:          []model.WordAnalysis{},
		Bigrams:        []model.BigramAnalysis{},
		Trigrams:       []model.TrigramAnalysis{},
		Fingers:        []model.FingerAnalysis{},
		Hands:          model.HandAnalysis{Left: model.HandStats{Accuracy: 100}, Right: model.HandStats{Accuracy: 100}},
		Characters:     []model.CharacterAnalysis{},
		CharacterTypes: []model.CharacterTypeAnalysis{},
	}
}

// expectedAt returns the target character at idx.
func expectedAt(target []rune, idx int) (rune, bool) {
	if idx < 0 || idx >= len(target) {
		return 0, false
	}
	return target[idx], true
}

// delayBefore is the gap between keystroke i and its predecessor in the log.
func delayBefore(keystrokes []model.KeystrokeEvent, i int) (float64, bool) {
	if i == 0 {
		return 0, false
	}
	return millis(keystrokes[i].Timestamp.Sub(keystrokes[i-1].Timestamp)), true
}

// millis converts d to milliseconds, treating negative intervals as zero.
func millis(d time.Duration) float64 {
	if d < 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}

// perMinute converts count characters over ms milliseconds to words per minute.
func perMinute(chars, ms float64) float64 {
	minutes := ms / 60000
	if minutes <= 0 {
		return 0
	}
	return (chars / metrics.CharsPerWord) / minutes
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// grouping keeps aggregates in first-seen key order.
type grouping[K comparable, V any] struct {
	keys []K
	vals map[K]*V
}

func newGrouping[K comparable, V any]() *grouping[K, V] {
	return &grouping[K, V]{vals: map[K]*V{}}
}

func (g *grouping[K, V]) get(key K) *V {
	if v, ok := g.vals[key]; ok {
		return v
	}
	v := new(V)
	g.vals[key] = v
	g.keys = append(g.keys, key)
	return v
}
