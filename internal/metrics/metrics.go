// Package metrics computes session results and live readouts.
package metrics

import (
	"math"
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/keydrill/internal/model"
)

// CharsPerWord is the standard word length used for WPM.
const CharsPerWord = 5.0

// Policy controls how ignored input affects true accuracy.
type Policy struct {
	// CountIgnoredInput keeps presses made while paused or after completion
	// in the true-accuracy denominator.
	CountIgnoredInput bool
}

// DefaultPolicy counts every key press.
func DefaultPolicy() Policy {
	return Policy{CountIgnoredInput: true}
}

// Calculate builds the result of a completed session. It reports false
// while the session is still running.
func Calculate(task model.Task, state model.SessionState, counters model.Counters, policy Policy) (model.TaskResult, bool) {
	if !state.IsComplete || state.StartTime.IsZero() || state.EndTime.IsZero() {
		return model.TaskResult{}, false
	}
	targetLen := utf8.RuneCountInString(task.TargetText)
	if targetLen == 0 {
		return model.TaskResult{}, false
	}

	duration := elapsed(state.StartTime, state.EndTime)
	minutes := float64(duration) / float64(time.Minute)
	wordCount := float64(targetLen) / CharsPerWord
	errorCount := len(state.Errors)

	var rawWPM, wpm float64
	if minutes > 0 {
		rawWPM = wordCount / minutes
		wpm = math.Max(0, (wordCount-float64(errorCount))/minutes)
	}
	accuracy := math.Max(0, float64(targetLen-errorCount)/float64(targetLen))

	errs := make([]model.ErrorInfo, len(state.Errors))
	copy(errs, state.Errors)

	return model.TaskResult{
		TaskID:          task.ID,
		WPM:             Round(wpm, 1),
		RawWPM:          Round(rawWPM, 1),
		Accuracy:        Round(accuracy, 3),
		TrueAccuracy:    Round(TrueAccuracy(state, counters, policy), 3),
		TotalKeystrokes: counters.TotalKeypresses,
		BackspaceCount:  counters.Backspaces,
		Errors:          errs,
		DurationMs:      duration.Milliseconds(),
		CompletedAt:     state.EndTime,
		Passed:          accuracy >= task.MinAccuracy,
	}, true
}

// TrueAccuracy is correct positions over every key press counted by policy.
// No presses yields 1.
func TrueAccuracy(state model.SessionState, counters model.Counters, policy Policy) float64 {
	total := counters.TotalKeypresses
	if !policy.CountIgnoredInput {
		total -= counters.IgnoredKeypresses
	}
	if total <= 0 {
		return 1
	}
	correct := state.CurrentIndex - len(state.Errors)
	return clamp01(float64(correct) / float64(total))
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func elapsed(from, to time.Time) time.Duration {
	d := to.Sub(from)
	if d < 0 {
		return 0
	}
	return d
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
