package metrics

import (
	"math"
	"time"

	"github.com/verte-zerg/keydrill/internal/model"
)

// Progress returns completion as a percentage of targetLen.
func Progress(state model.SessionState, targetLen int) float64 {
	if targetLen <= 0 {
		return 0
	}
	return float64(state.CurrentIndex) / float64(targetLen) * 100
}

// LiveWPM estimates speed from positions advanced so far, rounded to a whole number.
func LiveWPM(state model.SessionState, now time.Time) float64 {
	if state.StartTime.IsZero() || state.CurrentIndex == 0 {
		return 0
	}
	minutes := float64(elapsed(state.StartTime, now)) / float64(time.Minute)
	if minutes <= 0 {
		return 0
	}
	return math.Round(float64(state.CurrentIndex) / CharsPerWord / minutes)
}

// LiveAccuracy is the whole-number percentage of typed positions without an open error.
func LiveAccuracy(state model.SessionState) float64 {
	if state.CurrentIndex == 0 {
		return 100
	}
	correct := state.CurrentIndex - len(state.Errors)
	return math.Round(float64(correct) / float64(state.CurrentIndex) * 100)
}

// LiveTrueAccuracy is TrueAccuracy as a whole-number percentage.
func LiveTrueAccuracy(state model.SessionState, counters model.Counters, policy Policy) float64 {
	return math.Round(TrueAccuracy(state, counters, policy) * 100)
}
