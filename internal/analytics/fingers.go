package analytics

import (
	"sort"

	"github.com/verte-zerg/keydrill/internal/layout"
	"github.com/verte-zerg/keydrill/internal/metrics"
	"github.com/verte-zerg/keydrill/internal/model"
)

const fingerCount = 10

type fingerData struct {
	delays []float64
	errors int
	chars  int
}

func fingerAt(keystrokes []model.KeystrokeEvent, i int, target []rune, fingers FingerLookup) int {
	r, ok := expectedAt(target, keystrokes[i].Index)
	if !ok {
		return 0
	}
	f := fingers.FingerFor(r)
	if f < 1 || f > fingerCount {
		return 0
	}
	return f
}

func analyzeFingers(keystrokes []model.KeystrokeEvent, target []rune, fingers FingerLookup, totalTime float64) []model.FingerAnalysis {
	var data [fingerCount + 1]fingerData
	for i, ks := range keystrokes {
		f := fingerAt(keystrokes, i, target, fingers)
		if f == 0 {
			continue
		}
		d := &data[f]
		d.chars++
		if !ks.IsCorrect {
			d.errors++
		}
		if delay, ok := delayBefore(keystrokes, i); ok {
			d.delays = append(d.delays, delay)
		}
	}

	result := make([]model.FingerAnalysis, 0, fingerCount)
	for f := 1; f <= fingerCount; f++ {
		d := data[f]
		if d.chars == 0 {
			continue
		}
		chars := float64(d.chars)
		result = append(result, model.FingerAnalysis{
			Finger:    layout.FingerName(f),
			FingerNum: f,
			Hand:      layout.HandFor(f),
			Count:     d.chars,
			AvgDelay:  metrics.Round(mean(d.delays), 0),
			WPM:       metrics.Round(perMinute(chars, totalTime), 0),
			Errors:    d.errors,
			Accuracy:  metrics.Round((chars-float64(d.errors))/chars, 2),
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].WPM > result[j].WPM
	})
	return result
}

func analyzeHands(keystrokes []model.KeystrokeEvent, target []rune, fingers FingerLookup, totalTime float64) model.HandAnalysis {
	var left, right fingerData
	for i, ks := range keystrokes {
		f := fingerAt(keystrokes, i, target, fingers)
		if f == 0 {
			continue
		}
		d := &right
		if layout.HandFor(f) == model.HandLeft {
			d = &left
		}
		d.chars++
		if !ks.IsCorrect {
			d.errors++
		}
	}
	return model.HandAnalysis{
		Left:  handStats(left, totalTime),
		Right: handStats(right, totalTime),
	}
}

func handStats(d fingerData, totalTime float64) model.HandStats {
	accuracy := 100.0
	if d.chars > 0 {
		accuracy = metrics.Round(float64(d.chars-d.errors)/float64(d.chars)*100, 0)
	}
	return model.HandStats{
		Count:    d.chars,
		WPM:      metrics.Round(perMinute(float64(d.chars), totalTime), 0),
		Accuracy: accuracy,
	}
}
