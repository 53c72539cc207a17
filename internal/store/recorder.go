package store

import (
	"context"
	"time"

	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/tracker"
)

type recorder struct {
	store        *Store
	lang         string
	wordListPath string
}

// Recorder persists outcomes into the store, tagging them with the practice
// language and word list they were generated from.
func (s *Store) Recorder(lang, wordListPath string) tracker.Recorder {
	return &recorder{store: s, lang: lang, wordListPath: wordListPath}
}

func (r *recorder) Record(ctx context.Context, o tracker.Outcome) error {
	ended := o.Result.CompletedAt
	stats := model.SessionStats{
		SessionID:    o.SessionID,
		TaskID:       o.Task.ID,
		LessonID:     o.LessonID,
		StartedAt:    ended.Add(-time.Duration(o.Result.DurationMs) * time.Millisecond),
		EndedAt:      ended,
		Lang:         r.lang,
		Layout:       string(o.Layout),
		TargetText:   o.Task.TargetText,
		WordListPath: r.wordListPath,
		Result:       o.Result,
	}
	_, err := r.store.InsertSession(ctx, stats, CharStats(o.Keystrokes, o.Task.TargetText), o.Keystrokes)
	return err
}

// CharStats folds a keystroke log into per-character counters keyed by the
// expected character. Spaces are skipped. Latency is measured between
// consecutive correct keystrokes.
func CharStats(keystrokes []model.KeystrokeEvent, targetText string) []model.CharStats {
	target := []rune(targetText)
	index := map[rune]int{}
	var out []model.CharStats
	var prevCorrect time.Time
	for _, ks := range keystrokes {
		if ks.Index < 0 || ks.Index >= len(target) {
			continue
		}
		expected := target[ks.Index]
		if expected == ' ' {
			continue
		}
		i, ok := index[expected]
		if !ok {
			i = len(out)
			index[expected] = i
			out = append(out, model.CharStats{Char: string(expected)})
		}
		entry := &out[i]
		if !ks.IsCorrect {
			entry.Incorrect++
			continue
		}
		entry.Correct++
		if !prevCorrect.IsZero() {
			if delta := ks.Timestamp.Sub(prevCorrect); delta > 0 {
				entry.LatencySumMs += delta.Milliseconds()
			}
			entry.LatencyCount++
		}
		prevCorrect = ks.Timestamp
	}
	return out
}
