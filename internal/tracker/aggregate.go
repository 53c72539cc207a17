package tracker

import (
	"context"
	"maps"
	"math"
	"sort"
	"sync"
)

// Totals is a snapshot of the rolling statistics.
type Totals struct {
	Sessions          int
	AvgWPM            float64
	AvgAccuracy       float64
	AvgTrueAccuracy   float64
	TotalKeystrokes   int
	TotalBackspaces   int
	CorrectKeystrokes int
	PracticeTimeMs    int64
	WordsTyped        int
	ProblemKeys       map[rune]int
}

// ProblemKey is a character and how often it was missed.
type ProblemKey struct {
	Char   rune
	Misses int
}

// StatsAggregator keeps running averages across sessions. Averages are
// updated against the number of sessions actually recorded.
type StatsAggregator struct {
	mu sync.Mutex
	t  Totals
}

func NewStatsAggregator() *StatsAggregator {
	return &StatsAggregator{t: Totals{ProblemKeys: map[rune]int{}}}
}

func (s *StatsAggregator) Record(_ context.Context, o Outcome) error {
	r := o.Result

	s.mu.Lock()
	defer s.mu.Unlock()
	n := float64(s.t.Sessions)
	s.t.AvgWPM = (s.t.AvgWPM*n + r.WPM) / (n + 1)
	s.t.AvgAccuracy = (s.t.AvgAccuracy*n + r.Accuracy) / (n + 1)
	s.t.AvgTrueAccuracy = (s.t.AvgTrueAccuracy*n + r.TrueAccuracy) / (n + 1)
	s.t.Sessions++

	s.t.TotalKeystrokes += r.TotalKeystrokes
	s.t.TotalBackspaces += r.BackspaceCount
	s.t.CorrectKeystrokes += max(0, r.TotalKeystrokes-r.BackspaceCount-len(r.Errors))
	s.t.PracticeTimeMs += r.DurationMs
	s.t.WordsTyped += int(math.Floor(float64(r.DurationMs) / 60000 * r.WPM))
	for _, e := range r.Errors {
		s.t.ProblemKeys[e.Expected]++
	}
	return nil
}

// Snapshot returns a copy of the current totals.
func (s *StatsAggregator) Snapshot() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.t
	out.ProblemKeys = maps.Clone(s.t.ProblemKeys)
	return out
}

// TopProblemKeys returns up to n characters with the most misses.
func (s *StatsAggregator) TopProblemKeys(n int) []ProblemKey {
	s.mu.Lock()
	keys := make([]ProblemKey, 0, len(s.t.ProblemKeys))
	for r, c := range s.t.ProblemKeys {
		keys = append(keys, ProblemKey{Char: r, Misses: c})
	}
	s.mu.Unlock()

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Misses != keys[j].Misses {
			return keys[i].Misses > keys[j].Misses
		}
		return keys[i].Char < keys[j].Char
	})
	if n >= 0 && len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
