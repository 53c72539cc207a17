// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/tracker"
)

// activityShades grades practice time per day, lightest first.
const activityShades = " .:-=+*#%@"

// Summary aggregates stored sessions.
type Summary struct {
	Sessions        int
	AvgWPM          float64
	BestWPM         float64
	AvgAccuracy     float64
	AvgTrueAccuracy float64
	PassRate        float64
	PracticeMs      int64
}

// Summarize computes averages over sessions.
func Summarize(sessions []model.SessionAggregate) Summary {
	var s Summary
	if len(sessions) == 0 {
		return s
	}
	var passed int
	for _, sess := range sessions {
		s.AvgWPM += sess.WPM
		s.AvgAccuracy += sess.Accuracy
		s.AvgTrueAccuracy += sess.TrueAccuracy
		s.PracticeMs += sess.DurationMs
		if sess.WPM > s.BestWPM {
			s.BestWPM = sess.WPM
		}
		if sess.Passed {
			passed++
		}
	}
	count := float64(len(sessions))
	s.Sessions = len(sessions)
	s.AvgWPM /= count
	s.AvgAccuracy /= count
	s.AvgTrueAccuracy /= count
	s.PassRate = float64(passed) / count
	return s
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

func shade(v, minVal, maxVal float64) int {
	pos := (v - minVal) / (maxVal - minVal)
	idx := int(math.Round(pos * float64(len(activityShades)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(activityShades) {
		idx = len(activityShades) - 1
	}
	return idx
}

// RenderSummary prints a summary table for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	s := Summarize(sessions)
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", s.Sessions),
		fmt.Sprintf("Avg WPM: %.2f", s.AvgWPM),
		fmt.Sprintf("Best WPM: %.2f", s.BestWPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", s.AvgAccuracy*100),
		fmt.Sprintf("Avg True Accuracy: %.2f%%", s.AvgTrueAccuracy*100),
		fmt.Sprintf("Passed: %.0f%%", s.PassRate*100),
		fmt.Sprintf("Practice Time: %s", (time.Duration(s.PracticeMs) * time.Millisecond).Round(time.Second)),
		"",
	}
	return writeLines(w, lines)
}

// RenderCharTable prints per-character aggregates.
func RenderCharTable(w io.Writer, aggs []model.CharAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No character stats found.")
		return err
	}
	rows := CharRows(aggs)
	lines := []string{"Per-Character (Windowed)"}
	lines = append(lines, formatTable(charHeaders, rows)...)
	lines = append(lines, "")
	return writeLines(w, lines)
}

var charHeaders = []string{"Char", "Accuracy", "Avg Latency (ms)", "Correct", "Incorrect"}

// CharRows formats aggregates sorted by lowest accuracy.
func CharRows(aggs []model.CharAggregate) [][]string {
	sorted := append([]model.CharAggregate(nil), aggs...)
	sortByAccuracy(sorted)
	rows := make([][]string, 0, len(sorted))
	for _, agg := range sorted {
		lat := 0.0
		if agg.LatencyCount > 0 {
			lat = float64(agg.LatencySumMs) / float64(agg.LatencyCount)
		}
		rows = append(rows, []string{
			charLabel(agg.Char),
			fmt.Sprintf("%.2f%%", accuracy(agg)*100),
			fmt.Sprintf("%.1f", lat),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%d", agg.Incorrect),
		})
	}
	return rows
}

// RenderActivity prints a one-line heatmap of daily practice, oldest first.
func RenderActivity(w io.Writer, days []tracker.DayActivity) error {
	if len(days) == 0 {
		return nil
	}
	var maxMs int64
	var totalMs int64
	var sessions int
	for _, d := range days {
		if d.PracticeMs > maxMs {
			maxMs = d.PracticeMs
		}
		totalMs += d.PracticeMs
		sessions += d.Sessions
	}
	var b strings.Builder
	for _, d := range days {
		switch {
		case d.Sessions == 0:
			b.WriteByte('_')
		case maxMs == 0:
			b.WriteByte(activityShades[1])
		default:
			idx := shade(float64(d.PracticeMs), 0, float64(maxMs))
			if idx == 0 {
				idx = 1
			}
			b.WriteByte(activityShades[idx])
		}
	}
	lines := []string{
		fmt.Sprintf("Activity (%s to %s)", days[0].Date, days[len(days)-1].Date),
		b.String(),
		fmt.Sprintf("%d sessions, %s practiced", sessions, (time.Duration(totalMs) * time.Millisecond).Round(time.Second)),
		"",
	}
	return writeLines(w, lines)
}

// RenderLessons prints attempts and passes per lesson.
func RenderLessons(w io.Writer, lessons []tracker.LessonProgress) error {
	if len(lessons) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(lessons))
	for _, l := range lessons {
		rows = append(rows, []string{
			l.LessonID,
			fmt.Sprintf("%d", l.Attempts),
			fmt.Sprintf("%d", len(l.CompletedTasks)),
			fmt.Sprintf("%.1f", l.BestWPM),
			fmt.Sprintf("%.1f%%", l.AverageAccuracy*100),
		})
	}
	lines := []string{"Lessons"}
	lines = append(lines, formatTable(lessonHeaders, rows)...)
	lines = append(lines, "")
	return writeLines(w, lines)
}

var lessonHeaders = []string{"Lesson", "Attempts", "Passed", "Best WPM", "Avg Accuracy"}

func charLabel(ch string) string {
	switch ch {
	case " ":
		return "<space>"
	case "\t":
		return "<tab>"
	case "\n":
		return "<enter>"
	}
	return ch
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
