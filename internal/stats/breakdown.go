package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/keydrill/internal/model"
)

// Breakdown turns an analytics report into tables. top limits the word,
// n-gram and character tables; zero or less keeps every row.
func Breakdown(a model.TypingAnalytics, top int) []Table {
	return []Table{
		wordTable(a.Words, top),
		bigramTable(a.Bigrams, top),
		trigramTable(a.Trigrams, top),
		fingerTable(a.Fingers),
		handTable(a.Hands),
		characterTable(a.Characters, top),
		characterTypeTable(a.CharacterTypes),
	}
}

// RenderBreakdown prints every table of an analytics report.
func RenderBreakdown(w io.Writer, a model.TypingAnalytics, top int) error {
	if len(a.Keystrokes) == 0 {
		_, err := fmt.Fprintln(w, "No keystrokes recorded.")
		return err
	}
	header := []string{
		fmt.Sprintf("Keystrokes: %d  Time: %.0f ms", a.TotalChars, a.TotalTime),
		"",
	}
	if err := writeLines(w, header); err != nil {
		return err
	}
	for _, t := range Breakdown(a, top) {
		if err := RenderTable(w, t); err != nil {
			return err
		}
	}
	return nil
}

// RenderTable prints a single table followed by a blank line.
func RenderTable(w io.Writer, t Table) error {
	return writeLines(w, append(t.Lines(), ""))
}

func limit[T any](items []T, top int) []T {
	if top > 0 && len(items) > top {
		return items[:top]
	}
	return items
}

// slowestFirst returns the last top items in reverse order.
func slowestFirst[T any](items []T, top int) []T {
	out := make([]T, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		out = append(out, items[i])
	}
	return limit(out, top)
}

func wordTable(words []model.WordAnalysis, top int) Table {
	t := Table{
		Title:   "Slowest Words",
		Headers: []string{"Word", "Count", "Avg Time (ms)", "WPM", "Errors", "Accuracy"},
	}
	for _, w := range slowestFirst(words, top) {
		t.Rows = append(t.Rows, []string{
			w.Word,
			fmt.Sprintf("%d", w.Count),
			fmt.Sprintf("%.0f", w.AvgTime),
			fmt.Sprintf("%.0f", w.WPM),
			fmt.Sprintf("%d", w.Errors),
			fmt.Sprintf("%.0f%%", w.Accuracy*100),
		})
	}
	return t
}

func bigramTable(bigrams []model.BigramAnalysis, top int) Table {
	t := Table{
		Title:   "Slowest Bigrams",
		Headers: []string{"Bigram", "Count", "Avg Time (ms)", "Errors"},
	}
	for _, b := range limit(bigrams, top) {
		t.Rows = append(t.Rows, []string{
			visible(b.Bigram),
			fmt.Sprintf("%d", b.Count),
			fmt.Sprintf("%.0f", b.AvgTime),
			fmt.Sprintf("%d", b.Errors),
		})
	}
	return t
}

func trigramTable(trigrams []model.TrigramAnalysis, top int) Table {
	t := Table{
		Title:   "Slowest Trigrams",
		Headers: []string{"Trigram", "Count", "Avg Time (ms)", "Errors"},
	}
	for _, tg := range limit(trigrams, top) {
		t.Rows = append(t.Rows, []string{
			visible(tg.Trigram),
			fmt.Sprintf("%d", tg.Count),
			fmt.Sprintf("%.0f", tg.AvgTime),
			fmt.Sprintf("%d", tg.Errors),
		})
	}
	return t
}

func fingerTable(fingers []model.FingerAnalysis) Table {
	t := Table{
		Title:   "Fingers",
		Headers: []string{"Finger", "Hand", "Count", "Avg Delay (ms)", "WPM", "Errors", "Accuracy"},
	}
	for _, f := range fingers {
		t.Rows = append(t.Rows, []string{
			f.Finger,
			string(f.Hand),
			fmt.Sprintf("%d", f.Count),
			fmt.Sprintf("%.0f", f.AvgDelay),
			fmt.Sprintf("%.0f", f.WPM),
			fmt.Sprintf("%d", f.Errors),
			fmt.Sprintf("%.0f%%", f.Accuracy*100),
		})
	}
	return t
}

func handTable(h model.HandAnalysis) Table {
	row := func(name string, s model.HandStats) []string {
		return []string{name, fmt.Sprintf("%d", s.Count), fmt.Sprintf("%.0f", s.WPM), fmt.Sprintf("%.0f%%", s.Accuracy)}
	}
	return Table{
		Title:   "Hands",
		Headers: []string{"Hand", "Count", "WPM", "Accuracy"},
		Rows:    [][]string{row("left", h.Left), row("right", h.Right)},
	}
}

func characterTable(chars []model.CharacterAnalysis, top int) Table {
	t := Table{
		Title:   "Slowest Characters",
		Headers: []string{"Char", "Count", "Avg Delay (ms)", "WPM", "Errors", "Typed Instead"},
	}
	for _, c := range limit(chars, top) {
		t.Rows = append(t.Rows, []string{
			charLabel(string(c.Char)),
			fmt.Sprintf("%d", c.Count),
			fmt.Sprintf("%.0f", c.AvgDelay),
			fmt.Sprintf("%.0f", c.WPM),
			fmt.Sprintf("%d", c.Errors),
			runeList(c.Mistypes),
		})
	}
	return t
}

func characterTypeTable(types []model.CharacterTypeAnalysis) Table {
	t := Table{
		Title:   "Character Types",
		Headers: []string{"Type", "Count", "Avg Delay (ms)", "WPM", "Chars"},
	}
	for _, ct := range types {
		t.Rows = append(t.Rows, []string{
			ct.Label,
			fmt.Sprintf("%d", ct.Count),
			fmt.Sprintf("%.0f", ct.AvgDelay),
			fmt.Sprintf("%.0f", ct.WPM),
			runeList(ct.Chars),
		})
	}
	return t
}

func visible(s string) string {
	return strings.ReplaceAll(s, " ", "␣")
}

func runeList(runes []rune) string {
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = charLabel(string(r))
	}
	return strings.Join(parts, " ")
}
