package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/keydrill/internal/model"
)

// slotKind is how one target character is shown.
type slotKind int

const (
	slotPending slotKind = iota
	slotCurrentWord
	slotCorrect
	slotCorrected
	slotIncorrect
	slotFrozen
)

func (k slotKind) typed() bool {
	return k == slotCorrect || k == slotCorrected || k == slotIncorrect
}

func (k slotKind) style() lipgloss.Style {
	switch k {
	case slotCurrentWord:
		return currentWordStyle
	case slotCorrect:
		return correctStyle
	case slotCorrected:
		return correctedStyle
	case slotIncorrect:
		return incorrectStyle
	case slotFrozen:
		return frozenStyle
	default:
		return pendingStyle
	}
}

type styledRune struct {
	r       rune
	s       string
	width   int
	isSpace bool
	kind    slotKind
	cursor  bool
}

// buildStyledRunes styles every target slot from the session state. Live
// mismatches come from state.Errors. Slots that were mistyped and fixed since
// are found in the keystroke log. While paused the untyped text is frozen and
// no cursor is drawn.
func buildStyledRunes(target []rune, state model.SessionState, keystrokes []model.KeystrokeEvent) []styledRune {
	typed := utf8.RuneCountInString(state.Typed)
	live := make(map[int]bool, len(state.Errors))
	for _, e := range state.Errors {
		live[e.Index] = true
	}
	missed := make(map[int]bool)
	for _, k := range keystrokes {
		if !k.IsCorrect {
			missed[k.Index] = true
		}
	}
	cursor := -1
	if !state.IsComplete && !state.IsPaused {
		cursor = state.CurrentIndex
	}
	current := wordForCursor(findWords(target), state.CurrentIndex)

	out := make([]styledRune, 0, len(target))
	for i, r := range target {
		kind := slotPending
		switch {
		case i < typed && live[i]:
			kind = slotIncorrect
		case i < typed && missed[i]:
			kind = slotCorrected
		case i < typed:
			kind = slotCorrect
		case state.IsPaused:
			kind = slotFrozen
		case r != ' ' && current != nil && i >= current.start && i < current.end:
			kind = slotCurrentWord
		}
		shown := r
		if r == ' ' && kind == slotIncorrect {
			shown = '•'
		}
		style := kind.style()
		if i == cursor {
			style = style.Underline(true)
		}
		out = append(out, styledRune{
			r:       shown,
			s:       style.Render(string(shown)),
			width:   runewidth.RuneWidth(shown),
			isSpace: r == ' ',
			kind:    kind,
			cursor:  i == cursor,
		})
	}
	return out
}

type wordRange struct {
	start int
	end   int
}

func findWords(target []rune) []wordRange {
	var words []wordRange
	start := -1
	for i, r := range target {
		switch {
		case r == ' ' && start >= 0:
			words = append(words, wordRange{start: start, end: i})
			start = -1
		case r != ' ' && start < 0:
			start = i
		}
	}
	if start >= 0 {
		words = append(words, wordRange{start: start, end: len(target)})
	}
	return words
}

// wordForCursor returns the word under the cursor, or the next one when the
// cursor sits on a space.
func wordForCursor(words []wordRange, cursor int) *wordRange {
	if len(words) == 0 {
		return nil
	}
	for i := range words {
		if cursor < words[i].end {
			return &words[i]
		}
	}
	return &words[len(words)-1]
}

// wrapLines breaks runes into lines of at most width columns at spaces. A
// space may hang one column past width so the cursor stays visible on it.
// Words longer than width are split.
func wrapLines(runes []styledRune, width int) [][]styledRune {
	if width <= 0 {
		return [][]styledRune{runes}
	}
	var lines [][]styledRune
	var line []styledRune
	lineWidth, lastSpace := 0, -1
	for _, item := range runes {
		for !item.isSpace && lineWidth+item.width > width && len(line) > 0 {
			if lastSpace >= 0 {
				lines = append(lines, line[:lastSpace+1])
				line = append([]styledRune(nil), line[lastSpace+1:]...)
			} else {
				lines = append(lines, line)
				line = nil
			}
			lineWidth, lastSpace = measure(line)
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpace = len(line) - 1
		}
	}
	return append(lines, line)
}

func measure(line []styledRune) (int, int) {
	width, lastSpace := 0, -1
	for i, item := range line {
		width += item.width
		if item.isSpace {
			lastSpace = i
		}
	}
	return width, lastSpace
}

// scrollToCursor keeps at most maxLines lines around the first untyped slot,
// with the line above it still in view.
func scrollToCursor(lines [][]styledRune, maxLines int) [][]styledRune {
	if maxLines <= 0 || len(lines) <= maxLines {
		return lines
	}
	active := len(lines) - 1
	for i, line := range lines {
		if hasUntyped(line) {
			active = i
			break
		}
	}
	start := min(max(active-1, 0), len(lines)-maxLines)
	return lines[start : start+maxLines]
}

func hasUntyped(line []styledRune) bool {
	for _, item := range line {
		if !item.kind.typed() {
			return true
		}
	}
	return false
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func renderLines(lines [][]styledRune) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = renderStyledRunes(line)
	}
	return strings.Join(out, "\n")
}
