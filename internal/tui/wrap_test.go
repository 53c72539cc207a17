package tui

import (
	"testing"

	"github.com/verte-zerg/keydrill/internal/model"
)

func kinds(runes []styledRune) []slotKind {
	out := make([]slotKind, len(runes))
	for i, r := range runes {
		out[i] = r.kind
	}
	return out
}

func lineText(line []styledRune) string {
	out := make([]rune, len(line))
	for i, r := range line {
		out[i] = r.r
	}
	return string(out)
}

func TestBuildStyledRunesCursor(t *testing.T) {
	state := model.SessionState{CurrentIndex: 1, Typed: "a"}
	keys := []model.KeystrokeEvent{{Char: 'a', Index: 0, IsCorrect: true}}

	runes := buildStyledRunes([]rune("ab"), state, keys)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].kind != slotCorrect || runes[0].cursor {
		t.Fatalf("expected a correct first rune without cursor, got %+v", runes[0])
	}
	if runes[1].kind != slotCurrentWord || !runes[1].cursor {
		t.Fatalf("expected the cursor on the current word, got %+v", runes[1])
	}
	if runes[1].s != currentWordStyle.Underline(true).Render("b") {
		t.Fatalf("expected underlined current word style for cursor rune")
	}
}

func TestBuildStyledRunesNoCursorWhenComplete(t *testing.T) {
	state := model.SessionState{CurrentIndex: 1, Typed: "a", IsComplete: true}

	runes := buildStyledRunes([]rune("a"), state, nil)
	if len(runes) != 1 {
		t.Fatalf("expected 1 rune, got %d", len(runes))
	}
	if runes[0].cursor || runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style without cursor for completed rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	state := model.SessionState{
		CurrentIndex: 2,
		Typed:        "ax",
		Errors:       []model.ErrorInfo{{Index: 1, Expected: 'b', Typed: 'x'}},
	}
	keys := []model.KeystrokeEvent{
		{Char: 'a', Index: 0, IsCorrect: true},
		{Char: 'x', Index: 1},
	}

	runes := buildStyledRunes([]rune("ab"), state, keys)
	if got := kinds(runes); got[0] != slotCorrect || got[1] != slotIncorrect {
		t.Fatalf("unexpected slot kinds %v", got)
	}
	if runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected the expected character in incorrect style")
	}
}

func TestBuildStyledRunesMarksCorrectedSlots(t *testing.T) {
	state := model.SessionState{CurrentIndex: 2, Typed: "ab"}
	keys := []model.KeystrokeEvent{
		{Char: 'a', Index: 0, IsCorrect: true},
		{Char: 'x', Index: 1},
		{Char: 'b', Index: 1, IsCorrect: true},
	}

	runes := buildStyledRunes([]rune("abc"), state, keys)
	got := kinds(runes)
	if got[0] != slotCorrect || got[1] != slotCorrected || got[2] != slotCurrentWord {
		t.Fatalf("unexpected slot kinds %v", got)
	}
}

func TestBuildStyledRunesBackspacedErrorIsPending(t *testing.T) {
	state := model.SessionState{CurrentIndex: 1, Typed: "a"}
	keys := []model.KeystrokeEvent{
		{Char: 'a', Index: 0, IsCorrect: true},
		{Char: 'x', Index: 1},
	}

	runes := buildStyledRunes([]rune("ab"), state, keys)
	if runes[1].kind != slotCurrentWord || !runes[1].cursor {
		t.Fatalf("expected a backspaced slot to be pending again, got %+v", runes[1])
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	state := model.SessionState{CurrentIndex: 1, Typed: "o"}

	runes := buildStyledRunes([]rune("one two"), state, nil)
	want := []slotKind{
		slotCorrect, slotCurrentWord, slotCurrentWord,
		slotPending,
		slotPending, slotPending, slotPending,
	}
	got := kinds(runes)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slot %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	state := model.SessionState{
		CurrentIndex: 2,
		Typed:        "ax",
		Errors:       []model.ErrorInfo{{Index: 1, Expected: ' ', Typed: 'x'}},
	}

	runes := buildStyledRunes([]rune("a b"), state, nil)
	if len(runes) != 3 {
		t.Fatalf("expected 3 runes, got %d", len(runes))
	}
	if runes[1].r != '•' || runes[1].s != incorrectStyle.Render("•") {
		t.Fatalf("expected red dot for wrong space")
	}
}

func TestBuildStyledRunesPausedFreezesText(t *testing.T) {
	state := model.SessionState{CurrentIndex: 1, Typed: "o", IsPaused: true}

	runes := buildStyledRunes([]rune("one"), state, nil)
	if runes[0].kind != slotCorrect {
		t.Fatalf("expected typed text to keep its style, got %v", runes[0].kind)
	}
	for _, r := range runes[1:] {
		if r.kind != slotFrozen || r.cursor {
			t.Fatalf("expected frozen text without cursor, got %+v", r)
		}
	}
}

func TestWrapLines(t *testing.T) {
	runes := buildStyledRunes([]rune("aaa bbb ccc"), model.SessionState{}, nil)

	lines := wrapLines(runes, 7)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lineText(lines[0]) != "aaa bbb " || lineText(lines[1]) != "ccc" {
		t.Fatalf("unexpected lines %q %q", lineText(lines[0]), lineText(lines[1]))
	}

	long := buildStyledRunes([]rune("abcdefgh"), model.SessionState{}, nil)
	lines = wrapLines(long, 3)
	want := []string{"abc", "def", "gh"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i := range want {
		if lineText(lines[i]) != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lineText(lines[i]))
		}
	}
}

func TestScrollToCursor(t *testing.T) {
	target := []rune("aa bb cc dd ee")
	state := model.SessionState{CurrentIndex: 7, Typed: "aa bb c"}
	lines := wrapLines(buildStyledRunes(target, state, nil), 2)
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}

	visible := scrollToCursor(lines, 2)
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible lines, got %d", len(visible))
	}
	if lineText(visible[0]) != "bb " || lineText(visible[1]) != "cc " {
		t.Fatalf("expected the cursor line and the one above, got %q %q",
			lineText(visible[0]), lineText(visible[1]))
	}

	if got := scrollToCursor(lines, 10); len(got) != 5 {
		t.Fatalf("expected all lines when they fit, got %d", len(got))
	}
}
