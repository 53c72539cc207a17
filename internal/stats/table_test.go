package stats

import "testing"

func TestFormatTableAlignsMeasurements(t *testing.T) {
	headers := []string{"Char", "Accuracy", "Correct"}
	rows := [][]string{
		{"a", "97.50%", "12"},
		{"<space>", "8.00%", "3"},
	}

	lines := formatTable(headers, rows)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Char    Accuracy Correct" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "a         97.50%      12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "<space>    8.00%       3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableTextColumnsStayLeft(t *testing.T) {
	// a word accuracy can drop below zero, and typed-instead cells may be empty
	headers := []string{"Word", "Accuracy", "Typed Instead"}
	rows := [][]string{
		{"the", "-100%", "x"},
		{"a", "100%", ""},
	}

	lines := formatTable(headers, rows)
	if lines[1] != "the     -100% x            " {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "a        100%              " {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestNumericColumns(t *testing.T) {
	rows := [][]string{
		{"e", "12", "", "3.5%"},
		{"1", "x", "", "4"},
	}
	got := numericColumns(rows, 5)
	want := []bool{false, false, false, true, false}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("column %d: expected numeric=%v, got %v", i, want[i], got[i])
		}
	}
}

func TestTableLines(t *testing.T) {
	tb := Table{
		Title:   "Hands",
		Headers: []string{"Hand", "WPM"},
		Rows:    [][]string{{"left", "61"}, {"right", "7"}},
	}
	lines := tb.Lines()
	if len(lines) != 4 || lines[0] != "Hands" || lines[3] != "right   7" {
		t.Fatalf("unexpected lines %q", lines)
	}
	widths := tb.ColumnWidths()
	if len(widths) != 2 || widths[0] != 5 || widths[1] != 3 {
		t.Fatalf("unexpected widths %v", widths)
	}

	empty := Table{Title: "Fingers"}.Lines()
	if len(empty) != 2 || empty[1] != "  (none)" {
		t.Fatalf("unexpected empty table %q", empty)
	}
}
