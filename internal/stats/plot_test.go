package stats

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/verte-zerg/keydrill/internal/model"
)

const blankCell = '\u2800'

func plotRows(t *testing.T, out string) []string {
	t.Helper()
	return strings.Split(strings.TrimRight(out, "\n"), "\n")
}

func TestRenderCurves(t *testing.T) {
	sessions := []model.SessionAggregate{
		{WPM: 30, Accuracy: 0.9, TrueAccuracy: 0.8},
		{WPM: 50, Accuracy: 1.0, TrueAccuracy: 0.9},
	}
	var buf bytes.Buffer
	if err := RenderCurves(&buf, sessions, 1, PlotOptions{Width: 20, Height: 4}); err != nil {
		t.Fatalf("RenderCurves failed: %v", err)
	}
	lines := plotRows(t, buf.String())
	// title, 4 rows, legend, blank line, title, 4 rows, legend
	if len(lines) != 13 {
		t.Fatalf("expected 13 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Speed (WPM, window=1)" {
		t.Fatalf("unexpected speed title %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "    50 │ ") || !strings.HasPrefix(lines[4], "    30 │ ") {
		t.Fatalf("expected WPM axis 30..50, got %q and %q", lines[1], lines[4])
	}
	if lines[5] != "WPM (solid) 30 -> 50" {
		t.Fatalf("unexpected speed legend %q", lines[5])
	}
	if lines[7] != "Accuracy (%, window=1)" {
		t.Fatalf("unexpected accuracy title %q", lines[7])
	}
	if !strings.HasPrefix(lines[8], "  100% │ ") || !strings.HasPrefix(lines[11], "   80% │ ") {
		t.Fatalf("expected shared percent axis 80..100, got %q and %q", lines[8], lines[11])
	}
	if lines[12] != "Accuracy (solid) 90% -> 100%  True Acc (dashed) 80% -> 90%" {
		t.Fatalf("unexpected accuracy legend %q", lines[12])
	}
	for _, row := range append(lines[1:5], lines[8:12]...) {
		if n := utf8.RuneCountInString(row); n != axisLabelWidth+3+20 {
			t.Fatalf("expected rows of %d runes, got %d: %q", axisLabelWidth+23, n, row)
		}
	}
}

func TestRenderCurvesEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderCurves(&buf, nil, 5, PlotOptions{}); err != nil {
		t.Fatalf("RenderCurves failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestPlotCurvesDrawsRisingLine(t *testing.T) {
	var buf bytes.Buffer
	curves := []Curve{{Name: "WPM", Values: []float64{0, 100}}}
	if err := PlotCurves(&buf, "", curves, Axis{Min: 0, Max: 100, Format: "%.0f"}, PlotOptions{Width: 10, Height: 2}); err != nil {
		t.Fatalf("PlotCurves failed: %v", err)
	}
	lines := plotRows(t, buf.String())
	if len(lines) != 3 {
		t.Fatalf("expected 2 rows and a legend, got %d", len(lines))
	}
	top := []rune(lines[0])[axisLabelWidth+3:]
	bottom := []rune(lines[1])[axisLabelWidth+3:]
	if top[0] != blankCell || top[9] == blankCell {
		t.Fatalf("expected the line to end at the top right, got %q", string(top))
	}
	if bottom[0] == blankCell || bottom[9] != blankCell {
		t.Fatalf("expected the line to start at the bottom left, got %q", string(bottom))
	}
}

func TestPlotCurvesFlatSeries(t *testing.T) {
	var buf bytes.Buffer
	curves := []Curve{{Name: "WPM", Values: []float64{40, 40, 40}}}
	if err := PlotCurves(&buf, "Flat", curves, speedAxis(curves), PlotOptions{Width: 12, Height: 3}); err != nil {
		t.Fatalf("PlotCurves failed: %v", err)
	}
	lines := plotRows(t, buf.String())
	if !strings.HasPrefix(lines[1], "    41 │ ") || !strings.HasPrefix(lines[3], "    39 │ ") {
		t.Fatalf("expected a flat axis widened to 39..41, got %q and %q", lines[1], lines[3])
	}
	middle := []rune(lines[2])[axisLabelWidth+3:]
	if middle[0] == blankCell || middle[11] == blankCell {
		t.Fatalf("expected the flat line across the middle row, got %q", string(middle))
	}
}

func TestPlotCurvesColor(t *testing.T) {
	curves := []Curve{{Name: "WPM", Values: []float64{1, 2}}}
	axis := Axis{Min: 0, Max: 3}

	var buf bytes.Buffer
	if err := PlotCurves(&buf, "", curves, axis, PlotOptions{Width: 10, Height: 2, Color: true}); err != nil {
		t.Fatalf("PlotCurves failed: %v", err)
	}
	if !strings.Contains(buf.String(), curveColors[0]) {
		t.Fatalf("expected colored output")
	}

	t.Setenv("NO_COLOR", "1")
	buf.Reset()
	if err := PlotCurves(&buf, "", curves, axis, PlotOptions{Width: 10, Height: 2, Color: true}); err != nil {
		t.Fatalf("PlotCurves failed: %v", err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected NO_COLOR to disable color")
	}
}

func TestFitSeries(t *testing.T) {
	cases := []struct {
		values []float64
		width  int
		want   []float64
	}{
		{[]float64{1, 2, 3, 4}, 2, []float64{1.5, 3.5}},
		{[]float64{0, 10}, 3, []float64{0, 5, 10}},
		{[]float64{7}, 3, []float64{7, 7, 7}},
		{[]float64{1, 2}, 2, []float64{1, 2}},
		{nil, 4, nil},
	}
	for _, tc := range cases {
		got := fitSeries(tc.values, tc.width)
		if len(got) != len(tc.want) {
			t.Fatalf("fitSeries(%v, %d) = %v, want %v", tc.values, tc.width, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("fitSeries(%v, %d) = %v, want %v", tc.values, tc.width, got, tc.want)
			}
		}
	}
}

func TestValueRowClamps(t *testing.T) {
	axis := Axis{Min: 80, Max: 100}
	if got := valueRow(120, axis, 8); got != 0 {
		t.Fatalf("expected values above the axis on the top row, got %d", got)
	}
	if got := valueRow(10, axis, 8); got != 7 {
		t.Fatalf("expected values below the axis on the bottom row, got %d", got)
	}
}
