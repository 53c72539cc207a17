package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/verte-zerg/keydrill/internal/model"
)

// Curve is a named learning-curve series, oldest session first.
type Curve struct {
	Name   string
	Values []float64
}

// PlotOptions controls the size and coloring of a plot. A non-positive Width
// fits the plot to the terminal; a non-positive Height uses the default.
type PlotOptions struct {
	Width  int
	Height int
	Color  bool
}

// Axis is the value range shared by every curve in one plot.
type Axis struct {
	Min    float64
	Max    float64
	Format string
}

type lineStyle struct {
	name   string
	period int
	on     int
}

const (
	defaultPlotHeight   = 8
	minPlotWidth        = 10
	axisLabelWidth      = 6
	axisSeparator       = " │ "
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var lineStyles = []lineStyle{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
}

var curveColors = []string{
	"\x1b[36m", // cyan
	"\x1b[33m", // yellow
	"\x1b[35m", // magenta
	"\x1b[32m", // green
}

// braille dot bits indexed by [column][row] within a 2x4 cell.
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// RenderCurves plots smoothed speed and accuracy learning curves for
// sessions. Accuracy and true accuracy share one percent axis so the gap
// between them reads as the share of corrected mistakes.
func RenderCurves(w io.Writer, sessions []model.SessionAggregate, window int, opts PlotOptions) error {
	if len(sessions) == 0 {
		return nil
	}
	wpms := make([]float64, len(sessions))
	accs := make([]float64, len(sessions))
	trueAccs := make([]float64, len(sessions))
	for i, s := range sessions {
		wpms[i] = s.WPM
		accs[i] = s.Accuracy * 100
		trueAccs[i] = s.TrueAccuracy * 100
	}
	speed := []Curve{{Name: "WPM", Values: MovingAverage(wpms, window)}}
	if err := PlotCurves(w, fmt.Sprintf("Speed (WPM, window=%d)", window), speed, speedAxis(speed), opts); err != nil {
		return err
	}
	accuracy := []Curve{
		{Name: "Accuracy", Values: MovingAverage(accs, window)},
		{Name: "True Acc", Values: MovingAverage(trueAccs, window)},
	}
	return PlotCurves(w, fmt.Sprintf("Accuracy (%%, window=%d)", window), accuracy, percentAxis(accuracy), opts)
}

func speedAxis(curves []Curve) Axis {
	minVal, maxVal := curvesRange(curves)
	return Axis{Min: math.Max(0, math.Floor(minVal)), Max: math.Ceil(maxVal), Format: "%.0f"}
}

// percentAxis spans the observed range widened to whole percents, capped at 100.
func percentAxis(curves []Curve) Axis {
	minVal, maxVal := curvesRange(curves)
	return Axis{Min: math.Max(0, math.Floor(minVal)), Max: math.Min(100, math.Ceil(maxVal)), Format: "%.0f%%"}
}

// PlotCurves draws curves as braille lines against a shared value axis,
// followed by a legend with the first and last value of each curve.
func PlotCurves(w io.Writer, title string, curves []Curve, axis Axis, opts PlotOptions) error {
	curves = nonEmptyCurves(curves)
	if len(curves) == 0 {
		return nil
	}
	width := opts.Width
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	width = max(width, minPlotWidth)
	height := opts.Height
	if height <= 0 {
		height = defaultPlotHeight
	}
	if axis.Max-axis.Min < 1e-9 {
		axis.Min--
		axis.Max++
	}
	if axis.Format == "" {
		axis.Format = "%.1f"
	}

	canvases := make([]*canvas, len(curves))
	for i, c := range curves {
		canvases[i] = newCanvas(width, height)
		canvases[i].trace(fitSeries(c.Values, width), axis, lineStyles[i%len(lineStyles)])
	}

	color := opts.Color && os.Getenv("NO_COLOR") == ""
	lines := make([]string, 0, height+3)
	if title != "" {
		lines = append(lines, title)
	}
	labels := axisLabels(axis, height)
	for y := 0; y < height; y++ {
		var row strings.Builder
		fmt.Fprintf(&row, "%*s%s", axisLabelWidth, labels[y], axisSeparator)
		for x := 0; x < width; x++ {
			mask, owner := overlay(canvases, x, y)
			ch := rune(0x2800 + int(mask))
			if color && owner >= 0 {
				row.WriteString(curveColors[owner%len(curveColors)])
				row.WriteRune(ch)
				row.WriteString(colorReset)
				continue
			}
			row.WriteRune(ch)
		}
		lines = append(lines, row.String())
	}
	lines = append(lines, legend(curves, axis, color), "")
	return writeLines(w, lines)
}

// PlotWidthFor returns the plot area that fits next to the axis labels
// within totalWidth columns.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	return max(totalWidth-axisLabelWidth-utf8.RuneCountInString(axisSeparator), minPlotWidth)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// StdoutIsTerminal reports whether plots written to stdout may be colored.
func StdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func nonEmptyCurves(curves []Curve) []Curve {
	out := make([]Curve, 0, len(curves))
	for _, c := range curves {
		if len(c.Values) > 0 {
			out = append(out, c)
		}
	}
	return out
}

func curvesRange(curves []Curve) (float64, float64) {
	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for _, c := range curves {
		for _, v := range c.Values {
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
		}
	}
	if math.IsInf(minVal, 1) {
		return 0, 0
	}
	return minVal, maxVal
}

func axisLabels(axis Axis, height int) []string {
	labels := make([]string, height)
	labels[0] = fmt.Sprintf(axis.Format, axis.Max)
	if height > 2 {
		labels[height/2] = fmt.Sprintf(axis.Format, (axis.Min+axis.Max)/2)
	}
	if height > 1 {
		labels[height-1] = fmt.Sprintf(axis.Format, axis.Min)
	}
	return labels
}

func legend(curves []Curve, axis Axis, color bool) string {
	parts := make([]string, 0, len(curves))
	for i, c := range curves {
		first, last := c.Values[0], c.Values[len(c.Values)-1]
		label := fmt.Sprintf("%s (%s) "+axis.Format+" -> "+axis.Format,
			c.Name, lineStyles[i%len(lineStyles)].name, first, last)
		if color {
			label = curveColors[i%len(curveColors)] + label + colorReset
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

// fitSeries averages values into width buckets when there are more sessions
// than columns and interpolates between sessions when there are fewer.
func fitSeries(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	out := make([]float64, width)
	switch {
	case len(values) == width:
		copy(out, values)
	case len(values) > width:
		for i := range out {
			start := i * len(values) / width
			end := min(max((i+1)*len(values)/width, start+1), len(values))
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case len(values) == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		step := float64(len(values)-1) / float64(width-1)
		for i := range out {
			pos := float64(i) * step
			idx := int(pos)
			if idx >= len(values)-1 {
				out[i] = values[len(values)-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

// canvas is a grid of braille cells, each holding 2x4 dots.
type canvas struct {
	cells [][]uint8
}

func newCanvas(width, height int) *canvas {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	return &canvas{cells: cells}
}

func (c *canvas) dotRows() int {
	return len(c.cells) * 4
}

// trace connects consecutive points with straight segments. Each point
// occupies one cell column, so the right dot column is left for the segment.
func (c *canvas) trace(points []float64, axis Axis, style lineStyle) {
	rows := c.dotRows()
	prevX, prevY := -1, -1
	for x, v := range points {
		px, py := x*2, valueRow(v, axis, rows)
		if prevX < 0 {
			if style.plots(px) {
				c.set(px, py)
			}
		} else {
			c.line(prevX, prevY, px, py, style)
		}
		prevX, prevY = px, py
	}
}

// line draws with Bresenham's algorithm, skipping the gaps of the style.
func (c *canvas) line(x0, y0, x1, y1 int, style lineStyle) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if style.plots(x0) {
			c.set(x0, y0)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *canvas) set(x, y int) {
	cy, cx := y/4, x/2
	if x < 0 || y < 0 || cy >= len(c.cells) || cx >= len(c.cells[cy]) {
		return
	}
	c.cells[cy][cx] |= brailleBits[x%2][y%4]
}

// overlay merges the dots of every canvas at a cell and reports the first
// curve that drew there, which owns the cell color.
func overlay(canvases []*canvas, x, y int) (uint8, int) {
	var mask uint8
	owner := -1
	for i, c := range canvases {
		bits := c.cells[y][x]
		if bits == 0 {
			continue
		}
		if owner < 0 {
			owner = i
		}
		mask |= bits
	}
	return mask, owner
}

// valueRow maps v onto a dot row, 0 being the top of the plot. Values outside
// the axis are clamped to its edges.
func valueRow(v float64, axis Axis, rows int) int {
	if rows <= 1 {
		return 0
	}
	pos := (v - axis.Min) / (axis.Max - axis.Min)
	row := int(math.Round((1 - pos) * float64(rows-1)))
	return min(max(row, 0), rows-1)
}

func (ls lineStyle) plots(x int) bool {
	if ls.period <= 1 {
		return true
	}
	return abs(x)%ls.period < ls.on
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
