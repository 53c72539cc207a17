package stats

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table is a titled block of rows ready for rendering. Columns whose cells
// are all numbers, optionally with a percent sign, are right-aligned.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Lines renders the title followed by aligned rows, or a placeholder when
// the table is empty.
func (t Table) Lines() []string {
	if len(t.Rows) == 0 {
		return []string{t.Title, "  (none)"}
	}
	return append([]string{t.Title}, formatTable(t.Headers, t.Rows)...)
}

// ColumnWidths reports the display width of every column, headers included.
func (t Table) ColumnWidths() []int {
	return columnWidths(t.Headers, t.Rows)
}

func formatTable(headers []string, rows [][]string) []string {
	widths := columnWidths(headers, rows)
	if len(widths) == 0 {
		return nil
	}
	numeric := numericColumns(rows, len(widths))
	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, numeric))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, numeric))
	}
	return lines
}

func columnWidths(headers []string, rows [][]string) []int {
	count := len(headers)
	for _, row := range rows {
		count = max(count, len(row))
	}
	widths := make([]int, count)
	for i, header := range headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], displayWidth(cell))
		}
	}
	return widths
}

// numericColumns marks columns holding only measurements. Empty cells do not
// count either way, but a column of only empty cells stays left-aligned.
func numericColumns(rows [][]string, count int) []bool {
	numeric := make([]bool, count)
	for col := range numeric {
		seen := false
		numeric[col] = true
		for _, row := range rows {
			if col >= len(row) || row[col] == "" {
				continue
			}
			seen = true
			if !isMeasurement(row[col]) {
				numeric[col] = false
				break
			}
		}
		numeric[col] = numeric[col] && seen
	}
	return numeric
}

func isMeasurement(cell string) bool {
	_, err := strconv.ParseFloat(strings.TrimSuffix(cell, "%"), 64)
	return err == nil
}

func formatRow(row []string, widths []int, numeric []bool) string {
	cells := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		cells[i] = padCell(cell, width, numeric[i])
	}
	return strings.Join(cells, " ")
}

func padCell(value string, width int, right bool) string {
	padding := strings.Repeat(" ", max(width-displayWidth(value), 0))
	if right {
		return padding + value
	}
	return value + padding
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
