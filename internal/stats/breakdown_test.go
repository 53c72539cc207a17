package stats

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/keydrill/internal/analytics"
	"github.com/verte-zerg/keydrill/internal/model"
)

func TestBreakdownTables(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := analytics.Calculate(typed("go go now", start, 4), "go go now", nil)

	tables := Breakdown(a, 2)
	require.Len(t, tables, 7)
	titles := make([]string, len(tables))
	for i, tb := range tables {
		titles[i] = tb.Title
	}
	assert.Equal(t, []string{
		"Slowest Words", "Slowest Bigrams", "Slowest Trigrams",
		"Fingers", "Hands", "Slowest Characters", "Character Types",
	}, titles)

	assert.Len(t, tables[0].Rows, 2)
	assert.Len(t, tables[1].Rows, 2)
	assert.Len(t, tables[4].Rows, 2)
	for _, row := range tables[1].Rows {
		assert.NotContains(t, row[0], " ")
	}
}

func TestRenderBreakdownEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderBreakdown(&buf, analytics.Calculate(nil, "", nil), 5))
	assert.Equal(t, "No keystrokes recorded.\n", buf.String())
}

func TestRenderTableNone(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, Table{Title: "Slowest Trigrams"}))
	assert.Equal(t, "Slowest Trigrams\n  (none)\n\n", buf.String())
}

func TestSlowestFirst(t *testing.T) {
	words := []model.WordAnalysis{{Word: "fast"}, {Word: "mid"}, {Word: "slow"}}
	got := slowestFirst(words, 2)
	assert.Equal(t, "slow", got[0].Word)
	assert.Equal(t, "mid", got[1].Word)
}
