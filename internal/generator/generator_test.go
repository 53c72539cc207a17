package generator

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/keydrill/internal/model"
)

func TestNewTask(t *testing.T) {
	g := NewWithSeed(1)
	task, err := g.NewTask(Source{
		Words:       []string{"home", "row"},
		Config:      model.Config{Words: 6, PunctSet: ".,"},
		MinAccuracy: 0.9,
	})
	require.NoError(t, err)

	_, err = uuid.Parse(task.ID)
	assert.NoError(t, err)
	assert.Len(t, strings.Fields(task.TargetText), 6)
	assert.Equal(t, 0.9, task.MinAccuracy)
	assert.Equal(t, "Type 6 words", task.Instruction)
	for _, w := range strings.Fields(task.TargetText) {
		assert.Contains(t, []string{"home", "row"}, w)
	}
}

func TestNewTaskRejectsBadInput(t *testing.T) {
	g := NewWithSeed(1)
	_, err := g.NewTask(Source{Config: model.Config{Words: 3}, MinAccuracy: 0.9})
	assert.Error(t, err)

	_, err = g.NewTask(Source{Words: []string{"a"}, Config: model.Config{Words: 3}, MinAccuracy: 0})
	assert.ErrorIs(t, err, model.ErrMinAccuracy)
}

func TestNewTaskFocusWeak(t *testing.T) {
	g := NewWithSeed(7)
	task, err := g.NewTask(Source{
		Words:       []string{"zzzz", "abc"},
		Config:      model.Config{Words: 50, FocusWeak: true, WeakFactor: 100},
		WeakSet:     map[rune]struct{}{'z': {}},
		MinAccuracy: 1,
	})
	require.NoError(t, err)
	assert.Greater(t, strings.Count(task.TargetText, "zzzz"), 40)
}

func TestTextTask(t *testing.T) {
	task, err := TextTask("  the  quick\nfox ", 0.8)
	require.NoError(t, err)
	assert.Equal(t, "the quick fox", task.TargetText)

	_, err = TextTask("   ", 0.8)
	assert.ErrorIs(t, err, model.ErrEmptyTarget)
}

func TestApplyCapsAndPunct(t *testing.T) {
	g := NewWithSeed(3)
	words := g.Generate([]string{"go"}, 5, 1, 1, []rune{'!'})
	for _, w := range words {
		assert.Equal(t, "Go!", w)
	}
}
