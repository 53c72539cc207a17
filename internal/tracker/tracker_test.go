package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/keydrill/internal/model"
)

func outcome(taskID string, wpm, acc float64, passed bool, at time.Time) Outcome {
	return Outcome{
		SessionID: "s-" + taskID,
		LessonID:  "home-row",
		Task:      model.Task{ID: taskID, TargetText: "asdf jkl;", MinAccuracy: 0.9},
		Result: model.TaskResult{
			TaskID:          taskID,
			WPM:             wpm,
			RawWPM:          wpm,
			Accuracy:        acc,
			TrueAccuracy:    acc,
			TotalKeystrokes: 12,
			BackspaceCount:  2,
			Errors: []model.ErrorInfo{
				{Index: 1, Expected: 's', Typed: 'd'},
				{Index: 4, Expected: ' ', Typed: 'j'},
			},
			DurationMs:  30000,
			CompletedAt: at,
			Passed:      passed,
		},
	}
}

func TestMultiFansOutAndJoinsErrors(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	var calls []string
	rec := func(name string, err error) Recorder {
		return RecorderFunc(func(context.Context, Outcome) error {
			calls = append(calls, name)
			return err
		})
	}

	err := Multi(rec("a", errA), nil, rec("b", nil), rec("c", errB)).Record(context.Background(), Outcome{})

	assert.Equal(t, []string{"a", "b", "c"}, calls)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestMultiStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := Multi(RecorderFunc(func(context.Context, Outcome) error {
		called = true
		return nil
	})).Record(ctx, Outcome{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestProgressTracker(t *testing.T) {
	ctx := context.Background()
	p := NewProgressTracker()
	now := time.Now()

	require.NoError(t, p.Record(ctx, outcome("t1", 40, 0.8, false, now)))
	require.NoError(t, p.Record(ctx, outcome("t1", 55, 0.95, true, now)))
	require.NoError(t, p.Record(ctx, outcome("t2", 50, 0.95, true, now)))

	got, ok := p.Lesson("home-row")
	require.True(t, ok)
	assert.Equal(t, 3, got.Attempts)
	assert.Equal(t, []string{"t1", "t2"}, got.CompletedTasks)
	assert.Equal(t, 55.0, got.BestWPM)
	assert.InDelta(t, 0.9, got.AverageAccuracy, 1e-9)
	assert.True(t, p.Passed("home-row", "t2"))
	assert.False(t, p.Passed("home-row", "t3"))

	_, ok = p.Lesson("missing")
	assert.False(t, ok)
}

func TestProgressTrackerFreePractice(t *testing.T) {
	p := NewProgressTracker()
	o := outcome("t1", 40, 1, true, time.Now())
	o.LessonID = ""
	require.NoError(t, p.Record(context.Background(), o))

	assert.Equal(t, []string{FreePractice}, p.Lessons())
}

func TestStatsAggregator(t *testing.T) {
	ctx := context.Background()
	s := NewStatsAggregator()
	now := time.Now()

	require.NoError(t, s.Record(ctx, outcome("t1", 40, 0.8, false, now)))
	require.NoError(t, s.Record(ctx, outcome("t2", 60, 1.0, true, now)))

	got := s.Snapshot()
	assert.Equal(t, 2, got.Sessions)
	assert.InDelta(t, 50, got.AvgWPM, 1e-9)
	assert.InDelta(t, 0.9, got.AvgAccuracy, 1e-9)
	assert.InDelta(t, 0.9, got.AvgTrueAccuracy, 1e-9)
	assert.Equal(t, 24, got.TotalKeystrokes)
	assert.Equal(t, 4, got.TotalBackspaces)
	// 12 - 2 - 2 per session.
	assert.Equal(t, 16, got.CorrectKeystrokes)
	assert.Equal(t, int64(60000), got.PracticeTimeMs)
	// floor(0.5 * 40) + floor(0.5 * 60)
	assert.Equal(t, 50, got.WordsTyped)
	assert.Equal(t, map[rune]int{'s': 2, ' ': 2}, got.ProblemKeys)

	got.ProblemKeys['z'] = 9
	assert.NotContains(t, s.Snapshot().ProblemKeys, 'z')
}

func TestStatsAggregatorCorrectKeystrokesFloor(t *testing.T) {
	s := NewStatsAggregator()
	o := outcome("t1", 10, 0.5, false, time.Now())
	o.Result.TotalKeystrokes = 1
	require.NoError(t, s.Record(context.Background(), o))

	assert.Zero(t, s.Snapshot().CorrectKeystrokes)
}

func TestTopProblemKeys(t *testing.T) {
	s := NewStatsAggregator()
	o := outcome("t1", 10, 0.5, false, time.Now())
	o.Result.Errors = append(o.Result.Errors, model.ErrorInfo{Expected: 's'}, model.ErrorInfo{Expected: 'a'})
	require.NoError(t, s.Record(context.Background(), o))

	assert.Equal(t, []ProblemKey{{Char: 's', Misses: 2}, {Char: ' ', Misses: 1}}, s.TopProblemKeys(2))
	assert.Len(t, s.TopProblemKeys(10), 3)
}

func TestActivityRecorder(t *testing.T) {
	ctx := context.Background()
	loc := time.FixedZone("test", 2*60*60)
	a := NewActivityRecorder(loc)

	// 23:30 UTC is already the next day at UTC+2.
	late := time.Date(2024, 5, 1, 23, 30, 0, 0, time.UTC)
	require.NoError(t, a.Record(ctx, outcome("t1", 40, 1, true, late)))
	require.NoError(t, a.Record(ctx, outcome("t2", 40, 1, true, late.Add(time.Hour))))

	day := a.Day("2024-05-02")
	assert.Equal(t, 2, day.Sessions)
	assert.Equal(t, int64(60000), day.PracticeMs)
	assert.Equal(t, 18, day.Chars)
	assert.Zero(t, a.Day("2024-05-01").Sessions)

	recent := a.Recent(3, late.Add(24*time.Hour))
	require.Len(t, recent, 3)
	assert.Equal(t, "2024-05-01", recent[0].Date)
	assert.Equal(t, "2024-05-02", recent[1].Date)
	assert.Equal(t, 2, recent[1].Sessions)
	assert.Equal(t, "2024-05-03", recent[2].Date)
	assert.Zero(t, recent[2].Sessions)

	assert.Nil(t, a.Recent(0, late))
}
