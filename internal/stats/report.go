package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/verte-zerg/keydrill/internal/analytics"
	"github.com/verte-zerg/keydrill/internal/layout"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/store"
	"github.com/verte-zerg/keydrill/internal/tracker"
)

// ActivityDays is how many days the activity heatmap covers.
const ActivityDays = 28

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions         []model.SessionAggregate
	WindowSessionIDs []int64
	CharAggsAll      []model.CharAggregate
	CharAggsWindow   []model.CharAggregate
	Activity         []tracker.DayActivity
	Lessons          []tracker.LessonProgress
}

// BuildReport loads and prepares data for stats rendering. now anchors the
// activity heatmap.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig, now time.Time) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, fmt.Errorf("list sessions: %w", err)
	}
	activity := replayActivity(sessions, now)
	lessons := replayLessons(ctx, sessions)
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}

	allIDs := sessionIDs(sessions)
	windowIDs := lastSessionIDs(sessions, cfg.CurveWindow)
	charAggsAll, err := st.ListCharAggregatesForSessions(ctx, allIDs)
	if err != nil {
		return Report{}, err
	}
	charAggsWindow, err := st.ListCharAggregatesForSessions(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Sessions:         sessions,
		WindowSessionIDs: windowIDs,
		CharAggsAll:      charAggsAll,
		CharAggsWindow:   charAggsWindow,
		Activity:         activity,
		Lessons:          lessons,
	}, nil
}

func replayActivity(sessions []model.SessionAggregate, now time.Time) []tracker.DayActivity {
	rec := tracker.NewActivityRecorder(time.Local)
	for _, s := range sessions {
		rec.Add(s.EndedAt, s.DurationMs, s.Chars)
	}
	return rec.Recent(ActivityDays, now)
}

// replayLessons rebuilds per-lesson progress. Sessions outside any lesson
// are grouped under tracker.FreePractice.
func replayLessons(ctx context.Context, sessions []model.SessionAggregate) []tracker.LessonProgress {
	progress := tracker.NewProgressTracker()
	for _, s := range sessions {
		_ = progress.Record(ctx, tracker.Outcome{
			LessonID: s.LessonID,
			Result: model.TaskResult{
				TaskID:   s.TaskID,
				WPM:      s.WPM,
				Accuracy: s.Accuracy,
				Passed:   s.Passed,
			},
		})
	}
	ids := progress.Lessons()
	out := make([]tracker.LessonProgress, 0, len(ids))
	for _, id := range ids {
		lp, _ := progress.Lesson(id)
		out = append(out, lp)
	}
	return out
}

// Analysis is a stored session with its recomputed analytics.
type Analysis struct {
	ID        int64
	Session   model.SessionStats
	Analytics model.TypingAnalytics
}

// LoadAnalysis recomputes analytics for session id from its keystroke log.
// An id of zero selects the latest session. Fingers follow the layout the
// session was typed on.
func LoadAnalysis(ctx context.Context, st *store.Store, id int64) (Analysis, error) {
	var sess model.SessionStats
	var err error
	if id == 0 {
		id, sess, err = st.LatestSession(ctx)
	} else {
		sess, err = st.GetSession(ctx, id)
	}
	if err != nil {
		return Analysis{}, fmt.Errorf("load session %d: %w", id, err)
	}
	keystrokes, err := st.ListKeystrokes(ctx, id)
	if err != nil {
		return Analysis{}, fmt.Errorf("load keystrokes for session %d: %w", id, err)
	}
	return Analysis{
		ID:        id,
		Session:   sess,
		Analytics: analytics.Calculate(keystrokes, sess.TargetText, layout.FingerMapFor(layout.ID(sess.Layout))),
	}, nil
}

func sessionIDs(sessions []model.SessionAggregate) []int64 {
	ids := make([]int64, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}
	return ids
}

func lastSessionIDs(sessions []model.SessionAggregate, window int) []int64 {
	if window <= 0 || len(sessions) <= window {
		return sessionIDs(sessions)
	}
	return sessionIDs(sessions[len(sessions)-window:])
}
