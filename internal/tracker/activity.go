package tracker

import (
	"context"
	"sync"
	"time"
)

const dateLayout = "2006-01-02"

// DayActivity is the practice done on one calendar day.
type DayActivity struct {
	Date       string
	PracticeMs int64
	Chars      int
	Sessions   int
}

// ActivityRecorder buckets practice by local calendar date.
type ActivityRecorder struct {
	mu   sync.Mutex
	loc  *time.Location
	days map[string]*DayActivity
}

// NewActivityRecorder buckets dates in loc; nil means time.Local.
func NewActivityRecorder(loc *time.Location) *ActivityRecorder {
	if loc == nil {
		loc = time.Local
	}
	return &ActivityRecorder{loc: loc, days: map[string]*DayActivity{}}
}

func (a *ActivityRecorder) Record(_ context.Context, o Outcome) error {
	at := o.Result.CompletedAt
	if at.IsZero() {
		at = time.Now()
	}
	a.Add(at, o.Result.DurationMs, len([]rune(o.Task.TargetText)))
	return nil
}

// Add counts one session finished at at.
func (a *ActivityRecorder) Add(at time.Time, durationMs int64, chars int) {
	date := at.In(a.loc).Format(dateLayout)

	a.mu.Lock()
	defer a.mu.Unlock()
	day, ok := a.days[date]
	if !ok {
		day = &DayActivity{Date: date}
		a.days[date] = day
	}
	day.PracticeMs += durationMs
	day.Chars += chars
	day.Sessions++
}

// Day returns the activity for date (YYYY-MM-DD).
func (a *ActivityRecorder) Day(date string) DayActivity {
	a.mu.Lock()
	defer a.mu.Unlock()
	if day, ok := a.days[date]; ok {
		return *day
	}
	return DayActivity{Date: date}
}

// Recent returns one entry per day for the last days days ending at now,
// oldest first. Days without practice are zero.
func (a *ActivityRecorder) Recent(days int, now time.Time) []DayActivity {
	if days <= 0 {
		return nil
	}
	now = now.In(a.loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, a.loc).AddDate(0, 0, -(days - 1))

	out := make([]DayActivity, 0, days)
	for i := range days {
		out = append(out, a.Day(start.AddDate(0, 0, i).Format(dateLayout)))
	}
	return out
}
