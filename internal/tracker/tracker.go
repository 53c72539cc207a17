// Package tracker receives finished sessions. Each collaborator keeps one
// view of practice history: lesson progress, rolling totals, or daily
// activity.
package tracker

import (
	"context"
	"errors"

	"github.com/verte-zerg/keydrill/internal/layout"
	"github.com/verte-zerg/keydrill/internal/model"
)

// Outcome is everything known about a session once it completes.
type Outcome struct {
	SessionID  string
	LessonID   string
	Task       model.Task
	Layout     layout.ID
	Result     model.TaskResult
	Analytics  model.TypingAnalytics
	Keystrokes []model.KeystrokeEvent
}

// Recorder consumes completed sessions.
type Recorder interface {
	Record(ctx context.Context, o Outcome) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(ctx context.Context, o Outcome) error

func (f RecorderFunc) Record(ctx context.Context, o Outcome) error {
	return f(ctx, o)
}

type multi []Recorder

// Multi fans an outcome out to every recorder. All recorders run even if
// some fail; their errors are joined.
func Multi(recorders ...Recorder) Recorder {
	out := make(multi, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (m multi) Record(ctx context.Context, o Outcome) error {
	var errs []error
	for _, r := range m {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := r.Record(ctx, o); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
