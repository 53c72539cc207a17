// Package session implements the keystroke-driven typing session.
//
// A Processor owns one session: cursor position, typed text, the ledger of
// uncorrected errors, timers, the pause flag and an append-only keystroke
// log. It is not safe for concurrent use; key events must be delivered in
// arrival order.
package session

import (
	"io"
	"log/slog"
	"time"

	"github.com/verte-zerg/keydrill/internal/metrics"
	"github.com/verte-zerg/keydrill/internal/model"
)

// Processor is the typing session state machine.
type Processor struct {
	task       model.Task
	target     []rune
	state      model.SessionState
	typed      []rune
	keystrokes []model.KeystrokeEvent
	counters   model.Counters

	now    func() time.Time
	policy metrics.Policy
	logger *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) {
		p.now = now
	}
}

// WithPolicy sets the true-accuracy policy used by Result.
func WithPolicy(policy metrics.Policy) Option {
	return func(p *Processor) {
		p.policy = policy
	}
}

// WithLogger sets the logger for session lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New returns an idle Processor with no task.
func New(opts ...Option) *Processor {
	p := &Processor{
		now:    time.Now,
		policy: metrics.DefaultPolicy(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Reset starts a fresh session for task, discarding all prior state and the
// keystroke log. Invalid tasks are rejected and the current session is kept.
func (p *Processor) Reset(task model.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	p.task = task
	p.target = []rune(task.TargetText)
	p.state = model.SessionState{}
	p.typed = nil
	p.keystrokes = nil
	p.counters = model.Counters{}
	p.logger.Debug("session reset", "task", task.ID, "chars", len(p.target))
	return nil
}

// HandleKeyPress applies one typed character.
func (p *Processor) HandleKeyPress(key rune) {
	p.counters.TotalKeypresses++
	if p.ignoring() {
		p.counters.IgnoredKeypresses++
		return
	}
	if len(p.target) == 0 {
		return
	}

	now := p.now()
	if p.state.StartTime.IsZero() {
		p.state.StartTime = now
	}

	idx := p.state.CurrentIndex
	expected := p.target[idx]
	correct := key == expected

	p.keystrokes = append(p.keystrokes, model.KeystrokeEvent{
		Char:      key,
		Timestamp: now,
		Index:     idx,
		IsCorrect: correct,
	})
	if !correct {
		p.state.Errors = append(p.state.Errors, model.ErrorInfo{
			Index:     idx,
			Expected:  expected,
			Typed:     key,
			Timestamp: now,
		})
	}

	// A wrong key still occupies the slot until it is backspaced.
	p.state.CurrentIndex++
	p.typed = append(p.typed, key)

	if p.state.CurrentIndex == len(p.target) {
		p.state.IsComplete = true
		p.state.EndTime = now
		p.logger.Debug("session complete",
			"task", p.task.ID,
			"errors", len(p.state.Errors),
			"keypresses", p.counters.TotalKeypresses,
		)
	}
}

// HandleBackspace moves the cursor back one position and clears any error there.
func (p *Processor) HandleBackspace() {
	p.counters.TotalKeypresses++
	p.counters.Backspaces++
	if p.ignoring() {
		p.counters.IgnoredKeypresses++
		return
	}
	if p.state.CurrentIndex == 0 {
		return
	}

	p.state.CurrentIndex--
	p.typed = p.typed[:len(p.typed)-1]

	kept := p.state.Errors[:0]
	for _, e := range p.state.Errors {
		if e.Index != p.state.CurrentIndex {
			kept = append(kept, e)
		}
	}
	p.state.Errors = kept
}

// Pause freezes content changes. Wall-clock time keeps accruing.
func (p *Processor) Pause() {
	p.state.IsPaused = true
}

// Resume re-enables input after Pause.
func (p *Processor) Resume() {
	p.state.IsPaused = false
}

func (p *Processor) ignoring() bool {
	return p.state.IsComplete || p.state.IsPaused
}

// Task returns the task of the current session.
func (p *Processor) Task() model.Task {
	return p.task
}

// State returns a snapshot of the session state.
func (p *Processor) State() model.SessionState {
	s := p.state
	s.Typed = string(p.typed)
	s.Errors = append([]model.ErrorInfo(nil), p.state.Errors...)
	return s
}

// Keystrokes returns a copy of the keystroke log.
func (p *Processor) Keystrokes() []model.KeystrokeEvent {
	return append([]model.KeystrokeEvent(nil), p.keystrokes...)
}

// Counters returns the raw input counters.
func (p *Processor) Counters() model.Counters {
	return p.counters
}

// Policy returns the true-accuracy policy in effect.
func (p *Processor) Policy() metrics.Policy {
	return p.policy
}

// Typed returns the text typed so far.
func (p *Processor) Typed() string {
	return string(p.typed)
}

// Result returns the summary of a completed session, or false while it is running.
func (p *Processor) Result() (model.TaskResult, bool) {
	return metrics.Calculate(p.task, p.State(), p.counters, p.policy)
}

// Progress is the completion percentage of the current session.
func (p *Processor) Progress() float64 {
	return metrics.Progress(p.state, len(p.target))
}

// LiveWPM is the running speed at the processor's clock.
func (p *Processor) LiveWPM() float64 {
	return metrics.LiveWPM(p.state, p.now())
}

// LiveAccuracy is the running net accuracy percentage.
func (p *Processor) LiveAccuracy() float64 {
	return metrics.LiveAccuracy(p.state)
}

// LiveTrueAccuracy is the running true accuracy percentage.
func (p *Processor) LiveTrueAccuracy() float64 {
	return metrics.LiveTrueAccuracy(p.state, p.counters, p.policy)
}
