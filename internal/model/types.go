// Package model defines shared data structures.
package model

import (
	"errors"
	"time"
)

var (
	// ErrEmptyTarget is returned for tasks without target text.
	ErrEmptyTarget = errors.New("task target text is empty")
	// ErrMinAccuracy is returned when MinAccuracy is outside (0, 1].
	ErrMinAccuracy = errors.New("task min accuracy must be in (0, 1]")
)

// Config defines practice settings.
type Config struct {
	Lang              string
	Words             int
	CapsPct           float64
	PunctPct          float64
	PunctSet          string
	FocusWeak         bool
	WeakTop           int
	WeakFactor        float64
	WeakWindow        int
	Layout            string
	MinAccuracy       float64
	CountIgnoredInput bool
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Lang        string
	Layout      string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// Task is a unit of practice supplied by a content provider.
type Task struct {
	ID          string
	Instruction string
	TargetText  string
	MinAccuracy float64
	TimeLimit   time.Duration
}

// Validate rejects tasks that would produce non-finite metrics.
func (t Task) Validate() error {
	if t.TargetText == "" {
		return ErrEmptyTarget
	}
	if !(t.MinAccuracy > 0 && t.MinAccuracy <= 1) {
		return ErrMinAccuracy
	}
	return nil
}

// KeystrokeEvent is one accepted key press. Backspaces are not logged.
type KeystrokeEvent struct {
	Char      rune      `json:"char"`
	Timestamp time.Time `json:"timestamp"`
	Index     int       `json:"index"`
	IsCorrect bool      `json:"isCorrect"`
}

// ErrorInfo is a currently uncorrected mismatch at Index.
type ErrorInfo struct {
	Index     int       `json:"index"`
	Expected  rune      `json:"expected"`
	Typed     rune      `json:"typed"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionState is the mutable part of a typing session.
// A zero StartTime means the first key has not been pressed yet.
type SessionState struct {
	CurrentIndex int
	Typed        string
	Errors       []ErrorInfo
	StartTime    time.Time
	EndTime      time.Time
	IsComplete   bool
	IsPaused     bool
}

// Counters tracks raw input independent of the cursor.
type Counters struct {
	TotalKeypresses   int
	Backspaces        int
	IgnoredKeypresses int
}

// TaskResult summarizes a completed session.
type TaskResult struct {
	TaskID          string      `json:"taskId"`
	WPM             float64     `json:"wpm"`
	RawWPM          float64     `json:"rawWpm"`
	Accuracy        float64     `json:"accuracy"`
	TrueAccuracy    float64     `json:"trueAccuracy"`
	TotalKeystrokes int         `json:"totalKeystrokes"`
	BackspaceCount  int         `json:"backspaceCount"`
	Errors          []ErrorInfo `json:"errors"`
	DurationMs      int64       `json:"duration"`
	CompletedAt     time.Time   `json:"completedAt"`
	Passed          bool        `json:"passed"`
}

// SessionStats captures a completed typing session for storage.
type SessionStats struct {
	SessionID    string
	TaskID       string
	LessonID     string
	StartedAt    time.Time
	EndedAt      time.Time
	Lang         string
	Layout       string
	TargetText   string
	WordListPath string
	Result       TaskResult
}

// CharStats stores per-character stats for a session.
type CharStats struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// CharAggregate aggregates character stats across sessions.
type CharAggregate struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// SessionAggregate summarizes a stored session for reporting.
type SessionAggregate struct {
	SessionID    int64
	TaskID       string
	LessonID     string
	EndedAt      time.Time
	WPM          float64
	Accuracy     float64
	TrueAccuracy float64
	Chars        int
	DurationMs   int64
	Passed       bool
}
