// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/verte-zerg/keydrill/internal/analytics"
	"github.com/verte-zerg/keydrill/internal/layout"
	"github.com/verte-zerg/keydrill/internal/metrics"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/session"
	"github.com/verte-zerg/keydrill/internal/stats"
	"github.com/verte-zerg/keydrill/internal/tracker"
)

const (
	tickInterval  = 500 * time.Millisecond
	resultsTop    = 8
	recordTimeout = 5 * time.Second
)

// TaskSource yields the next task to practice.
type TaskSource func() (model.Task, error)

// Options wires a Model to its collaborators.
type Options struct {
	LessonID string
	Layout   layout.ID
	Policy   metrics.Policy
	Next     TaskSource
	Recorder tracker.Recorder
	// Totals backs the all-time footer. It should also be part of Recorder.
	Totals *tracker.StatsAggregator
	Logger *slog.Logger
	Clock  func() time.Time
}

type tickMsg time.Time

type recordedMsg struct {
	err error
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	opts    Options
	proc    *session.Processor
	fingers *layout.FingerMap
	logger  *slog.Logger
	now     func() time.Time

	width  int
	height int

	sessionID string
	result    model.TaskResult
	report    model.TypingAnalytics
	done      bool
	tables    []stats.Table
	tableIdx  int
	table     table.Model
	errMsg    string
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	correctedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0A458"))
	frozenStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	pausedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	passStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	failStyle        = incorrectStyle.Copy().Bold(true)
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0")).Bold(true)
)

// NewModel constructs a typing TUI model and loads the first task.
func NewModel(opts Options) (*Model, error) {
	if opts.Next == nil {
		return nil, fmt.Errorf("tui: no task source")
	}
	if opts.Recorder == nil {
		opts.Recorder = tracker.Multi()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	m := &Model{
		opts:    opts,
		fingers: layout.FingerMapFor(opts.Layout),
		logger:  logger,
		now:     now,
		proc: session.New(
			session.WithClock(now),
			session.WithPolicy(opts.Policy),
			session.WithLogger(logger),
		),
	}
	if err := m.nextTask(); err != nil {
		return nil, err
	}
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeTable()
		return m, nil
	case tickMsg:
		return m, tick()
	case recordedMsg:
		if msg.err != nil {
			m.logger.Error("record session", "session", m.sessionID, "err", msg.err)
			m.errMsg = "failed to save session: " + msg.err.Error()
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.done {
			return m.updateResults(msg)
		}
		return m.updateTyping(msg)
	}
	return m, nil
}

func (m *Model) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.proc.State().IsPaused {
			m.proc.Resume()
		} else {
			m.proc.Pause()
		}
		return m, nil
	case tea.KeyBackspace, tea.KeyDelete:
		m.proc.HandleBackspace()
		return m, nil
	case tea.KeySpace:
		return m, m.press([]rune{' '})
	case tea.KeyRunes:
		return m, m.press(msg.Runes)
	}
	return m, nil
}

func (m *Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		if err := m.nextTask(); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		return m, nil
	case "esc", "q":
		return m, tea.Quit
	case "left", "h":
		m.showTable(m.tableIdx - 1)
		return m, nil
	case "right", "l", "tab":
		m.showTable(m.tableIdx + 1)
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) press(runes []rune) tea.Cmd {
	for _, r := range runes {
		m.proc.HandleKeyPress(r)
	}
	if m.proc.State().IsComplete {
		return m.finish()
	}
	return nil
}

func (m *Model) nextTask() error {
	task, err := m.opts.Next()
	if err != nil {
		return fmt.Errorf("next task: %w", err)
	}
	if err := m.proc.Reset(task); err != nil {
		return fmt.Errorf("start task: %w", err)
	}
	m.sessionID = uuid.NewString()
	m.done = false
	m.errMsg = ""
	m.tables = nil
	return nil
}

// finish computes results and hands the outcome to the recorder off the UI
// goroutine.
func (m *Model) finish() tea.Cmd {
	result, ok := m.proc.Result()
	if !ok {
		return nil
	}
	task := m.proc.Task()
	keystrokes := m.proc.Keystrokes()
	m.result = result
	m.report = analytics.Calculate(keystrokes, task.TargetText, m.fingers)
	m.done = true
	m.tables = stats.Breakdown(m.report, resultsTop)
	m.showTable(0)
	m.logger.Info("session complete",
		"session", m.sessionID,
		"task", task.ID,
		"wpm", result.WPM,
		"accuracy", result.Accuracy,
		"passed", result.Passed,
	)

	outcome := tracker.Outcome{
		SessionID:  m.sessionID,
		LessonID:   m.opts.LessonID,
		Task:       task,
		Layout:     m.fingers.ID(),
		Result:     result,
		Analytics:  m.report,
		Keystrokes: keystrokes,
	}
	rec := m.opts.Recorder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		return recordedMsg{err: rec.Record(ctx, outcome)}
	}
}

func (m *Model) showTable(idx int) {
	if len(m.tables) == 0 {
		return
	}
	idx = (idx + len(m.tables)) % len(m.tables)
	m.tableIdx = idx
	m.table = buildTable(m.tables[idx], m.tableHeight())
	m.resizeTable()
}

func buildTable(t stats.Table, height int) table.Model {
	widths := t.ColumnWidths()
	columns := make([]table.Column, len(t.Headers))
	for i, h := range t.Headers {
		columns[i] = table.Column{Title: h, Width: widths[i]}
	}
	rows := make([]table.Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, table.Row(r))
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(height),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#3A3A3A"))
	tbl.SetStyles(styles)
	return tbl
}

func (m *Model) tableHeight() int {
	h := m.height - 10
	if h < 3 {
		h = resultsTop
	}
	return h
}

func (m *Model) resizeTable() {
	if m.tables == nil {
		return
	}
	m.table.SetHeight(m.tableHeight())
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.done {
		return m.place(m.renderResults())
	}
	state := m.proc.State()
	target := []rune(m.proc.Task().TargetText)
	if len(target) == 0 {
		return ""
	}
	styledRunes := buildStyledRunes(target, state, m.proc.Keystrokes())
	var content string
	if m.width == 0 || m.height == 0 {
		content = renderStyledRunes(styledRunes)
	} else {
		contentWidth := max(int(float64(m.width)*0.70), 1)
		lines := scrollToCursor(wrapLines(styledRunes, contentWidth-1), m.height-4)
		content = lipgloss.NewStyle().Width(contentWidth).Render(renderLines(lines))
	}
	if state.IsPaused {
		content = pausedStyle.Render("Paused. Press Esc to resume.") + "\n\n" + content
	}
	return m.place(content)
}

func (m *Model) place(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderResults() string {
	r := m.result
	verdict := passStyle.Render("PASSED")
	if !r.Passed {
		verdict = failStyle.Render(fmt.Sprintf("NOT PASSED (needs %.0f%%)", m.proc.Task().MinAccuracy*100))
	}
	lines := []string{
		verdict,
		fmt.Sprintf("%.1f WPM  (raw %.1f)", r.WPM, r.RawWPM),
		fmt.Sprintf("Accuracy %.1f%%  True accuracy %.1f%%", r.Accuracy*100, r.TrueAccuracy*100),
		fmt.Sprintf("%d keystrokes  %d backspaces  %d uncorrected  %.1fs",
			r.TotalKeystrokes, r.BackspaceCount, len(r.Errors), float64(r.DurationMs)/1000),
		"",
	}
	if len(m.tables) > 0 {
		t := m.tables[m.tableIdx]
		lines = append(lines, titleStyle.Render(fmt.Sprintf("%s (%d/%d)", t.Title, m.tableIdx+1, len(m.tables))))
		if len(t.Rows) == 0 {
			lines = append(lines, footerStyle.Render("(none)"))
		} else {
			lines = append(lines, m.table.View())
		}
	}
	lines = append(lines, "", footerStyle.Render("enter: next  left/right: tables  esc: quit"))
	if m.errMsg != "" {
		lines = append(lines, incorrectStyle.Render(m.errMsg))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	segments := []string{}
	if !m.done {
		segments = append(segments,
			fmt.Sprintf("Progress %.0f%%", m.proc.Progress()),
			fmt.Sprintf("%.0f WPM · %.0f%% · true %.0f%%", m.proc.LiveWPM(), m.proc.LiveAccuracy(), m.proc.LiveTrueAccuracy()),
		)
	}
	if m.opts.Totals != nil {
		if t := m.opts.Totals.Snapshot(); t.Sessions > 0 {
			segments = append(segments, fmt.Sprintf("Avg %.1f WPM · %.1f%% over %d", t.AvgWPM, t.AvgAccuracy*100, t.Sessions))
		}
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}
