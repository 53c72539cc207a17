package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/keydrill/internal/config"
	"github.com/verte-zerg/keydrill/internal/layout"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/stats"
	"github.com/verte-zerg/keydrill/internal/statsui"
	"github.com/verte-zerg/keydrill/internal/store"
)

var (
	statsLang        string
	statsLayout      string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPlain       bool

	configPaths bool

	analyzeSession int64
	analyzeTop     int
	analyzeJSON    bool
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
	cmd.Flags().BoolVar(&configPaths, "paths", false, "print the config, word list and database locations")
	return cmd
}

func runConfigCmd(cmd *cobra.Command, _ []string) error {
	paths := config.DefaultPaths()
	if configPaths {
		return writeLines(cmd.OutOrStdout(), paths.Lines())
	}
	path := paths.ConfigFile
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	edit := exec.Command(parts[0], append(parts[1:], path)...)
	edit.Stdin = os.Stdin
	edit.Stdout = os.Stdout
	edit.Stderr = os.Stderr
	if err := edit.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# keydrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# lang = "en"                  # Language code (default %q)
# words = %d                   # Words per text
# caps = %.2f                  # Probability of capitalized first letter (0-1)
# punct = %.2f                 # Punctuation probability per word (0-1)
# punct-set = %q               # Punctuation set
# focus-weak = false           # Bias practice toward weak characters
# weak-top = %d                # Number of weak characters to focus on
# weak-factor = %.1f           # Weight factor for weak characters
# weak-window = %d             # Number of recent sessions to compute weak chars
# layout = %q                  # Keyboard layout (see: keydrill layouts)
# min-accuracy = %.2f          # Accuracy required to pass a task
# count-ignored-input = true   # Count keys pressed while paused in true accuracy

[metrics]
# file = "/var/lib/node_exporter/keydrill.prom"  # Prometheus textfile written on exit
`,
		defaultLang,
		defaultWords,
		defaultCaps,
		defaultPunct,
		defaultPunctSet,
		defaultWeakTop,
		defaultWeakFactor,
		defaultWeakWindow,
		string(layout.Default),
		defaultMinAccuracy,
	)
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List available wordlist languages",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	langs, err := installedLangs(config.DefaultPaths().WordListDir)
	if err != nil {
		return err
	}
	if !slices.Contains(langs, defaultLang) {
		langs = append(langs, defaultLang+" (builtin)")
	}
	slices.Sort(langs)
	return writeLines(cmd.OutOrStdout(), langs)
}

func installedLangs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read wordlist directory: %w", err)
	}
	langs := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".txt") {
			continue
		}
		langs = append(langs, strings.TrimSuffix(name, ".txt"))
	}
	return langs, nil
}

func newLayoutsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List supported keyboard layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeLines(cmd.OutOrStdout(), layoutLines())
		},
	}
}

func layoutLines() []string {
	ids := layout.IDs()
	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		l := layout.Get(id)
		line := fmt.Sprintf("%-10s %-16s home: %s", id, l.Name, string(l.HomeKeys()))
		if id == layout.Default {
			line += " (default)"
		}
		lines = append(lines, line)
	}
	return lines
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsLang, "lang", "", "language filter")
	cmd.Flags().StringVar(&statsLayout, "layout", "", "keyboard layout filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the TUI")
	return cmd
}

func statsConfigFromFlags() (model.StatsConfig, error) {
	var since *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		since = &parsed
	}
	kb := ""
	if statsLayout != "" {
		id, err := layout.ParseID(statsLayout)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("--layout: %w", err)
		}
		kb = string(id)
	}
	if statsCurveWindow < 1 {
		return model.StatsConfig{}, fmt.Errorf("--curve-window must be >= 1")
	}
	return model.StatsConfig{
		Lang:        statsLang,
		Layout:      kb,
		Since:       since,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}, nil
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := statsConfigFromFlags()
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	if statsPlain {
		report, err := stats.BuildReport(cmd.Context(), st, cfg, time.Now())
		if err != nil {
			return err
		}
		opts := stats.PlotOptions{Color: stats.StdoutIsTerminal()}
		return renderPlainReport(cmd.OutOrStdout(), report, cfg.CurveWindow, opts)
	}

	program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func renderPlainReport(w io.Writer, report stats.Report, window int, opts stats.PlotOptions) error {
	if err := stats.RenderSummary(w, report.Sessions); err != nil {
		return err
	}
	if len(report.Sessions) == 0 {
		return nil
	}
	if err := stats.RenderCurves(w, report.Sessions, window, opts); err != nil {
		return err
	}
	if err := stats.RenderActivity(w, report.Activity); err != nil {
		return err
	}
	if err := stats.RenderLessons(w, report.Lessons); err != nil {
		return err
	}
	return stats.RenderCharTable(w, report.CharAggsWindow)
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Break down a stored session by word, n-gram, finger and character",
		Args:  cobra.NoArgs,
		RunE:  runAnalyzeCmd,
	}
	cmd.Flags().Int64Var(&analyzeSession, "session", 0, "session id (default: latest)")
	cmd.Flags().IntVar(&analyzeTop, "top", defaultAnalyzeTop, "rows per table")
	cmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the full analytics as JSON")
	return cmd
}

// analysisJSON is the machine-readable shape of analyze --json.
type analysisJSON struct {
	SessionID int64                 `json:"sessionId"`
	Layout    string                `json:"layout"`
	Text      string                `json:"text"`
	Result    model.TaskResult      `json:"result"`
	Analytics model.TypingAnalytics `json:"analytics"`
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	if analyzeTop < 1 {
		return fmt.Errorf("--top must be >= 1")
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	a, err := stats.LoadAnalysis(cmd.Context(), st, analyzeSession)
	if err != nil {
		return err
	}
	return writeAnalysis(cmd.OutOrStdout(), a, analyzeTop, analyzeJSON)
}

func writeAnalysis(w io.Writer, a stats.Analysis, top int, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(analysisJSON{
			SessionID: a.ID,
			Layout:    a.Session.Layout,
			Text:      a.Session.TargetText,
			Result:    a.Session.Result,
			Analytics: a.Analytics,
		})
	}
	r := a.Session.Result
	header := fmt.Sprintf("Session %d  %s  %s  %.1f WPM  %.1f%% accuracy  %.1f%% true accuracy\n",
		a.ID, a.Session.EndedAt.Local().Format("2006-01-02 15:04"),
		layout.Get(layout.ID(a.Session.Layout)).Name, r.WPM, r.Accuracy*100, r.TrueAccuracy*100)
	if _, err := io.WriteString(w, header+"\n"); err != nil {
		return err
	}
	return stats.RenderBreakdown(w, a.Analytics, top)
}

func openStore() (*store.Store, error) {
	st, err := store.Open(config.DefaultPaths().DBFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close db: %v\n", err)
	}
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
