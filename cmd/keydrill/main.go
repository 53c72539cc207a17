// Package main provides the CLI entrypoint for keydrill.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/keydrill/internal/config"
	"github.com/verte-zerg/keydrill/internal/generator"
	"github.com/verte-zerg/keydrill/internal/layout"
	"github.com/verte-zerg/keydrill/internal/metrics"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/stats"
	"github.com/verte-zerg/keydrill/internal/store"
	"github.com/verte-zerg/keydrill/internal/telemetry"
	"github.com/verte-zerg/keydrill/internal/tracker"
	"github.com/verte-zerg/keydrill/internal/tui"
	"github.com/verte-zerg/keydrill/internal/wordlist"
)

const (
	defaultLang        = "en"
	defaultWords       = 25
	defaultCaps        = 0.5
	defaultPunct       = 0.5
	defaultWeakTop     = 8
	defaultWeakFactor  = 2.0
	defaultWeakWindow  = 20
	defaultMinAccuracy = 0.9
	defaultCurveWindow = 20
	defaultAnalyzeTop  = 10
)

const defaultPunctSet = ".,!?;:\"'{}()[]-=/<>`"

const builtinWordListPath = "builtin:en"

var (
	practiceLang         string
	practiceWords        int
	practiceCaps         float64
	practicePunct        float64
	practicePunctSet     string
	practiceFocusWeak    bool
	practiceWeakTop      int
	practiceWeakFactor   float64
	practiceWeakWindow   int
	practiceLayout       string
	practiceMinAccuracy  float64
	practiceCountIgnored bool
	practiceText         string
	practiceLesson       string
	practiceMetricsFile  string
	practiceLogFile      string
	practiceVerbose      bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keydrill",
		Short:         "TUI typing trainer with keystroke analytics",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	flags := rootCmd.Flags()
	flags.StringVar(&practiceLang, "lang", defaultLang, "language code (default: en)")
	flags.IntVar(&practiceWords, "words", defaultWords, "words per text")
	flags.Float64Var(&practiceCaps, "caps", defaultCaps, "probability of capitalized first letter (0-1)")
	flags.Float64Var(&practicePunct, "punct", defaultPunct, "punctuation probability per word (0-1)")
	flags.StringVar(&practicePunctSet, "punct-set", defaultPunctSet, "punctuation set")
	flags.BoolVar(&practiceFocusWeak, "focus-weak", false, "bias practice toward weak characters")
	flags.IntVar(&practiceWeakTop, "weak-top", defaultWeakTop, "number of weak characters to focus on")
	flags.Float64Var(&practiceWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak characters")
	flags.IntVar(&practiceWeakWindow, "weak-window", defaultWeakWindow, "number of recent sessions to compute weak chars")
	flags.StringVar(&practiceLayout, "layout", string(layout.Default), "keyboard layout used for finger analytics")
	flags.Float64Var(&practiceMinAccuracy, "min-accuracy", defaultMinAccuracy, "accuracy required to pass a task (0-1]")
	flags.BoolVar(&practiceCountIgnored, "count-ignored", true, "count keys pressed while paused in true accuracy")
	flags.StringVar(&practiceText, "text", "", "practice this fixed text instead of generated words")
	flags.StringVar(&practiceLesson, "lesson", "", "lesson id to track progress under")
	flags.StringVar(&practiceMetricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")
	flags.StringVar(&practiceLogFile, "log-file", "", "write logs to this file instead of stderr")
	flags.BoolVarP(&practiceVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newLayoutsCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newAnalyzeCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	paths := config.DefaultPaths()
	fileCfg, err := config.LoadConfig(paths.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyPracticeConfig(cmd, fileCfg)

	cfg := model.Config{
		Lang:              practiceLang,
		Words:             practiceWords,
		CapsPct:           practiceCaps,
		PunctPct:          practicePunct,
		PunctSet:          practicePunctSet,
		FocusWeak:         practiceFocusWeak,
		WeakTop:           practiceWeakTop,
		WeakFactor:        practiceWeakFactor,
		WeakWindow:        practiceWeakWindow,
		Layout:            practiceLayout,
		MinAccuracy:       practiceMinAccuracy,
		CountIgnoredInput: practiceCountIgnored,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	layoutID, err := layout.ParseID(cfg.Layout)
	if err != nil {
		return fmt.Errorf("--layout: %w", err)
	}

	logger, closeLog, err := newLogger(practiceLogFile, practiceVerbose)
	if err != nil {
		return err
	}
	defer closeLog()

	var words []string
	wordPath := ""
	if practiceText == "" {
		words, wordPath, err = resolveWords(paths, cfg.Lang, layoutID)
		if err != nil {
			return err
		}
		logger.Debug("word list loaded", "path", wordPath, "words", len(words))
	}

	st, err := store.Open(paths.DBFile)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error("failed to close db", "err", cerr)
		}
	}()

	ctx := cmd.Context()
	gen := generator.New()
	next := func() (model.Task, error) {
		if practiceText != "" {
			return generator.TextTask(practiceText, cfg.MinAccuracy)
		}
		return gen.NewTask(generator.Source{
			Words:       words,
			Config:      cfg,
			WeakSet:     loadWeakSet(ctx, st, cfg, logger),
			MinAccuracy: cfg.MinAccuracy,
		})
	}

	totals := tracker.NewStatsAggregator()
	progress := tracker.NewProgressTracker()
	activity := tracker.NewActivityRecorder(time.Local)
	telem := telemetry.New()
	recorder := tracker.Multi(
		st.Recorder(cfg.Lang, wordPath),
		telem,
		totals,
		progress,
		activity,
	)

	m, err := tui.NewModel(tui.Options{
		LessonID: practiceLesson,
		Layout:   layoutID,
		Policy:   metrics.Policy{CountIgnoredInput: cfg.CountIgnoredInput},
		Next:     next,
		Recorder: recorder,
		Totals:   totals,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if practiceMetricsFile != "" {
		if err := telem.WriteTextfile(practiceMetricsFile); err != nil {
			logger.Error("failed to write metrics", "path", practiceMetricsFile, "err", err)
		}
	}
	return printPracticeSummary(cmd.OutOrStdout(), totals, progress, activity, time.Now())
}

func applyPracticeConfig(cmd *cobra.Command, fileCfg config.FileConfig) {
	p := fileCfg.Practice
	applyConfig(cmd, "lang", &practiceLang, p.Lang)
	applyConfig(cmd, "words", &practiceWords, p.Words)
	applyConfig(cmd, "caps", &practiceCaps, p.CapsPct)
	applyConfig(cmd, "punct", &practicePunct, p.PunctPct)
	applyConfig(cmd, "punct-set", &practicePunctSet, p.PunctSet)
	applyConfig(cmd, "focus-weak", &practiceFocusWeak, p.FocusWeak)
	applyConfig(cmd, "weak-top", &practiceWeakTop, p.WeakTop)
	applyConfig(cmd, "weak-factor", &practiceWeakFactor, p.WeakFactor)
	applyConfig(cmd, "weak-window", &practiceWeakWindow, p.WeakWindow)
	applyConfig(cmd, "layout", &practiceLayout, p.Layout)
	applyConfig(cmd, "min-accuracy", &practiceMinAccuracy, p.MinAccuracy)
	applyConfig(cmd, "count-ignored", &practiceCountIgnored, p.CountIgnoredInput)
	applyConfig(cmd, "metrics-file", &practiceMetricsFile, fileCfg.Metrics.File)
}

// applyConfig copies a config file value into target unless the flag was set.
func applyConfig[T any](cmd *cobra.Command, name string, target, value *T) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func newLogger(path string, verbose bool) (*slog.Logger, func(), error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	var w io.Writer = os.Stderr
	closeFn := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
		if !verbose {
			level = slog.LevelInfo
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}

// resolveWords loads the word list for lang, keeping words typeable on the
// layout. English falls back to the embedded list when no file has been
// installed.
func resolveWords(paths config.Paths, lang string, id layout.ID) ([]string, string, error) {
	path, err := paths.WordList(lang)
	if err != nil {
		return nil, "", err
	}
	words, err := wordlist.LoadWordsForLang(path, lang, wordlist.TypeableOn(layout.FingerMapFor(id)))
	if err == nil {
		return words, path, nil
	}
	if errors.Is(err, fs.ErrNotExist) && lang == defaultLang {
		return wordlist.Builtin(), builtinWordListPath, nil
	}
	return nil, "", wordListLoadError(lang, path, err)
}

func loadWeakSet(ctx context.Context, st *store.Store, cfg model.Config, logger *slog.Logger) map[rune]struct{} {
	if !cfg.FocusWeak {
		return nil
	}
	aggs, err := st.GetWeakChars(ctx, cfg.WeakWindow, cfg.Lang)
	if err != nil {
		logger.Warn("failed to load weak chars", "err", err)
		return nil
	}
	weak := stats.SelectWeakChars(aggs, cfg.WeakTop)
	if len(weak) == 0 {
		logger.Info("no stats available for weak-char focus yet; using normal generator")
	}
	return weak
}

func printPracticeSummary(w io.Writer, totals *tracker.StatsAggregator, progress *tracker.ProgressTracker, activity *tracker.ActivityRecorder, now time.Time) error {
	t := totals.Snapshot()
	if t.Sessions == 0 {
		return nil
	}
	lines := []string{
		fmt.Sprintf("%d sessions  avg %.1f WPM  accuracy %.1f%%  true accuracy %.1f%%",
			t.Sessions, t.AvgWPM, t.AvgAccuracy*100, t.AvgTrueAccuracy*100),
	}
	if keys := totals.TopProblemKeys(5); len(keys) > 0 {
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%q×%d", k.Char, k.Misses)
		}
		lines = append(lines, "Problem keys: "+strings.Join(parts, " "))
	}
	today := activity.Day(now.In(time.Local).Format(time.DateOnly))
	lines = append(lines, fmt.Sprintf("Today: %d sessions, %s practiced",
		today.Sessions, (time.Duration(today.PracticeMs) * time.Millisecond).Round(time.Second)), "")
	if err := writeLines(w, lines); err != nil {
		return err
	}
	var lessons []tracker.LessonProgress
	for _, id := range progress.Lessons() {
		lp, _ := progress.Lesson(id)
		lessons = append(lessons, lp)
	}
	return stats.RenderLessons(w, lessons)
}

func validateConfig(cfg model.Config) error {
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.CapsPct < 0 || cfg.CapsPct > 1 {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if cfg.PunctPct < 0 || cfg.PunctPct > 1 {
		return fmt.Errorf("--punct must be between 0 and 1")
	}
	if cfg.PunctSet == "" {
		return fmt.Errorf("--punct-set must not be empty")
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	if cfg.MinAccuracy <= 0 || cfg.MinAccuracy > 1 {
		return fmt.Errorf("--min-accuracy must be in (0, 1]")
	}
	if _, err := layout.ParseID(cfg.Layout); err != nil {
		return fmt.Errorf("--layout: %w", err)
	}
	return nil
}

func wordListLoadError(lang, path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word list: %v", err),
		fmt.Sprintf("expected word list at: %s", path),
		fmt.Sprintf("language %q not found", lang),
		"Run: keydrill langs",
		"Add one word per line to that file, or practice fixed text with --text",
	}
	return errors.New(strings.Join(lines, "\n"))
}
