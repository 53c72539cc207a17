// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/keydrill/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when a requested session does not exist.
var ErrNotFound = errors.New("session not found")

// Store wraps SQLite access for session data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			uid TEXT NOT NULL,
			task_id TEXT NOT NULL,
			lesson_id TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			lang TEXT NOT NULL,
			layout TEXT NOT NULL,
			target_text TEXT NOT NULL,
			wordlist_path TEXT NOT NULL,
			wpm REAL NOT NULL,
			raw_wpm REAL NOT NULL,
			accuracy REAL NOT NULL,
			true_accuracy REAL NOT NULL,
			total_keystrokes INTEGER NOT NULL,
			backspaces INTEGER NOT NULL,
			errors INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			passed INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_char_stats (
			session_id INTEGER NOT NULL,
			char TEXT NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			latency_sum_ms INTEGER NOT NULL,
			latency_count INTEGER NOT NULL,
			PRIMARY KEY (session_id, char)
		);`,
		`CREATE TABLE IF NOT EXISTS keystrokes (
			session_id INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			char TEXT NOT NULL,
			ts_unix_ns INTEGER NOT NULL,
			idx INTEGER NOT NULL,
			is_correct INTEGER NOT NULL,
			PRIMARY KEY (session_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_uid ON sessions(uid);`,
		`CREATE INDEX IF NOT EXISTS idx_session_char_stats_char ON session_char_stats(char);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a completed session with its per-character stats and
// keystroke log.
func (s *Store) InsertSession(ctx context.Context, stats model.SessionStats, chars []model.CharStats, keystrokes []model.KeystrokeEvent) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	r := stats.Result
	res, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (uid, task_id, lesson_id, started_at, ended_at, lang, layout, target_text, wordlist_path,
			wpm, raw_wpm, accuracy, true_accuracy, total_keystrokes, backspaces, errors, duration_ms, passed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stats.SessionID,
		stats.TaskID,
		stats.LessonID,
		stats.StartedAt.Format(time.RFC3339Nano),
		stats.EndedAt.Format(time.RFC3339Nano),
		stats.Lang,
		stats.Layout,
		stats.TargetText,
		stats.WordListPath,
		r.WPM,
		r.RawWPM,
		r.Accuracy,
		r.TrueAccuracy,
		r.TotalKeystrokes,
		r.BackspaceCount,
		len(r.Errors),
		r.DurationMs,
		r.Passed,
	)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(chars) > 0 {
		if err = insertCharStats(ctx, tx, id, chars); err != nil {
			return 0, err
		}
	}
	if len(keystrokes) > 0 {
		if err = insertKeystrokes(ctx, tx, id, keystrokes); err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func insertCharStats(ctx context.Context, tx *sql.Tx, sessionID int64, chars []model.CharStats) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO session_char_stats (session_id, char, correct, incorrect, latency_sum_ms, latency_count)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, cs := range chars {
		if _, err := stmt.ExecContext(ctx, sessionID, cs.Char, cs.Correct, cs.Incorrect, cs.LatencySumMs, cs.LatencyCount); err != nil {
			return fmt.Errorf("insert char stats %q: %w", cs.Char, err)
		}
	}
	return nil
}

func insertKeystrokes(ctx context.Context, tx *sql.Tx, sessionID int64, keystrokes []model.KeystrokeEvent) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO keystrokes (session_id, seq, char, ts_unix_ns, idx, is_correct)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for seq, ks := range keystrokes {
		if _, err := stmt.ExecContext(ctx, sessionID, seq, string(ks.Char), ks.Timestamp.UnixNano(), ks.Index, ks.IsCorrect); err != nil {
			return fmt.Errorf("insert keystroke %d: %w", seq, err)
		}
	}
	return nil
}

// GetWeakChars aggregates character stats over the most recent sessions.
func (s *Store) GetWeakChars(ctx context.Context, window int, lang string) ([]model.CharAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `WITH recent_sessions AS (
		SELECT id FROM sessions
		WHERE (? = '' OR lang = ?)
		ORDER BY ended_at DESC
		LIMIT ?
	)
	SELECT cs.char, SUM(cs.correct) AS correct, SUM(cs.incorrect) AS incorrect,
		SUM(cs.latency_sum_ms) AS latency_sum_ms, SUM(cs.latency_count) AS latency_count
	FROM session_char_stats cs
	JOIN recent_sessions r ON r.id = cs.session_id
	GROUP BY cs.char`

	rows, err := s.db.QueryContext(ctx, query, lang, lang, window)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	return scanCharAggregates(rows)
}

// ListSessions returns session aggregates filtered by stats config.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Lang != "" {
		clauses = append(clauses, "lang = ?")
		args = append(args, cfg.Lang)
	}
	if cfg.Layout != "" {
		clauses = append(clauses, "layout = ?")
		args = append(args, cfg.Layout)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, task_id, lesson_id, ended_at, wpm, accuracy, true_accuracy, length(target_text), duration_ms, passed
		FROM sessions
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionAggregate
	for rows.Next() {
		var agg model.SessionAggregate
		var endedAt string
		if err := rows.Scan(&agg.SessionID, &agg.TaskID, &agg.LessonID, &endedAt, &agg.WPM, &agg.Accuracy, &agg.TrueAccuracy, &agg.Chars, &agg.DurationMs, &agg.Passed); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		sessions = append(sessions, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetSession loads a stored session. The result's Errors slice is not
// persisted; only its length survives in the errors column.
func (s *Store) GetSession(ctx context.Context, id int64) (model.SessionStats, error) {
	return s.getSession(ctx, `WHERE id = ?`, id)
}

// LatestSession loads the most recently finished session.
func (s *Store) LatestSession(ctx context.Context) (int64, model.SessionStats, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM sessions ORDER BY ended_at DESC, id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, model.SessionStats{}, ErrNotFound
	}
	if err != nil {
		return 0, model.SessionStats{}, err
	}
	stats, err := s.GetSession(ctx, id)
	return id, stats, err
}

func (s *Store) getSession(ctx context.Context, where string, args ...any) (model.SessionStats, error) {
	row := s.db.QueryRowContext(ctx, `SELECT uid, task_id, lesson_id, started_at, ended_at, lang, layout, target_text, wordlist_path,
		wpm, raw_wpm, accuracy, true_accuracy, total_keystrokes, backspaces, duration_ms, passed
		FROM sessions `+where, args...)

	var st model.SessionStats
	var startedAt, endedAt string
	r := &st.Result
	err := row.Scan(&st.SessionID, &st.TaskID, &st.LessonID, &startedAt, &endedAt, &st.Lang, &st.Layout, &st.TargetText, &st.WordListPath,
		&r.WPM, &r.RawWPM, &r.Accuracy, &r.TrueAccuracy, &r.TotalKeystrokes, &r.BackspaceCount, &r.DurationMs, &r.Passed)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SessionStats{}, ErrNotFound
	}
	if err != nil {
		return model.SessionStats{}, err
	}
	if st.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return model.SessionStats{}, err
	}
	if st.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
		return model.SessionStats{}, err
	}
	r.TaskID = st.TaskID
	r.CompletedAt = st.EndedAt
	return st, nil
}

// ListKeystrokes returns the keystroke log of a session in typing order.
func (s *Store) ListKeystrokes(ctx context.Context, sessionID int64) ([]model.KeystrokeEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT char, ts_unix_ns, idx, is_correct FROM keystrokes WHERE session_id = ? ORDER BY seq ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var events []model.KeystrokeEvent
	for rows.Next() {
		var ch string
		var ts int64
		var ev model.KeystrokeEvent
		if err := rows.Scan(&ch, &ts, &ev.Index, &ev.IsCorrect); err != nil {
			return nil, err
		}
		for _, r := range ch {
			ev.Char = r
			break
		}
		ev.Timestamp = time.Unix(0, ts)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// ListCharAggregatesForSessions aggregates per-character stats across sessions.
func (s *Store) ListCharAggregatesForSessions(ctx context.Context, sessionIDs []int64) ([]model.CharAggregate, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(sessionIDs))
	args := make([]any, len(sessionIDs))
	for i, id := range sessionIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT char, SUM(correct) AS correct, SUM(incorrect) AS incorrect,
		SUM(latency_sum_ms) AS latency_sum_ms, SUM(latency_count) AS latency_count
		FROM session_char_stats
		WHERE session_id IN (%s)
		GROUP BY char`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	return scanCharAggregates(rows)
}

func scanCharAggregates(rows *sql.Rows) ([]model.CharAggregate, error) {
	var result []model.CharAggregate
	for rows.Next() {
		var agg model.CharAggregate
		if err := rows.Scan(&agg.Char, &agg.Correct, &agg.Incorrect, &agg.LatencySumMs, &agg.LatencyCount); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
