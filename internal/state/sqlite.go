package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewSQLiteStore creates a new SQLite state store instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{now: func() time.Time { return time.Now().UTC() }}
}

// NewWithDB wraps an already-open database. The schema is not migrated.
func NewWithDB(db *sql.DB) *SQLiteStore {
	s := NewSQLiteStore()
	s.db = db
	return s
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := path + "?_pragma=foreign_keys(1)"
	if path != ":memory:" {
		dsn += "&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One connection: an in-memory database is private to its connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database path given to Open.
func (s *SQLiteStore) Path() string { return s.path }

// generateID creates a new UUID.
func generateID() string {
	return uuid.New().String()
}

func toMillis(t time.Time) int64 { return t.UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

// --- Run operations ---

// CreateRun starts a new run.
func (s *SQLiteStore) CreateRun(ctx context.Context, command, schemaPath, schemaHash string) (*Run, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	run := &Run{
		ID:         generateID(),
		Command:    command,
		SchemaPath: schemaPath,
		SchemaHash: schemaHash,
		Status:     RunStatusRunning,
		StartedAt:  s.now().Truncate(time.Millisecond),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, command, schema_path, schema_hash, status, started_at) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Command, run.SchemaPath, run.SchemaHash, string(run.Status), toMillis(run.StartedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// CompleteRun marks a run as finished with the given status.
func (s *SQLiteStore) CompleteRun(ctx context.Context, id string, status RunStatus, errMsg string) error {
	if s.db == nil {
		return ErrNotOpen
	}

	var errVal sql.NullString
	if errMsg != "" {
		errVal = sql.NullString{String: errMsg, Valid: true}
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, completed_at = ?, error = ? WHERE id = ?`,
		string(status), toMillis(s.now()), errVal, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

const runColumns = `id, command, schema_path, schema_hash, status, started_at, completed_at, error`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	run := &Run{}
	var (
		status      string
		startedAt   int64
		completedAt sql.NullInt64
		errMsg      sql.NullString
	)
	if err := row.Scan(&run.ID, &run.Command, &run.SchemaPath, &run.SchemaHash, &status, &startedAt, &completedAt, &errMsg); err != nil {
		return nil, err
	}
	run.Status = RunStatus(status)
	run.StartedAt = fromMillis(startedAt)
	if completedAt.Valid {
		t := fromMillis(completedAt.Int64)
		run.CompletedAt = &t
	}
	run.Error = errMsg.String
	return run, nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	run, err := scanRun(s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *SQLiteStore) RecentRuns(ctx context.Context, limit int) ([]*Run, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// --- Output operations ---

// RecordOutput stores one output of a run.
func (s *SQLiteStore) RecordOutput(ctx context.Context, o *Output) error {
	if s.db == nil {
		return ErrNotOpen
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = s.now().Truncate(time.Millisecond)
	}

	changed := 0
	if o.Changed {
		changed = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO outputs (run_id, dialect, path, hash, bytes, changed, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.RunID, o.Dialect, o.Path, o.Hash, o.Bytes, changed, toMillis(o.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to record output %s: %w", o.Path, err)
	}
	return nil
}

// OutputsForRun lists the outputs of a run in recording order.
func (s *SQLiteStore) OutputsForRun(ctx context.Context, runID string) ([]*Output, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, dialect, path, hash, bytes, changed, created_at FROM outputs WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list outputs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var outputs []*Output
	for rows.Next() {
		o := &Output{}
		var changed, createdAt int64
		if err := rows.Scan(&o.RunID, &o.Dialect, &o.Path, &o.Hash, &o.Bytes, &changed, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan output: %w", err)
		}
		o.Changed = changed != 0
		o.CreatedAt = fromMillis(createdAt)
		outputs = append(outputs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list outputs: %w", err)
	}
	return outputs, nil
}

// LastOutputHash returns the hash most recently recorded for path.
func (s *SQLiteStore) LastOutputHash(ctx context.Context, path string) (string, bool, error) {
	if s.db == nil {
		return "", false, ErrNotOpen
	}

	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT hash FROM outputs WHERE path = ? ORDER BY id DESC LIMIT 1`, path).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read output hash: %w", err)
	}
	return hash, true, nil
}
