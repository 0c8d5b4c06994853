package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenStore(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_OpenMigrates(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	store, err := OpenStore(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, path, store.Path())

	version, err := store.GetMigrationVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	_, err = store.CreateRun(ctx, "generate", "tree.yaml", "abc")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening an existing ledger is a no-op migration.
	store, err = OpenStore(ctx, path)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.RecentRuns(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestSQLiteStore_NotOpen(t *testing.T) {
	ctx := context.Background()
	store := NewSQLiteStore()

	_, err := store.CreateRun(ctx, "generate", "", "")
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, store.CompleteRun(ctx, "x", RunStatusCompleted, ""), ErrNotOpen)
	_, err = store.GetRun(ctx, "x")
	assert.ErrorIs(t, err, ErrNotOpen)
	_, err = store.RecentRuns(ctx, 1)
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, store.RecordOutput(ctx, &Output{}), ErrNotOpen)
	_, err = store.OutputsForRun(ctx, "x")
	assert.ErrorIs(t, err, ErrNotOpen)
	_, _, err = store.LastOutputHash(ctx, "x")
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, store.Migrate(ctx), ErrNotOpen)
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_RunLifecycle(t *testing.T) {
	tests := []struct {
		name    string
		status  RunStatus
		errMsg  string
		wantErr string
	}{
		{name: "completed", status: RunStatusCompleted},
		{name: "failed", status: RunStatusFailed, errMsg: "boom", wantErr: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := setupTestStore(t)

			run, err := store.CreateRun(ctx, "generate", "/p/tree.yaml", "hash")
			require.NoError(t, err)
			assert.NotEmpty(t, run.ID)
			assert.Equal(t, RunStatusRunning, run.Status)
			assert.Zero(t, run.Duration())

			got, err := store.GetRun(ctx, run.ID)
			require.NoError(t, err)
			assert.Equal(t, run.StartedAt, got.StartedAt)
			assert.Nil(t, got.CompletedAt)

			require.NoError(t, store.CompleteRun(ctx, run.ID, tt.status, tt.errMsg))

			got, err = store.GetRun(ctx, run.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.wantErr, got.Error)
			assert.Equal(t, "/p/tree.yaml", got.SchemaPath)
			assert.Equal(t, "hash", got.SchemaHash)
			require.NotNil(t, got.CompletedAt)
			assert.GreaterOrEqual(t, got.Duration(), time.Duration(0))
		})
	}
}

func TestSQLiteStore_RunNotFound(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	_, err := store.GetRun(ctx, "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.ErrorIs(t, store.CompleteRun(ctx, "missing", RunStatusCompleted, ""), ErrRunNotFound)
}

func TestSQLiteStore_RecentRuns(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	var ids []string
	for _, cmd := range []string{"generate", "check", "watch"} {
		run, err := store.CreateRun(ctx, cmd, "tree.yaml", "h")
		require.NoError(t, err)
		ids = append(ids, run.ID)
	}

	runs, err := store.RecentRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)

	runs, err = store.RecentRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestSQLiteStore_Outputs(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	_, ok, err := store.LastOutputHash(ctx, "/out/Nodes.cs")
	require.NoError(t, err)
	assert.False(t, ok)

	first, err := store.CreateRun(ctx, "generate", "tree.yaml", "h1")
	require.NoError(t, err)
	require.NoError(t, store.RecordOutput(ctx, &Output{RunID: first.ID, Dialect: "csharp", Path: "/out/Nodes.cs", Hash: "a", Bytes: 10, Changed: true}))
	require.NoError(t, store.RecordOutput(ctx, &Output{RunID: first.ID, Dialect: "vb", Path: "/out/Nodes.vb", Hash: "b", Bytes: 12, Changed: true}))

	second, err := store.CreateRun(ctx, "generate", "tree.yaml", "h2")
	require.NoError(t, err)
	require.NoError(t, store.RecordOutput(ctx, &Output{RunID: second.ID, Dialect: "csharp", Path: "/out/Nodes.cs", Hash: "c", Bytes: 11, Changed: true}))

	hash, ok, err := store.LastOutputHash(ctx, "/out/Nodes.cs")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "c", hash)

	outputs, err := store.OutputsForRun(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, outputs, 2)
	assert.Equal(t, "csharp", outputs[0].Dialect)
	assert.Equal(t, "vb", outputs[1].Dialect)
	assert.True(t, outputs[1].Changed)
	assert.Equal(t, int64(12), outputs[1].Bytes)
	assert.False(t, outputs[0].CreatedAt.IsZero())
}

func TestSQLiteStore_OutputRequiresRun(t *testing.T) {
	store := setupTestStore(t)

	err := store.RecordOutput(context.Background(), &Output{RunID: "nope", Dialect: "csharp", Path: "x", Hash: "h"})
	assert.Error(t, err)
}

func TestSQLiteStore_DatabaseErrors(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		call      func(ctx context.Context, s *SQLiteStore) error
		errMsg    string
	}{
		{
			name: "create run",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO runs").WillReturnError(assert.AnError)
			},
			call: func(ctx context.Context, s *SQLiteStore) error {
				_, err := s.CreateRun(ctx, "generate", "tree.yaml", "h")
				return err
			},
			errMsg: "failed to create run",
		},
		{
			name: "complete run",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE runs").WillReturnError(assert.AnError)
			},
			call: func(ctx context.Context, s *SQLiteStore) error {
				return s.CompleteRun(ctx, "id", RunStatusFailed, "x")
			},
			errMsg: "failed to complete run",
		},
		{
			name: "list runs",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .* FROM runs").WillReturnError(assert.AnError)
			},
			call: func(ctx context.Context, s *SQLiteStore) error {
				_, err := s.RecentRuns(ctx, 5)
				return err
			},
			errMsg: "failed to list runs",
		},
		{
			name: "record output",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO outputs").WillReturnError(assert.AnError)
			},
			call: func(ctx context.Context, s *SQLiteStore) error {
				return s.RecordOutput(ctx, &Output{Path: "/out/Nodes.cs"})
			},
			errMsg: "failed to record output /out/Nodes.cs",
		},
		{
			name: "last output hash",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT hash FROM outputs").WillReturnError(assert.AnError)
			},
			call: func(ctx context.Context, s *SQLiteStore) error {
				_, _, err := s.LastOutputHash(ctx, "x")
				return err
			},
			errMsg: "failed to read output hash",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setupMock(mock)
			err = tt.call(context.Background(), NewWithDB(db))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.ErrorIs(t, err, assert.AnError)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
