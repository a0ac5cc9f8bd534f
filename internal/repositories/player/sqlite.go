package player

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/KirkDiggler/cultivation-sim/internal/errors"
	"github.com/KirkDiggler/cultivation-sim/internal/pkg/clock"
)

const createSnapshotsTable = `CREATE TABLE IF NOT EXISTS player_snapshots (
	snapshot_key TEXT PRIMARY KEY,
	data         TEXT    NOT NULL,
	saved_at     INTEGER NOT NULL
)`

// SQLiteConfig contains configuration for the SQLite player repository.
type SQLiteConfig struct {
	DB    *sql.DB
	Clock clock.Clock
}

// Validate validates the SQLiteConfig.
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if cfg.DB == nil {
		vb.RequiredField("DB")
	}
	return vb.Build()
}

type sqliteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// OpenSQLite opens the database file at path. ":memory:" gives a private
// in-memory database.
func OpenSQLite(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.InvalidArgument("sqlite path is required")
	}

	dsn := ":memory:"
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "open sqlite db")
	}
	// One connection keeps :memory: databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "ping sqlite db")
	}
	return db, nil
}

// NewSQLite creates a SQLite-backed player repository and ensures its
// table exists.
func NewSQLite(ctx context.Context, cfg *SQLiteConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	if _, err := cfg.DB.ExecContext(ctx, createSnapshotsTable); err != nil {
		return nil, errors.Wrap(err, "create player_snapshots table")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &sqliteRepository{db: cfg.DB, clock: c}, nil
}

var _ Repository = (*sqliteRepository)(nil)

func (r *sqliteRepository) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	var (
		data    string
		savedAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT data, saved_at FROM player_snapshots WHERE snapshot_key = ?`,
		input.Key,
	).Scan(&data, &savedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf("no snapshot for %s", input.Key)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load snapshot")
	}

	out := &LoadOutput{SavedAt: time.UnixMilli(savedAt).UTC()}
	if err := json.Unmarshal([]byte(data), &out.Player); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "corrupt snapshot for %s", input.Key)
	}
	if out.Player == nil {
		return nil, errors.DataLossf("snapshot for %s has no player", input.Key)
	}
	return out, nil
}

func (r *sqliteRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}
	if input.Player == nil {
		return nil, errors.InvalidArgument(errPlayerNil)
	}

	data, err := json.Marshal(input.Player)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal snapshot")
	}
	savedAt := r.clock.Now().UTC()

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO player_snapshots (snapshot_key, data, saved_at) VALUES (?, ?, ?)
		 ON CONFLICT(snapshot_key) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at`,
		input.Key, string(data), savedAt.UnixMilli(),
	)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save snapshot")
	}

	slog.DebugContext(ctx, "snapshot saved",
		"store", "sqlite",
		"key", input.Key,
		"bytes", len(data),
	)

	return &SaveOutput{SavedAt: time.UnixMilli(savedAt.UnixMilli()).UTC()}, nil
}

func (r *sqliteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM player_snapshots WHERE snapshot_key = ?`, input.Key)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to delete snapshot")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "failed to count deleted rows")
	}

	return &DeleteOutput{Deleted: n > 0}, nil
}
