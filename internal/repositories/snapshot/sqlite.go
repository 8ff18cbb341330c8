package snapshot

import (
	"context"
	"database/sql"
	stderrors "errors"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/clock"
)

const createSnapshotsTable = `CREATE TABLE IF NOT EXISTS snapshots (
	user_id  TEXT PRIMARY KEY,
	version  INTEGER NOT NULL,
	data     BLOB NOT NULL,
	saved_at INTEGER NOT NULL
)`

// SQLiteConfig holds the configuration for the SQLite repository
type SQLiteConfig struct {
	// Path is the database file. ":memory:" keeps everything in process.
	Path  string
	Clock clock.Clock
}

// Validate ensures all required fields are provided
func (c *SQLiteConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if strings.TrimSpace(c.Path) == "" {
		vb.RequiredField("Path")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

// SQLiteRepository persists snapshots in a local SQLite file
type SQLiteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// Ensure SQLiteRepository implements Repository
var _ Repository = (*SQLiteRepository)(nil)

// OpenSQLite opens (and creates when missing) a SQLite snapshot store
func OpenSQLite(ctx context.Context, cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	dsn := cfg.Path
	if dsn != ":memory:" {
		dsn = filepath.Clean(dsn) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to open sqlite db")
	}
	// one writer; also keeps ":memory:" on a single connection
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to ping sqlite db")
	}
	if _, err := db.ExecContext(ctx, createSnapshotsTable); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to create snapshots table")
	}

	return &SQLiteRepository{db: db, clock: cfg.Clock}, nil
}

// Close closes the database handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Get loads a user's snapshot
func (r *SQLiteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.UserID == "" {
		return nil, errors.InvalidArgument(errUserIDEmpty)
	}

	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM snapshots WHERE user_id = ?`, input.UserID).Scan(&data)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("snapshot for user %s not found", input.UserID)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to query snapshot")
	}

	snap, err := decode(input.UserID, data)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Snapshot: snap}, nil
}

// Save upserts a user's snapshot
func (r *SQLiteRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	snap, data, err := encode(input, r.clock.Now())
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO snapshots (user_id, version, data, saved_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   version = excluded.version,
		   data = excluded.data,
		   saved_at = excluded.saved_at`,
		snap.UserID,
		snap.Version,
		data,
		snap.SavedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to store snapshot").
			WithMeta(errors.MetaUserID, snap.UserID)
	}

	return &SaveOutput{Snapshot: snap}, nil
}

// Delete removes a user's snapshot
func (r *SQLiteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.UserID == "" {
		return nil, errors.InvalidArgument(errUserIDEmpty)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE user_id = ?`, input.UserID)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to delete snapshot")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to read delete result")
	}

	return &DeleteOutput{Deleted: n > 0}, nil
}

// List returns every stored user ID
func (r *SQLiteRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id FROM snapshots ORDER BY user_id`)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list snapshots")
	}
	defer func() { _ = rows.Close() }()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to scan user id")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list snapshots")
	}

	return &ListOutput{UserIDs: ids}, nil
}
