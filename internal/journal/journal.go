package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"tagforge/internal/logging"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users delete the journal database to adopt the new schema.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("journal schema version mismatch")

// DBFileName is the journal database file created inside the dataset folder.
const DBFileName = ".tagforge_journal.db"

// Entry is one recorded mutation.
type Entry struct {
	ID             int64
	SessionID      string
	OccurredAt     time.Time
	Op             string
	Tag            string
	NewTag         string
	ImagesAffected int
}

// Journal persists mutation records in SQLite, one database per dataset.
type Journal struct {
	db        *sql.DB
	path      string
	sessionID string
	logger    *slog.Logger
}

// Open initializes or connects to the journal database inside folder. Each
// Open starts a fresh session identifier so entries group by run.
func Open(folder string, logger *slog.Logger) (*Journal, error) {
	dbPath := filepath.Join(folder, DBFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	j := &Journal{
		db:        db,
		path:      dbPath,
		sessionID: uuid.NewString(),
		logger:    logging.NewComponentLogger(logger, "journal"),
	}
	if err := j.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return j, nil
}

// Close closes the underlying database connection.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Path returns the journal database location.
func (j *Journal) Path() string {
	return j.path
}

// SessionID returns the identifier shared by entries recorded through this
// Journal instance.
func (j *Journal) SessionID() string {
	return j.sessionID
}

// Record appends a mutation entry. Failures are logged and swallowed: the
// journal must never fail the mutation it describes.
func (j *Journal) Record(ctx context.Context, op, tag, newTag string, imagesAffected int) {
	if j == nil || j.db == nil {
		return
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO entries (session_id, occurred_at, op, tag, new_tag, images_affected)
         VALUES (?, ?, ?, ?, ?, ?)`,
		j.sessionID, timestamp, op, tag, nullableString(newTag), imagesAffected,
	)
	if err != nil {
		j.logger.Warn("journal write failed",
			logging.String("op", op),
			logging.Error(err))
		return
	}
	j.logger.Debug("journaled mutation",
		logging.String("op", op),
		logging.String(logging.FieldTag, tag),
		logging.Int(logging.FieldCount, imagesAffected))
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, session_id, occurred_at, op, tag, new_tag, images_affected
         FROM entries ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var occurredAt string
		var newTag sql.NullString
		if err := rows.Scan(&entry.ID, &entry.SessionID, &occurredAt, &entry.Op, &entry.Tag, &newTag, &entry.ImagesAffected); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		if ts, parseErr := time.Parse(time.RFC3339Nano, occurredAt); parseErr == nil {
			entry.OccurredAt = ts
		}
		entry.NewTag = newTag.String
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (j *Journal) initSchema(ctx context.Context) error {
	var tableExists int
	err := j.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return j.createSchema(ctx)
	}

	var version int
	if err := j.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to recreate)",
			ErrSchemaMismatch, version, schemaVersion, j.path)
	}
	return nil
}

func (j *Journal) createSchema(ctx context.Context) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
