// Package journal records operation outcomes in a local SQLite database.
//
// The journal is observability, not source of truth: the scratchpad file
// owns the data, and journal failures must never fail an operation. Detail
// strings carry operation context (location, counts), never item text.
package journal

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// CurrentSchemaVersion is the latest schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 500
)

// Entry is one journaled operation.
type Entry struct {
	ID        string `json:"id"`
	Op        string `json:"op"`
	Outcome   string `json:"outcome"` // "ok" or the error code
	Detail    string `json:"detail,omitempty"`
	CreatedAt int64  `json:"created_at"` // unix seconds
}

// Init opens the journal database at baseDir/journal.db, creating the
// directory and schema as needed. The baseDir parameter lets tests use
// t.TempDir() instead of ~/.jot.
func Init(baseDir string) (*sql.DB, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	// Explicit chmod (best-effort, may not work on all platforms)
	_ = os.Chmod(baseDir, 0700)

	// Pragmas in the connection string apply to every pool connection.
	dbPath := filepath.Join(baseDir, "journal.db")
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := verifyWALMode(db); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	// Set file permissions after the file exists (best-effort).
	_ = os.Chmod(dbPath, 0600)

	return db, nil
}

// Record appends one entry. A nil db means journaling is disabled and the
// call is a no-op.
func Record(db *sql.DB, op, outcome, detail string) error {
	if db == nil {
		return nil
	}
	id, err := newULID()
	if err != nil {
		return fmt.Errorf("failed to generate journal id: %w", err)
	}
	_, err = db.Exec(
		`INSERT INTO journal (id, op, outcome, detail, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, op, outcome, detail, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to record journal entry: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first. A non-positive
// limit uses the default; limits above the cap are clamped.
func Recent(db *sql.DB, limit int) ([]Entry, error) {
	if db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	rows, err := db.Query(
		`SELECT id, op, outcome, detail, created_at FROM journal
		 ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Op, &e.Outcome, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	return entries, nil
}

// migrate applies schema migrations based on user_version.
func migrate(db *sql.DB) error {
	version, err := getUserVersion(db)
	if err != nil {
		return err
	}

	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS journal (
		  id         TEXT PRIMARY KEY,
		  op         TEXT NOT NULL,
		  outcome    TEXT NOT NULL,
		  detail     TEXT,
		  created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_journal_created
		ON journal(created_at DESC);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := setUserVersion(db, 1); err != nil {
			return err
		}
	}

	// Future migrations go here:
	// if version < 2 { ... }

	return nil
}

// verifyWALMode checks that WAL mode is active (set via connection string).
func verifyWALMode(db *sql.DB) error {
	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		return fmt.Errorf("failed to verify journal mode: %w", err)
	}
	if journalMode != "wal" {
		return fmt.Errorf("expected WAL mode, got %s", journalMode)
	}
	return nil
}

func getUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

func setUserVersion(db *sql.DB, version int) error {
	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version))
	if err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}

func newULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
