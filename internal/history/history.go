// Package history keeps a local journal of delegated package manager
// invocations. It records what nodepm ran, where, and how it went; it never
// inspects lockfiles or talks to a registry.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps the journal database with separate read/write pools
type Store struct {
	write *sql.DB
	read  *sql.DB
	path  string
}

// Open opens (and initializes) the journal at dbPath, creating the parent
// directory when it does not exist yet.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbPath)

	// Write pool: MUST be 1 connection only
	write, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open write connection: %w", err)
	}
	write.SetMaxOpenConns(1)
	write.SetMaxIdleConns(1)
	write.SetConnMaxIdleTime(time.Minute)
	write.SetConnMaxLifetime(time.Hour)

	read, err := sql.Open("sqlite", connStr)
	if err != nil {
		write.Close()
		return nil, fmt.Errorf("open read connection: %w", err)
	}
	read.SetMaxOpenConns(10)
	read.SetMaxIdleConns(5)
	read.SetConnMaxIdleTime(time.Minute)
	read.SetConnMaxLifetime(time.Hour)

	s := &Store{write: write, read: read, path: dbPath}

	if err := s.initSchema(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return s, nil
}

// Close closes both database connections
func (s *Store) Close() error {
	writeErr := s.write.Close()
	readErr := s.read.Close()
	if writeErr != nil {
		return writeErr
	}
	return readErr
}

func (s *Store) initSchema(ctx context.Context) error {
	schema := `
CREATE TABLE IF NOT EXISTS operations (
    operation_id TEXT PRIMARY KEY,
    operation TEXT NOT NULL,
    manager TEXT NOT NULL,
    args TEXT NOT NULL,
    packages TEXT,
    cwd TEXT NOT NULL,
    exit_code INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_operations_manager ON operations(manager);
CREATE INDEX IF NOT EXISTS idx_operations_created ON operations(created_at);
	`

	if _, err := s.write.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	return nil
}

// Record is a single journal entry
type Record struct {
	OperationID string
	Operation   string
	Manager     string
	Args        []string
	Packages    []string
	Cwd         string
	ExitCode    int
	Duration    time.Duration
	CreatedAt   time.Time
}

// Append writes a new record to the journal
func (s *Store) Append(ctx context.Context, rec *Record) error {
	argsJSON, err := json.Marshal(rec.Args)
	if err != nil {
		return fmt.Errorf("marshal args: %w", err)
	}
	packagesJSON, err := json.Marshal(rec.Packages)
	if err != nil {
		return fmt.Errorf("marshal packages: %w", err)
	}

	query := `
INSERT INTO operations (operation_id, operation, manager, args, packages, cwd, exit_code, duration_ms, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.write.ExecContext(ctx, query,
		rec.OperationID,
		rec.Operation,
		rec.Manager,
		string(argsJSON),
		string(packagesJSON),
		rec.Cwd,
		rec.ExitCode,
		rec.Duration.Milliseconds(),
		rec.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("insert operation: %w", err)
	}

	return nil
}

// List retrieves journal records, newest first, capped at limit when
// limit > 0.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	query := `
SELECT operation_id, operation, manager, args, packages, cwd, exit_code, duration_ms, created_at
FROM operations ORDER BY created_at DESC
	`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.read.QueryContext(ctx, query+" LIMIT ?", limit)
	} else {
		rows, err = s.read.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("query operations: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var argsJSON, packagesJSON string
		var durationMS int64

		err := rows.Scan(
			&rec.OperationID,
			&rec.Operation,
			&rec.Manager,
			&argsJSON,
			&packagesJSON,
			&rec.Cwd,
			&rec.ExitCode,
			&durationMS,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}

		if err := json.Unmarshal([]byte(argsJSON), &rec.Args); err != nil {
			return nil, fmt.Errorf("unmarshal args: %w", err)
		}
		if packagesJSON != "" {
			if err := json.Unmarshal([]byte(packagesJSON), &rec.Packages); err != nil {
				return nil, fmt.Errorf("unmarshal packages: %w", err)
			}
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return records, nil
}

// Prune deletes all but the newest keep records
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	query := `
DELETE FROM operations WHERE operation_id NOT IN (
    SELECT operation_id FROM operations ORDER BY created_at DESC LIMIT ?
)
	`

	result, err := s.write.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("prune operations: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}

	return deleted, nil
}
