// Package store persists sweep runs and their records in SQLite.
package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	apperrors "github.com/agbru/paramsweep/internal/errors"
	"github.com/agbru/paramsweep/internal/sweep"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps a SQLite database holding sweep runs.
type Store struct {
	db *sql.DB
}

// Run describes a stored sweep.
type Run struct {
	ID           string
	StartedAt    time.Time
	Duration     time.Duration
	Source       string
	Axes         []string
	Combinations int
}

// Open opens (creating if needed) the database at path and applies pending
// migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, apperrors.WrapError(err, "opening %s", path)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, apperrors.WrapError(err, "opening %s", path)
	}
	s := &Store{db: db}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, apperrors.WrapError(err, "migrating %s", path)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrateUp() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	// m is not closed: closing it would close the shared *sql.DB.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// SaveRun stores a run and its records in one transaction and returns the
// generated run ID.
func (s *Store) SaveRun(ctx context.Context, source string, axes []string, startedAt time.Time, duration time.Duration, records []sweep.Record) (string, error) {
	axesJSON, err := json.Marshal(axes)
	if err != nil {
		return "", err
	}
	id := uuid.New().String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, started_at, duration_ms, source, axes, combinations) VALUES (?, ?, ?, ?, ?, ?)`,
		id, startedAt.UTC(), duration.Milliseconds(), source, string(axesJSON), len(records),
	); err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records (run_id, idx, combination, result) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()
	for i, r := range records {
		combo, err := json.Marshal(r.Combination().Map())
		if err != nil {
			return "", fmt.Errorf("record #%d: %w", i, err)
		}
		result, err := json.Marshal(r.Result())
		if err != nil {
			return "", fmt.Errorf("record #%d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, id, i, string(combo), string(result)); err != nil {
			return "", fmt.Errorf("failed to insert record #%d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// ListRuns returns stored runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, started_at, duration_ms, source, axes, combinations FROM runs ORDER BY started_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r        Run
			ms       int64
			axesJSON string
		)
		if err := rows.Scan(&r.ID, &r.StartedAt, &ms, &r.Source, &axesJSON, &r.Combinations); err != nil {
			return nil, err
		}
		r.Duration = time.Duration(ms) * time.Millisecond
		if err := json.Unmarshal([]byte(axesJSON), &r.Axes); err != nil {
			return nil, fmt.Errorf("run %s: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// StoredRecord is a record as read back from the database. Values are
// decoded from JSON, so numbers come back as float64.
type StoredRecord struct {
	Index       int
	Combination map[string]any
	Result      any
}

// Records returns the records of a run in evaluation order.
func (s *Store) Records(ctx context.Context, runID string) ([]StoredRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT idx, combination, result FROM records WHERE run_id = ? ORDER BY idx`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredRecord
	for rows.Next() {
		var (
			rec           StoredRecord
			combo, result string
		)
		if err := rows.Scan(&rec.Index, &combo, &result); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(combo), &rec.Combination); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(result), &rec.Result); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
