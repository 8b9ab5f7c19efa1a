package export

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS points (
	run    INTEGER NOT NULL,
	id     INTEGER NOT NULL,
	parent INTEGER NOT NULL,
	x      REAL    NOT NULL,
	y      REAL    NOT NULL,
	z      REAL    NOT NULL,
	PRIMARY KEY (run, id)
)`

// SQLiteSink stores exported clusters in a SQLite database, one run per cluster.
type SQLiteSink struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at dsn, e.g. "clusters.db" or ":memory:".
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1) // single writer

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

// WriteRun replaces the points stored for run with records.
func (s *SQLiteSink) WriteRun(ctx context.Context, run int, records []Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM points WHERE run = ?`, run); err != nil {
		return fmt.Errorf("clear run %d: %w", run, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO points (run, id, parent, x, y, z) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, run, r.ID, r.Parent, r.X, r.Y, r.Z); err != nil {
			return fmt.Errorf("insert point %d: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

// ReadRun returns the points of run ordered by id.
func (s *SQLiteSink) ReadRun(ctx context.Context, run int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, parent, x, y, z FROM points WHERE run = ? ORDER BY id`, run)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Parent, &r.X, &r.Y, &r.Z); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Runs returns the stored run numbers in ascending order.
func (s *SQLiteSink) Runs(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT run FROM points ORDER BY run`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var run int
		if err := rows.Scan(&run); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
