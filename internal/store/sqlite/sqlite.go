// Package sqlite provides a local SQLite-backed store.RowStore, used when
// the punch clock runs against a file instead of a remote spreadsheet.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure Go SQLite driver, no CGO

	"github.com/vilhena/ponto/internal/store"
)

var _ store.RowStore = (*Store)(nil)

// Store implements store.RowStore on a SQLite database. Each table gets a
// hidden pos column preserving insertion order; rows are never deleted, so
// enumeration order is stable.
type Store struct {
	db      *sql.DB
	schemas map[string][]string
}

// New opens (creating if needed) the database at dbPath and ensures a table
// exists for every schema. Schema column names are the trusted, fixed
// layouts from the store package; they are interpolated into SQL directly.
func New(dbPath string, schemas map[string][]string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %v: %w", err, store.ErrUnavailable)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %v: %w", err, store.ErrUnavailable)
	}

	s := &Store{db: db, schemas: schemas}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	for table, cols := range s.schemas {
		ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %q (pos INTEGER PRIMARY KEY AUTOINCREMENT", table)
		for _, c := range cols {
			ddl += fmt.Sprintf(", %q TEXT NOT NULL DEFAULT ''", c)
		}
		ddl += ")"
		if _, err := s.db.Exec(ddl); err != nil {
			return fmt.Errorf("creating table %q: %v: %w", table, err, store.ErrUnavailable)
		}
	}
	return nil
}

func (s *Store) columns(table string) ([]string, error) {
	cols, ok := s.schemas[table]
	if !ok {
		return nil, fmt.Errorf("unknown table %q: %w", table, store.ErrRowShape)
	}
	return cols, nil
}

// column resolves a 1-based column index to its name.
func (s *Store) column(table string, col int) (string, error) {
	cols, err := s.columns(table)
	if err != nil {
		return "", err
	}
	if col < 1 || col > len(cols) {
		return "", fmt.Errorf("column %d out of range in %q: %w", col, table, store.ErrRowShape)
	}
	return cols[col-1], nil
}

func (s *Store) ReadAllRows(ctx context.Context, table string) ([]store.Row, error) {
	cols, err := s.columns(table)
	if err != nil {
		return nil, err
	}

	query := "SELECT "
	for i, c := range cols {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("%q", c)
	}
	query += fmt.Sprintf(" FROM %q ORDER BY pos", table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %v: %w", table, err, store.ErrUnavailable)
	}
	defer rows.Close()

	var out []store.Row
	for rows.Next() {
		cells := make([]string, len(cols))
		dest := make([]any, len(cols))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning %q: %v: %w", table, err, store.ErrUnavailable)
		}
		out = append(out, store.Row{Index: len(out) + 1, Cells: cells})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %q: %v: %w", table, err, store.ErrUnavailable)
	}
	return out, nil
}

func (s *Store) AppendRow(ctx context.Context, table string, values []string) error {
	cols, err := s.columns(table)
	if err != nil {
		return err
	}
	if len(values) > len(cols) {
		return fmt.Errorf("%d values for %d columns in %q: %w", len(values), len(cols), table, store.ErrRowShape)
	}

	query := fmt.Sprintf("INSERT INTO %q (", table)
	placeholders := ""
	args := make([]any, len(values))
	for i, v := range values {
		if i > 0 {
			query += ", "
			placeholders += ", "
		}
		query += fmt.Sprintf("%q", cols[i])
		placeholders += "?"
		args[i] = v
	}
	query += ") VALUES (" + placeholders + ")"

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("appending to %q: %v: %w", table, err, store.ErrUnavailable)
	}
	return nil
}

// rowPos maps a 1-based row index to the stored pos key.
func (s *Store) rowPos(ctx context.Context, table string, rowIndex int) (int64, error) {
	var pos int64
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT pos FROM %q ORDER BY pos LIMIT 1 OFFSET ?", table),
		rowIndex-1,
	).Scan(&pos)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("row %d not found in %q: %w", rowIndex, table, store.ErrRowShape)
	}
	if err != nil {
		return 0, fmt.Errorf("locating row %d in %q: %v: %w", rowIndex, table, err, store.ErrUnavailable)
	}
	return pos, nil
}

func (s *Store) UpdateCell(ctx context.Context, table string, rowIndex, col int, value string) error {
	name, err := s.column(table, col)
	if err != nil {
		return err
	}
	pos, err := s.rowPos(ctx, table, rowIndex)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE %q SET %q = ? WHERE pos = ?", table, name),
		value, pos,
	)
	if err != nil {
		return fmt.Errorf("updating %q.%s: %v: %w", table, name, err, store.ErrUnavailable)
	}
	return nil
}

func (s *Store) GetCell(ctx context.Context, table string, rowIndex, col int) (string, error) {
	name, err := s.column(table, col)
	if err != nil {
		return "", err
	}
	pos, err := s.rowPos(ctx, table, rowIndex)
	if err != nil {
		return "", err
	}
	var value string
	err = s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %q FROM %q WHERE pos = ?", name, table),
		pos,
	).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("reading %q.%s: %v: %w", table, name, err, store.ErrUnavailable)
	}
	return value, nil
}
