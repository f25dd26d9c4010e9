// Package memory provides an in-process store.RowStore used by tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/vilhena/ponto/internal/store"
)

// Store keeps tables in memory. Safe for concurrent use.
type Store struct {
	// Err, when set, is returned by every operation. Lets tests exercise
	// store-failure paths.
	Err error

	mu     sync.Mutex
	tables map[string][][]string
}

var _ store.RowStore = (*Store)(nil)

// New creates a Store with the given empty tables.
func New(tables ...string) *Store {
	s := &Store{tables: make(map[string][][]string)}
	for _, t := range tables {
		s.tables[t] = nil
	}
	return s
}

func (s *Store) table(name string) ([][]string, error) {
	rows, ok := s.tables[name]
	if !ok {
		return nil, fmt.Errorf("unknown table %q: %w", name, store.ErrRowShape)
	}
	return rows, nil
}

func (s *Store) ReadAllRows(_ context.Context, table string) ([]store.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	rows, err := s.table(table)
	if err != nil {
		return nil, err
	}
	out := make([]store.Row, len(rows))
	for i, cells := range rows {
		c := make([]string, len(cells))
		copy(c, cells)
		out[i] = store.Row{Index: i + 1, Cells: c}
	}
	return out, nil
}

func (s *Store) AppendRow(_ context.Context, table string, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, err := s.table(table); err != nil {
		return err
	}
	row := make([]string, len(values))
	copy(row, values)
	s.tables[table] = append(s.tables[table], row)
	return nil
}

func (s *Store) UpdateCell(_ context.Context, table string, rowIndex, col int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	rows, err := s.table(table)
	if err != nil {
		return err
	}
	if rowIndex < 1 || rowIndex > len(rows) || col < 1 {
		return fmt.Errorf("cell (%d,%d) out of range in %q: %w", rowIndex, col, table, store.ErrRowShape)
	}
	row := rows[rowIndex-1]
	for len(row) < col {
		row = append(row, "")
	}
	row[col-1] = value
	s.tables[table][rowIndex-1] = row
	return nil
}

func (s *Store) GetCell(_ context.Context, table string, rowIndex, col int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	rows, err := s.table(table)
	if err != nil {
		return "", err
	}
	if rowIndex < 1 || rowIndex > len(rows) || col < 1 {
		return "", fmt.Errorf("cell (%d,%d) out of range in %q: %w", rowIndex, col, table, store.ErrRowShape)
	}
	row := rows[rowIndex-1]
	if col > len(row) {
		return "", nil
	}
	return row[col-1], nil
}
