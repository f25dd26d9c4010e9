// Package store defines the minimal row/cell interface the punch clock
// needs from its backing tables, along with the failure kinds adapters
// report at their boundary.
package store

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable wraps connection, auth and I/O failures against the
	// backing store. The requested operation did not complete.
	ErrUnavailable = errors.New("store unavailable")

	// ErrRowShape wraps layout mismatches: a missing or renamed column,
	// or a reference outside the table's schema.
	ErrRowShape = errors.New("unexpected row shape")
)

// Row is one data row of a backing table. Index is the 1-based position
// among data rows (the header row, where present, is excluded).
type Row struct {
	Index int
	Cells []string
}

// RowStore is a keyed collection of append-only tabular ledgers. Row and
// column indexes are 1-based, matching spreadsheet conventions. Cells are
// written at most one at a time; there is no batching and no transaction
// spanning calls.
type RowStore interface {
	ReadAllRows(ctx context.Context, table string) ([]Row, error)
	AppendRow(ctx context.Context, table string, values []string) error
	UpdateCell(ctx context.Context, table string, rowIndex, col int, value string) error
	GetCell(ctx context.Context, table string, rowIndex, col int) (string, error)
}

// Column layouts of the two tables the punch clock keeps.
var (
	LedgerColumns = []string{"Usuario", "Data", "Entrada", "Almoco_Inicio", "Almoco_Fim", "Saida"}
	UserColumns   = []string{"Username", "Senha", "Nome"}
)
