// Package ledger reads and writes the punch ledger: one row per user per
// calendar day, with first-write-wins punch fields.
package ledger

import (
	"github.com/vilhena/ponto/internal/model"
	"github.com/vilhena/ponto/internal/store"
)

// 1-based column positions in the ledger table.
const (
	colUser = 1
	colDate = 2
)

// Column returns the 1-based ledger column for a punch event. Events are
// declared in column order, starting right after the date column.
func Column(e model.Event) int {
	return colDate + 1 + int(e)
}

// Key identifies the unique daily row of one user.
type Key struct {
	User string
	Date string
}

// decode turns a raw store row into a LedgerRow. Stores trim trailing
// empty cells, so short rows read as rows with empty punch fields.
func decode(r store.Row) model.LedgerRow {
	cell := func(col int) string {
		if col <= len(r.Cells) {
			return r.Cells[col-1]
		}
		return ""
	}
	return model.LedgerRow{
		Index:    r.Index,
		User:     cell(colUser),
		Date:     cell(colDate),
		ClockIn:  cell(Column(model.ClockIn)),
		LunchOut: cell(Column(model.LunchOut)),
		LunchIn:  cell(Column(model.LunchIn)),
		ClockOut: cell(Column(model.ClockOut)),
	}
}

// encode produces the column values for appending a new ledger row.
func encode(r model.LedgerRow) []string {
	return []string{r.User, r.Date, r.ClockIn, r.LunchOut, r.LunchIn, r.ClockOut}
}

// BuildIndex collapses raw rows into at most one LedgerRow per (user, date).
// Concurrent first punches can leave duplicate rows in the store; the
// earliest row is canonical and keeps its Index, and later duplicates only
// contribute fields the canonical row is missing. Earliest row wins per
// field, mirroring the first-write-wins cell semantics.
func BuildIndex(rows []store.Row) map[Key]model.LedgerRow {
	idx := make(map[Key]model.LedgerRow, len(rows))
	for _, raw := range rows {
		row := decode(raw)
		key := Key{User: row.User, Date: row.Date}
		canonical, ok := idx[key]
		if !ok {
			idx[key] = row
			continue
		}
		for _, e := range model.Events {
			if canonical.Time(e) == "" {
				canonical.SetTime(e, row.Time(e))
			}
		}
		idx[key] = canonical
	}
	return idx
}

// UserRows returns the merged rows belonging to one user, in arrival order.
func UserRows(rows []store.Row, user string) []model.LedgerRow {
	idx := BuildIndex(rows)
	seen := make(map[Key]bool, len(idx))
	var out []model.LedgerRow
	for _, raw := range rows {
		row := decode(raw)
		if row.User != user {
			continue
		}
		key := Key{User: row.User, Date: row.Date}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, idx[key])
	}
	return out
}
