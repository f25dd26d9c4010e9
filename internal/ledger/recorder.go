package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vilhena/ponto/internal/clock"
	"github.com/vilhena/ponto/internal/model"
	"github.com/vilhena/ponto/internal/store"
)

// OutcomeKind classifies the result of a punch.
type OutcomeKind int

const (
	// Created: no row existed for (user, today); one was appended.
	Created OutcomeKind = iota
	// Updated: today's row existed and the field was empty; it was written.
	Updated
	// Rejected: the field was already set. Not an error; At carries the
	// existing value so the user can be told when they already punched.
	Rejected
)

// Outcome reports what a punch did.
type Outcome struct {
	Kind  OutcomeKind
	Event model.Event
	At    string
}

// Recorder writes punches into the ledger with at-most-once-per-event-per-day
// semantics. The locate-then-write sequence is not transactional; see
// BuildIndex for how the resulting duplicate-row window is absorbed.
type Recorder struct {
	store store.RowStore
	table string
}

// NewRecorder creates a Recorder over the given ledger table.
func NewRecorder(st store.RowStore, table string) *Recorder {
	return &Recorder{store: st, table: table}
}

// Record punches the given event for user at the instant described by now.
// Exactly one append or cell update is issued against the store; on a
// Rejected outcome nothing is written.
func (r *Recorder) Record(ctx context.Context, user string, event model.Event, now clock.Stamp) (Outcome, error) {
	rows, err := r.store.ReadAllRows(ctx, r.table)
	if err != nil {
		return Outcome{}, fmt.Errorf("locating today's row: %w", err)
	}

	row, ok := BuildIndex(rows)[Key{User: user, Date: now.Date}]
	if !ok {
		fresh := model.LedgerRow{User: user, Date: now.Date}
		fresh.SetTime(event, now.Time)
		if err := r.store.AppendRow(ctx, r.table, encode(fresh)); err != nil {
			return Outcome{}, fmt.Errorf("appending row for %s: %w", now.Date, err)
		}
		slog.Debug("ledger row created", "user", user, "date", now.Date, "event", event.Label())
		return Outcome{Kind: Created, Event: event, At: now.Time}, nil
	}

	if existing := row.Time(event); existing != "" {
		return Outcome{Kind: Rejected, Event: event, At: existing}, nil
	}

	// Re-read the single cell before writing. The merged view can lag a
	// concurrent punch; this narrows the first-write-wins window to one
	// store round trip.
	col := Column(event)
	existing, err := r.store.GetCell(ctx, r.table, row.Index, col)
	if err != nil {
		return Outcome{}, fmt.Errorf("checking %s for %s: %w", event.Label(), now.Date, err)
	}
	if existing != "" {
		return Outcome{Kind: Rejected, Event: event, At: existing}, nil
	}

	if err := r.store.UpdateCell(ctx, r.table, row.Index, col, now.Time); err != nil {
		return Outcome{}, fmt.Errorf("writing %s for %s: %w", event.Label(), now.Date, err)
	}
	slog.Debug("ledger field written", "user", user, "date", now.Date, "event", event.Label(), "at", now.Time)
	return Outcome{Kind: Updated, Event: event, At: now.Time}, nil
}

// Today returns the merged row for (user, date), if any.
func (r *Recorder) Today(ctx context.Context, user, date string) (model.LedgerRow, bool, error) {
	rows, err := r.store.ReadAllRows(ctx, r.table)
	if err != nil {
		return model.LedgerRow{}, false, err
	}
	row, ok := BuildIndex(rows)[Key{User: user, Date: date}]
	return row, ok, nil
}
