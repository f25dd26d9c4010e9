package model

import "fmt"

// Event is one of the four punch types recorded per day.
type Event int

const (
	ClockIn Event = iota
	LunchOut
	LunchIn
	ClockOut
)

// Label returns the ledger column name for the event.
func (e Event) Label() string {
	switch e {
	case ClockIn:
		return "Entrada"
	case LunchOut:
		return "Almoco_Inicio"
	case LunchIn:
		return "Almoco_Fim"
	case ClockOut:
		return "Saida"
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

func (e Event) String() string { return e.Label() }

// Events lists all punch types in ledger column order.
var Events = []Event{ClockIn, LunchOut, LunchIn, ClockOut}

// LedgerRow is one day's set of punch timestamps for one user.
// Time fields are either empty or "HH:MM:SS"; Date is "YYYY-MM-DD".
type LedgerRow struct {
	// Index is the 1-based position among the data rows of the backing
	// table. Zero for rows not yet persisted.
	Index int

	User     string
	Date     string
	ClockIn  string
	LunchOut string
	LunchIn  string
	ClockOut string
}

// Time returns the value of the field mapped to the given event.
func (r LedgerRow) Time(e Event) string {
	switch e {
	case ClockIn:
		return r.ClockIn
	case LunchOut:
		return r.LunchOut
	case LunchIn:
		return r.LunchIn
	case ClockOut:
		return r.ClockOut
	}
	return ""
}

// SetTime writes the value of the field mapped to the given event.
func (r *LedgerRow) SetTime(e Event, v string) {
	switch e {
	case ClockIn:
		r.ClockIn = v
	case LunchOut:
		r.LunchOut = v
	case LunchIn:
		r.LunchIn = v
	case ClockOut:
		r.ClockOut = v
	}
}

// Identity is one registered user of the punch clock.
type Identity struct {
	Username    string
	DisplayName string
}
