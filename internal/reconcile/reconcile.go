// Package reconcile turns raw ledger rows into per-day worked/target/balance
// reports. It is a pure computation: it never touches the store, and a bad
// row degrades to a sentinel status instead of failing the batch.
package reconcile

import (
	"sort"
	"time"

	"github.com/vilhena/ponto/internal/model"
	"github.com/vilhena/ponto/internal/timecalc"
)

// Status classifies one day's report.
type Status int

const (
	// Computed: a known attendance pattern resolved and durations are set.
	Computed Status = iota
	// Incomplete: the day has a partial set of punches; no balance.
	Incomplete
	// Unparseable: the date or a time field failed to parse.
	Unparseable
)

func (s Status) String() string {
	switch s {
	case Computed:
		return "computed"
	case Incomplete:
		return "incomplete"
	case Unparseable:
		return "unparseable"
	}
	return "unknown"
}

// DailyReport is the derived report for one ledger row. Durations are only
// meaningful when Status is Computed; WeekdayLabel is empty when the date
// itself did not parse.
type DailyReport struct {
	Row          model.LedgerRow
	Weekday      time.Weekday
	WeekdayLabel string
	Status       Status
	Target       time.Duration
	Worked       time.Duration
	Balance      time.Duration
}

// Target returns the expected worked duration for a weekday:
// 8h Monday through Friday, 4h Saturday, none on Sunday.
func Target(wd time.Weekday) time.Duration {
	switch wd {
	case time.Saturday:
		return 4 * time.Hour
	case time.Sunday:
		return 0
	default:
		return 8 * time.Hour
	}
}

// weekdayLabels holds the report labels, in the store's language.
var weekdayLabels = map[time.Weekday]string{
	time.Monday:    "Segunda-feira",
	time.Tuesday:   "Terça-feira",
	time.Wednesday: "Quarta-feira",
	time.Thursday:  "Quinta-feira",
	time.Friday:    "Sexta-feira",
	time.Saturday:  "Sábado",
	time.Sunday:    "Domingo",
}

// WeekdayLabel returns the report label for a weekday.
func WeekdayLabel(wd time.Weekday) string {
	return weekdayLabels[wd]
}

// Day computes the report for a single ledger row.
func Day(row model.LedgerRow) DailyReport {
	report := DailyReport{Row: row}

	date, err := timecalc.ParseDate(row.Date)
	if err != nil {
		report.Status = Unparseable
		return report
	}
	report.Weekday = date.Weekday()
	report.WeekdayLabel = WeekdayLabel(report.Weekday)
	report.Target = Target(report.Weekday)

	hasLunch := row.LunchOut != "" && row.LunchIn != ""
	noLunch := row.LunchOut == "" && row.LunchIn == ""
	full := row.ClockIn != "" && row.ClockOut != ""

	switch {
	case full && hasLunch:
		clockIn, lunchOut, lunchIn, clockOut, err := parseTimes(row)
		if err != nil {
			report.Status = Unparseable
			return report
		}
		report.Worked = (lunchOut - clockIn) + (clockOut - lunchIn)
	case full && noLunch:
		// Direct shift without a break, e.g. a reduced Saturday.
		clockIn, err := timecalc.ParseTimeOfDay(row.ClockIn)
		if err != nil {
			report.Status = Unparseable
			return report
		}
		clockOut, err := timecalc.ParseTimeOfDay(row.ClockOut)
		if err != nil {
			report.Status = Unparseable
			return report
		}
		report.Worked = clockOut - clockIn
	default:
		report.Status = Incomplete
		return report
	}

	report.Status = Computed
	report.Balance = report.Worked - report.Target
	return report
}

func parseTimes(row model.LedgerRow) (clockIn, lunchOut, lunchIn, clockOut time.Duration, err error) {
	if clockIn, err = timecalc.ParseTimeOfDay(row.ClockIn); err != nil {
		return
	}
	if lunchOut, err = timecalc.ParseTimeOfDay(row.LunchOut); err != nil {
		return
	}
	if lunchIn, err = timecalc.ParseTimeOfDay(row.LunchIn); err != nil {
		return
	}
	clockOut, err = timecalc.ParseTimeOfDay(row.ClockOut)
	return
}

// Reconcile computes reports for all rows, in input order. Ordering for
// presentation is the caller's concern.
func Reconcile(rows []model.LedgerRow) []DailyReport {
	reports := make([]DailyReport, len(rows))
	for i, row := range rows {
		reports[i] = Day(row)
	}
	return reports
}

// SortByDateDesc orders reports newest first. ISO dates compare correctly
// as strings; the sort is stable so rows with equal (or unparseable) dates
// keep their arrival order.
func SortByDateDesc(reports []DailyReport) {
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Row.Date > reports[j].Row.Date
	})
}
