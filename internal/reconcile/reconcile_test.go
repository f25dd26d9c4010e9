package reconcile_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vilhena/ponto/internal/model"
	"github.com/vilhena/ponto/internal/reconcile"
)

func TestTarget(t *testing.T) {
	assert.Equal(t, 8*time.Hour, reconcile.Target(time.Monday))
	assert.Equal(t, 8*time.Hour, reconcile.Target(time.Tuesday))
	assert.Equal(t, 8*time.Hour, reconcile.Target(time.Friday))
	assert.Equal(t, 4*time.Hour, reconcile.Target(time.Saturday))
	assert.Equal(t, time.Duration(0), reconcile.Target(time.Sunday))
}

func TestDayFullPattern(t *testing.T) {
	// 2024-03-06 is a Wednesday.
	day := reconcile.Day(model.LedgerRow{
		User:     "rafa",
		Date:     "2024-03-06",
		ClockIn:  "08:00:00",
		LunchOut: "12:00:00",
		LunchIn:  "13:00:00",
		ClockOut: "17:30:00",
	})

	require.Equal(t, reconcile.Computed, day.Status)
	assert.Equal(t, time.Wednesday, day.Weekday)
	assert.Equal(t, "Quarta-feira", day.WeekdayLabel)
	assert.Equal(t, 8*time.Hour, day.Target)
	assert.Equal(t, 8*time.Hour+30*time.Minute, day.Worked)
	assert.Equal(t, 30*time.Minute, day.Balance)
}

func TestDayNoBreakPattern(t *testing.T) {
	// 2024-03-09 is a Saturday: a direct shift without lunch is a valid
	// pattern, not a partial day.
	day := reconcile.Day(model.LedgerRow{
		User:     "rafa",
		Date:     "2024-03-09",
		ClockIn:  "08:00:00",
		ClockOut: "12:00:00",
	})

	require.Equal(t, reconcile.Computed, day.Status)
	assert.Equal(t, 4*time.Hour, day.Target)
	assert.Equal(t, 4*time.Hour, day.Worked)
	assert.Equal(t, time.Duration(0), day.Balance)
}

func TestDayInvertedPunches(t *testing.T) {
	// First-write-wins keeps a mistaken early clock-out next to a later
	// clock-in, so the interval can come out negative. The day still
	// computes; rendering carries the sign.
	day := reconcile.Day(model.LedgerRow{
		User:     "rafa",
		Date:     "2024-03-09",
		ClockIn:  "09:30:00",
		ClockOut: "08:00:00",
	})

	require.Equal(t, reconcile.Computed, day.Status)
	assert.Equal(t, -(time.Hour + 30*time.Minute), day.Worked)
	assert.Equal(t, -(5*time.Hour + 30*time.Minute), day.Balance)
}

func TestDayPartialPunches(t *testing.T) {
	cases := []model.LedgerRow{
		{Date: "2024-03-06", ClockIn: "08:00:00"},
		{Date: "2024-03-06", ClockIn: "08:00:00", LunchOut: "12:00:00"},
		{Date: "2024-03-06", ClockIn: "08:00:00", LunchOut: "12:00:00", LunchIn: "13:00:00"},
		// Only one lunch field present alongside both clock fields.
		{Date: "2024-03-06", ClockIn: "08:00:00", LunchOut: "12:00:00", ClockOut: "17:00:00"},
		{Date: "2024-03-06", ClockOut: "17:00:00"},
	}
	for _, row := range cases {
		day := reconcile.Day(row)
		assert.Equal(t, reconcile.Incomplete, day.Status, "row %+v", row)
		assert.Zero(t, day.Worked, "row %+v", row)
		assert.Zero(t, day.Balance, "row %+v", row)
	}
}

func TestDayUnparseable(t *testing.T) {
	badDate := reconcile.Day(model.LedgerRow{Date: "2024-13-40", ClockIn: "08:00:00", ClockOut: "12:00:00"})
	assert.Equal(t, reconcile.Unparseable, badDate.Status)
	assert.Empty(t, badDate.WeekdayLabel)

	badTime := reconcile.Day(model.LedgerRow{Date: "2024-03-06", ClockIn: "8h00", ClockOut: "12:00:00"})
	assert.Equal(t, reconcile.Unparseable, badTime.Status)
	assert.Equal(t, "Quarta-feira", badTime.WeekdayLabel)
}

func TestReconcileDegradesPerRow(t *testing.T) {
	rows := []model.LedgerRow{
		{Date: "2024-13-40", ClockIn: "08:00:00"},
		{Date: "2024-03-06", ClockIn: "08:00:00", LunchOut: "12:00:00", LunchIn: "13:00:00", ClockOut: "17:30:00"},
	}

	reports := reconcile.Reconcile(rows)
	require.Len(t, reports, 2)
	assert.Equal(t, reconcile.Unparseable, reports[0].Status)
	assert.Equal(t, reconcile.Computed, reports[1].Status)
}

func TestSortByDateDesc(t *testing.T) {
	reports := reconcile.Reconcile([]model.LedgerRow{
		{Date: "2024-03-06"},
		{Date: "2024-03-11"},
		{Date: "2024-03-09"},
	})
	reconcile.SortByDateDesc(reports)

	var dates []string
	for _, r := range reports {
		dates = append(dates, r.Row.Date)
	}
	assert.Equal(t, []string{"2024-03-11", "2024-03-09", "2024-03-06"}, dates)
}

func TestSortByDateDescStable(t *testing.T) {
	// Equal dates keep arrival order.
	reports := reconcile.Reconcile([]model.LedgerRow{
		{User: "a", Date: "2024-03-06"},
		{User: "b", Date: "2024-03-06"},
		{User: "c", Date: "2024-03-06"},
	})
	reconcile.SortByDateDesc(reports)

	var users []string
	for _, r := range reports {
		users = append(users, r.Row.User)
	}
	assert.Equal(t, []string{"a", "b", "c"}, users)
}
