package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vilhena/ponto/internal/ledger"
	"github.com/vilhena/ponto/internal/model"
	"github.com/vilhena/ponto/internal/reconcile"
	"github.com/vilhena/ponto/internal/timecalc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's punches",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		fail(err)
	}
	defer a.Close()

	sess := requireSession(a.sessions)
	now := a.clock.Stamp()

	recorder := ledger.NewRecorder(a.store, a.cfg.Store.LedgerTab)
	row, ok, err := recorder.Today(ctx, sess.Username, now.Date)
	if err != nil {
		fail(err)
	}

	fmt.Printf("%s (%s)\n", now.Date, reconcile.WeekdayLabel(a.clock.Now().Weekday()))
	if !ok {
		fmt.Println("No punches yet today.")
		return nil
	}

	for _, e := range model.Events {
		v := row.Time(e)
		if v == "" {
			v = "—"
		}
		fmt.Printf("  %-14s %s\n", e.Label(), v)
	}

	day := reconcile.Day(row)
	switch day.Status {
	case reconcile.Computed:
		fmt.Printf("Worked %s of %s (%s).\n",
			timecalc.FormatHHMM(day.Worked),
			timecalc.FormatHHMM(day.Target),
			timecalc.FormatSignedHHMM(day.Balance))
	case reconcile.Incomplete:
		fmt.Println("Day still open.")
	}
	return nil
}
