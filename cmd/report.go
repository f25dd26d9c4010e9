package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vilhena/ponto/internal/ledger"
	"github.com/vilhena/ponto/internal/reconcile"
	"github.com/vilhena/ponto/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the time-bank report",
	Long: `report reconciles every recorded day against its weekday target
(8h Monday–Friday, 4h Saturday, none on Sunday) and prints worked time
and balance, newest day first.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	reports, err := loadReports(cmd)
	if err != nil {
		fail(err)
	}
	return report.RenderTable(os.Stdout, reports)
}

// loadReports reads the ledger and reconciles the logged-in user's rows,
// sorted newest first.
func loadReports(cmd *cobra.Command) ([]reconcile.DailyReport, error) {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return nil, err
	}
	defer a.Close()

	sess := requireSession(a.sessions)

	rows, err := a.store.ReadAllRows(ctx, a.cfg.Store.LedgerTab)
	if err != nil {
		return nil, err
	}

	reports := reconcile.Reconcile(ledger.UserRows(rows, sess.Username))
	reconcile.SortByDateDesc(reports)
	return reports, nil
}
