package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vilhena/ponto/internal/ledger"
	"github.com/vilhena/ponto/internal/model"
)

var punchCmd = &cobra.Command{
	Use:   "punch <in|lunch-out|lunch-in|out>",
	Short: "Record a punch for today",
	Long: `punch records one of the four daily events:

  in         clock in (Entrada)
  lunch-out  leave for lunch (Almoco_Inicio)
  lunch-in   back from lunch (Almoco_Fim)
  out        clock out (Saida)

Each event is recorded at most once per day; punching again shows the
time already on record.`,
	Args: cobra.ExactArgs(1),
	RunE: runPunch,
}

// parseEvent maps a CLI event name to its ledger event.
func parseEvent(s string) (model.Event, error) {
	switch s {
	case "in":
		return model.ClockIn, nil
	case "lunch-out":
		return model.LunchOut, nil
	case "lunch-in":
		return model.LunchIn, nil
	case "out":
		return model.ClockOut, nil
	}
	return 0, fmt.Errorf("unknown event %q (want in, lunch-out, lunch-in or out)", s)
}

func runPunch(cmd *cobra.Command, args []string) error {
	event, err := parseEvent(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		fail(err)
	}
	defer a.Close()

	sess := requireSession(a.sessions)
	now := a.clock.Stamp()

	recorder := ledger.NewRecorder(a.store, a.cfg.Store.LedgerTab)
	outcome, err := recorder.Record(ctx, sess.Username, event, now)
	if err != nil {
		fail(err)
	}

	switch outcome.Kind {
	case ledger.Created:
		fmt.Printf("Day started! %s recorded at %s.\n", event.Label(), outcome.At)
	case ledger.Updated:
		fmt.Printf("%s recorded at %s.\n", event.Label(), outcome.At)
	case ledger.Rejected:
		fmt.Printf("You already punched %s today, at %s.\n", event.Label(), outcome.At)
	}
	return nil
}
