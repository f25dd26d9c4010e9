package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vilhena/ponto/internal/identity"
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Authenticate and start a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	username := args[0]

	password, err := promptPassword("Password")
	if err != nil {
		fail(err)
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		fail(err)
	}
	defer a.Close()

	users := identity.NewService(a.store, a.cfg.Store.UsersTab)
	id, err := users.Authenticate(ctx, username, password)
	if err != nil {
		fail(err)
	}

	s, err := a.sessions.Create(id)
	if err != nil {
		fail(err)
	}

	fmt.Printf("Logged in as %s (%s). Session valid until %s.\n",
		s.DisplayName, s.Username, s.ExpiresAt.Format("2006-01-02 15:04"))
	return nil
}
