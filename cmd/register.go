package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vilhena/ponto/internal/identity"
)

var registerName string

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create a new account",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegister,
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "Display name (default: the username)")
}

func runRegister(cmd *cobra.Command, args []string) error {
	username := args[0]
	displayName := registerName
	if displayName == "" {
		displayName = username
	}

	password, err := promptPassword("Password")
	if err != nil {
		fail(err)
	}
	confirm, err := promptPassword("Confirm password")
	if err != nil {
		fail(err)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		fail(err)
	}
	defer a.Close()

	users := identity.NewService(a.store, a.cfg.Store.UsersTab)
	id, err := users.Register(ctx, username, password, displayName)
	if err != nil {
		fail(err)
	}

	fmt.Printf("Account %q created. Run \"ponto login %s\" to start punching.\n", id.Username, id.Username)
	return nil
}
