package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vilhena/ponto/internal/config"
	"github.com/vilhena/ponto/internal/session"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func runLogout(cmd *cobra.Command, args []string) error {
	base, err := config.BaseDir()
	if err != nil {
		fail(err)
	}
	if err := session.NewManager(base).Destroy(); err != nil {
		fail(err)
	}
	fmt.Println("Logged out.")
	return nil
}
