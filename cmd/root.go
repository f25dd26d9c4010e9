package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vilhena/ponto/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "ponto",
	Short: "Ponto – a punch clock backed by Google Sheets",
	Long: `ponto records clock-in/clock-out punches into a shared Google Sheet
and derives a time-bank report (worked vs. target hours per day).
Corrections are made directly in the sheet; ponto never overwrites a
recorded punch.`,
}

// Execute is the entry point called from main.
func Execute() {
	logging.Setup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(punchCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
}
