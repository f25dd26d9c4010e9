package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vilhena/ponto/internal/report"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the time-bank report",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, xlsx")
	exportCmd.Flags().StringVar(&exportOut, "out", "espelho-de-ponto.xlsx", "Output file for xlsx")
}

func runExport(cmd *cobra.Command, args []string) error {
	reports, err := loadReports(cmd)
	if err != nil {
		fail(err)
	}

	switch exportFormat {
	case "json":
		return report.RenderJSON(os.Stdout, reports)
	case "xlsx":
		if err := report.WriteXLSX(exportOut, reports); err != nil {
			fail(err)
		}
		fmt.Printf("Wrote %s.\n", exportOut)
		return nil
	case "csv":
		return report.RenderCSV(os.Stdout, reports)
	}
	return fmt.Errorf("unknown format %q (want csv, json or xlsx)", exportFormat)
}
