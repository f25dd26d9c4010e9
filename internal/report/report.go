// Package report renders reconciled time-bank reports in the formats the
// CLI exposes: an aligned text table, CSV, JSON and XLSX.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/vilhena/ponto/internal/reconcile"
	"github.com/vilhena/ponto/internal/timecalc"
)

// Header lists the report columns in presentation order.
var Header = []string{"Data", "Dia", "Entrada", "Almoco_Inicio", "Almoco_Fim", "Saida", "Trabalhado", "Saldo"}

// Sentinels for days without a computed duration.
const (
	openDay    = "Em Aberto"
	invalidDay = "Inválido"
)

// Line flattens one daily report into the presentation columns.
func Line(d reconcile.DailyReport) []string {
	worked, balance := "", ""
	switch d.Status {
	case reconcile.Computed:
		worked = timecalc.FormatHHMM(d.Worked)
		balance = timecalc.FormatSignedHHMM(d.Balance)
	case reconcile.Incomplete:
		worked = openDay
	case reconcile.Unparseable:
		worked = invalidDay
	}
	return []string{
		d.Row.Date,
		d.WeekdayLabel,
		d.Row.ClockIn,
		d.Row.LunchOut,
		d.Row.LunchIn,
		d.Row.ClockOut,
		worked,
		balance,
	}
}

// column widths for the text table, padded past the longest expected cell.
var tableWidths = []int{12, 15, 15, 15, 12, 10, 12, 0}

// pad left-aligns s in a field of width runes. Cells hold accented
// Portuguese labels, so padding counts runes, not bytes.
func pad(s string, width int) string {
	if width == 0 {
		return s
	}
	for n := utf8.RuneCountInString(s); n < width; n++ {
		s += " "
	}
	return s
}

// RenderTable writes the report as an aligned text table.
func RenderTable(w io.Writer, reports []reconcile.DailyReport) error {
	if len(reports) == 0 {
		_, err := fmt.Fprintln(w, "No punches recorded.")
		return err
	}

	rows := [][]string{Header}
	for _, d := range reports {
		rows = append(rows, Line(d))
	}
	for _, row := range rows {
		line := ""
		for i, cell := range row {
			line += pad(cell, tableWidths[i])
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// RenderCSV writes the report as CSV with a header row.
func RenderCSV(w io.Writer, reports []reconcile.DailyReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, d := range reports {
		if err := cw.Write(Line(d)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonLine struct {
	Date     string `json:"date"`
	Weekday  string `json:"weekday,omitempty"`
	ClockIn  string `json:"clock_in,omitempty"`
	LunchOut string `json:"lunch_out,omitempty"`
	LunchIn  string `json:"lunch_in,omitempty"`
	ClockOut string `json:"clock_out,omitempty"`
	Worked   string `json:"worked,omitempty"`
	Balance  string `json:"balance,omitempty"`
	Status   string `json:"status"`
}

// RenderJSON writes the report as an indented JSON array.
func RenderJSON(w io.Writer, reports []reconcile.DailyReport) error {
	lines := make([]jsonLine, len(reports))
	for i, d := range reports {
		l := jsonLine{
			Date:     d.Row.Date,
			Weekday:  d.WeekdayLabel,
			ClockIn:  d.Row.ClockIn,
			LunchOut: d.Row.LunchOut,
			LunchIn:  d.Row.LunchIn,
			ClockOut: d.Row.ClockOut,
			Status:   d.Status.String(),
		}
		if d.Status == reconcile.Computed {
			l.Worked = timecalc.FormatHHMM(d.Worked)
			l.Balance = timecalc.FormatSignedHHMM(d.Balance)
		}
		lines[i] = l
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(lines)
}
