// Package output provides utilities for formatting and displaying forecast results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/lease-forecast/internal/forecast"
	"github.com/iwvelando/lease-forecast/pkg/constants"
	"github.com/iwvelando/lease-forecast/pkg/format"
	"github.com/iwvelando/lease-forecast/pkg/lease"
	"github.com/iwvelando/lease-forecast/pkg/optimization"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Forecasts renders lease projections in the requested format.
func Forecasts(w io.Writer, outputFormat string, results []forecast.Forecast) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, results)
	case constants.OutputFormatCSV:
		return CsvFormat(w, results)
	case constants.OutputFormatJSON:
		return JSONFormat(w, results)
	case constants.OutputFormatYAML:
		return YAMLFormat(w, results)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, results []forecast.Forecast) error {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		if _, err := p.Fprintf(w, "--- Results for scenario %s (rate %.4f) ---\n", result.Name, result.Rate); err != nil {
			return err
		}
		if err := prettySchedule(p, w, result.Schedule); err != nil {
			return err
		}
		if result.GoalSeek != nil {
			if err := PrettySummary(w, *result.GoalSeek); err != nil {
				return err
			}
			if _, err := p.Fprintf(w, "--- Solved schedule for scenario %s (rate %.4f) ---\n", result.Name, result.GoalSeek.Value); err != nil {
				return err
			}
			if err := prettySchedule(p, w, result.SolvedSchedule); err != nil {
				return err
			}
		}
		if i < len(results)-1 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}
	return nil
}

func prettySchedule(p *message.Printer, w io.Writer, rows []lease.YearRow) error {
	if _, err := fmt.Fprintf(w, "Year | TSN       | Rate       | Total Revenue   | HSI | Overhaul | Total Cost    | Profit          | Cumulative Profit\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "____ | _________ | __________ | _______________ | ___ | ________ | _____________ | _______________ | _________________\n"); err != nil {
		return err
	}
	for _, row := range rows {
		_, err := p.Fprintf(w, "%4d | %9.1f | %10.4f | $%14.2f | %-3s | %-8s | $%12.2f | $%14.2f | $%.2f\n",
			row.Year, row.TSN, row.EscalatedRate, row.TotalRevenue, yesNo(row.HSI), yesNo(row.Overhaul),
			row.TotalCost, row.TotalProfit, row.CumulativeProfit)
		if err != nil {
			return err
		}
	}
	return nil
}

// PrettySummary prints a goal seek summary.
func PrettySummary(w io.Writer, summary optimization.Summary) error {
	lines := []struct {
		label string
		value string
	}{
		{"Goal seek", fmt.Sprintf("%s %s", summary.Scope, summary.TargetName)},
		{"Method", summary.Method},
		{"Target " + summary.KPI, format.Currency(summary.Target)},
		{"Achieved", format.Currency(summary.Achieved)},
		{summary.Field, fmt.Sprintf("%s -> %s", summary.OriginalDisplay, summary.ValueDisplay)},
		{"Iterations", strconv.Itoa(summary.Iterations)},
		{"Converged", strconv.FormatBool(summary.Converged)},
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "%-26s %s\n", line.label+":", line.value); err != nil {
			return err
		}
	}
	for _, note := range summary.Notes {
		if _, err := fmt.Fprintf(w, "  note: %s\n", note); err != nil {
			return err
		}
	}
	return nil
}

// CsvFormat outputs in comma-separated value format, one row per scenario
// year. Solved schedules are listed under the scenario name suffixed with
// "(solved)".
func CsvFormat(w io.Writer, results []forecast.Forecast) error {
	cw := csv.NewWriter(w)
	header := []string{"scenario", "year", "tsn", "escalatedRate", "engineRevenue", "aicRevenue",
		"totalRevenue", "hsi", "overhaul", "totalCost", "totalProfit", "cumulativeProfit"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, result := range results {
		if err := writeScheduleRows(cw, result.Name, result.Schedule); err != nil {
			return err
		}
		if result.GoalSeek != nil {
			if err := writeScheduleRows(cw, result.Name+" (solved)", result.SolvedSchedule); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeScheduleRows(cw *csv.Writer, name string, rows []lease.YearRow) error {
	for _, row := range rows {
		record := []string{
			name,
			strconv.Itoa(row.Year),
			formatFloat(row.TSN),
			formatFloat(row.EscalatedRate),
			formatFloat(row.EngineRevenue),
			formatFloat(row.AICRevenue),
			formatFloat(row.TotalRevenue),
			strconv.FormatBool(row.HSI),
			strconv.FormatBool(row.Overhaul),
			formatFloat(row.TotalCost),
			formatFloat(row.TotalProfit),
			formatFloat(row.CumulativeProfit),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
