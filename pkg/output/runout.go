package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/iwvelando/lease-forecast/internal/forecast"
	"github.com/iwvelando/lease-forecast/internal/runout"
	"github.com/iwvelando/lease-forecast/pkg/constants"
	"github.com/iwvelando/lease-forecast/pkg/datetime"
	"github.com/iwvelando/lease-forecast/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Runout renders a runout schedule in the requested format.
func Runout(w io.Writer, outputFormat string, r *forecast.Runout) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyRunout(w, r)
	case constants.OutputFormatCSV:
		return RunoutCSV(w, r.Result)
	case constants.OutputFormatJSON:
		return JSONFormat(w, r)
	case constants.OutputFormatYAML:
		return YAMLFormat(w, r)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// PrettyRunout prints the runout periods followed by the totals and, when
// present, the goal seek summary.
func PrettyRunout(w io.Writer, r *forecast.Runout) error {
	if err := prettyRunoutResult(w, "Runout schedule", r.Result); err != nil {
		return err
	}
	if r.GoalSeek == nil {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if err := PrettySummary(w, *r.GoalSeek); err != nil {
		return err
	}
	if r.Solved == nil {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return prettyRunoutResult(w, fmt.Sprintf("Runout schedule at %s %s", r.GoalSeek.Field, r.GoalSeek.ValueDisplay), *r.Solved)
}

func prettyRunoutResult(w io.Writer, title string, result runout.Result) error {
	p := message.NewPrinter(language.English)
	if _, err := fmt.Fprintf(w, "--- %s ---\n", title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Year | Runout Start | Runout End | Days | Trend  | FH Util   | FH Revenue      | Mgmt Fee      | AIC           | Trust Load    | Buy-In        | Trust Revenue   | Cumulative\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "____ | ____________ | __________ | ____ | ______ | _________ | _______________ | _____________ | _____________ | _____________ | _____________ | _______________ | __________\n"); err != nil {
		return err
	}
	runoutDays := 0
	for _, period := range result.Periods {
		runoutDays += period.NumOfRunoutDays
		_, err := p.Fprintf(w, "%4d | %-12s | %-10s | %4d | %6.4f | %9s | $%14.2f | $%12.2f | $%12.2f | $%12.2f | $%12.2f | $%14.2f | $%.2f\n",
			period.ContractYearNumber,
			datetime.Format(period.RunoutStartDate),
			datetime.Format(period.RunoutEndDate),
			period.NumOfRunoutDays,
			period.RateTrend,
			format.Hours(periodUtilization(period)),
			period.TotalFHRevenue,
			period.MgmtFeeRevenue,
			period.AICRevenue,
			period.TrustLoadRevenue,
			period.BuyIn,
			period.TrustRevenue,
			period.CumulativeTotalRevenue,
		)
		if err != nil {
			return err
		}
	}

	totals := []struct {
		label string
		value string
	}{
		{"Runout days", format.Integer(runoutDays)},
		{"Total FH revenue", format.Currency(result.TotalFHRevenue)},
		{"Management fee revenue", format.Currency(result.MgmtFeeRevenue)},
		{"AIC revenue", format.Currency(result.AICRevenue)},
		{"Trust load revenue", format.Currency(result.TrustLoadRevenue)},
		{"Buy-in", format.Currency(result.BuyIn)},
		{"Trust revenue", format.Currency(result.TrustRevenue)},
		{"Enrollment fees", format.Currency(result.EnrollmentFees)},
		{"Cumulative total revenue", format.Currency(result.CumulativeTotalRevenue)},
	}
	for _, total := range totals {
		if _, err := fmt.Fprintf(w, "%-26s %s\n", total.label+":", total.value); err != nil {
			return err
		}
	}
	return nil
}

// periodUtilization sums the flight hours flown by every engine in the period.
func periodUtilization(period runout.ContractPeriod) float64 {
	hours := 0.0
	for _, e := range period.Engines {
		hours += e.FHUtilization
	}
	return hours
}

// runoutHeader builds the wide CSV header: period columns, then one block of
// columns per engine, then the revenue columns.
func runoutHeader(engines int) []string {
	header := []string{"StartDate", "EndDate", "NumOfDays", "RunoutStartDate", "RunoutEndDate",
		"NumOfRunoutDays", "ContractYearNumber", "RateTrend"}
	for i := 1; i <= engines; i++ {
		prefix := "Engine" + strconv.Itoa(i)
		header = append(header,
			prefix+"ID",
			prefix+"WarrantyRateDays",
			prefix+"FirstRunRateDays",
			prefix+"SecondRunRateDays",
			prefix+"ThirdRunRateDays",
			prefix+"TotalDays",
			prefix+"WarrantyCalc",
			prefix+"FirstRunRateCalc",
			prefix+"SecondRunRateCalc",
			prefix+"ThirdRunRateCalc",
			prefix+"Rates",
			prefix+"EscalatedRate",
			prefix+"FHUtilization",
			prefix+"Shortfall",
			prefix+"FHRevenue",
		)
	}
	return append(header, "TotalFHRevenue", "MgmtFeeRevenue", "AICRevenue", "TrustLoadRevenue",
		"BuyIn", "TrustRevenue", "TotalRevenue", "CumulativeTotalRevenue")
}

// RunoutCSV writes one row per contract period.
func RunoutCSV(w io.Writer, result runout.Result) error {
	engines := 0
	if len(result.Periods) > 0 {
		engines = len(result.Periods[0].Engines)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(runoutHeader(engines)); err != nil {
		return err
	}
	for _, period := range result.Periods {
		record := []string{
			datetime.Format(period.StartDate),
			datetime.Format(period.EndDate),
			strconv.Itoa(period.NumOfDays),
			datetime.Format(period.RunoutStartDate),
			datetime.Format(period.RunoutEndDate),
			strconv.Itoa(period.NumOfRunoutDays),
			strconv.Itoa(period.ContractYearNumber),
			formatFloat(period.RateTrend),
		}
		for _, e := range period.Engines {
			record = append(record,
				e.EngineID,
				strconv.Itoa(e.WarrantyRateDays),
				strconv.Itoa(e.FirstRunRateDays),
				strconv.Itoa(e.SecondRunRateDays),
				strconv.Itoa(e.ThirdRunRateDays),
				strconv.Itoa(e.TotalDays),
				formatFloat(e.WarrantyCalc),
				formatFloat(e.FirstRunRateCalc),
				formatFloat(e.SecondRunRateCalc),
				formatFloat(e.ThirdRunRateCalc),
				formatFloat(e.Rates),
				formatFloat(e.EscalatedRate),
				formatFloat(e.FHUtilization),
				formatFloat(e.Shortfall),
				formatFloat(e.FHRevenue),
			)
		}
		record = append(record,
			formatFloat(period.TotalFHRevenue),
			formatFloat(period.MgmtFeeRevenue),
			formatFloat(period.AICRevenue),
			formatFloat(period.TrustLoadRevenue),
			formatFloat(period.BuyIn),
			formatFloat(period.TrustRevenue),
			formatFloat(period.TotalRevenue),
			formatFloat(period.CumulativeTotalRevenue),
		)
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRunoutCSV exports the runout schedule to path, replacing any existing
// file.
func WriteRunoutCSV(path string, result runout.Result) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := RunoutCSV(f, result); err != nil {
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	return nil
}
