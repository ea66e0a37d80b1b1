package export

import (
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/rotisserie/eris"

	"github.com/sells-group/billing-estimator/internal/estimate"
	"github.com/sells-group/billing-estimator/internal/model"
)

// TableOptions controls terminal rendering.
type TableOptions struct {
	// Color highlights metrics that trail their benchmark.
	Color bool
}

// WriteTable renders the metrics and nearby providers of a calculation as
// terminal tables.
func WriteTable(w io.Writer, c model.Calculation, opts TableOptions) error {
	bad := color.New(color.FgRed, color.Bold)
	good := color.New(color.FgGreen)
	if opts.Color {
		bad.EnableColor()
		good.EnableColor()
	} else {
		bad.DisableColor()
		good.DisableColor()
	}

	metrics := tablewriter.NewWriter(w)
	metrics.Header("Metric", "Your Practice", "Benchmark")
	for _, m := range Metrics(c) {
		value := m.Format(m.Value)
		bench := ""
		if m.HasBenchmark {
			bench = m.Format(m.Benchmark)
			if m.WorseThanBenchmark() {
				value = bad.Sprint(value)
			} else {
				value = good.Sprint(value)
			}
		}
		if err := metrics.Append([]string{m.Label, value, bench}); err != nil {
			return eris.Wrap(err, "table: append metric")
		}
	}
	if err := metrics.Render(); err != nil {
		return eris.Wrap(err, "table: render metrics")
	}

	if len(c.Providers) == 0 {
		return nil
	}

	providers := tablewriter.NewWriter(w)
	providers.Header("Nearby Provider", "NPI", "Specialty", "Success", "Address")
	for _, p := range c.Providers {
		if err := providers.Append(ProviderRow(p)); err != nil {
			return eris.Wrap(err, "table: append provider")
		}
	}
	return eris.Wrap(providers.Render(), "table: render providers")
}

// WriteEstimateList renders a short history listing.
func WriteEstimateList(w io.Writer, estimates []model.Estimate) error {
	t := tablewriter.NewWriter(w)
	t.Header("ID", "Created", "Specialty", "ZIP", "Monthly Revenue", "Cost / Claim")
	for _, e := range estimates {
		row := []string{
			e.ID,
			e.CreatedAt.Format("2006-01-02 15:04"),
			e.Input.Specialty,
			e.Input.ZipCode,
			estimate.FormatRevenue(e.Calculation.User.MonthlyRevenue),
			FormatMoney(e.Calculation.User.CostPerClaim),
		}
		if err := t.Append(row); err != nil {
			return eris.Wrap(err, "table: append estimate")
		}
	}
	return eris.Wrap(t.Render(), "table: render estimates")
}
