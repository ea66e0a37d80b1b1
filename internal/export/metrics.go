package export

import (
	"fmt"
	"strconv"

	"github.com/sells-group/billing-estimator/internal/model"
)

// Kind tells renderers how to format a metric value.
type Kind int

const (
	KindCount Kind = iota
	KindMoney
	KindPercent
	KindDays
)

// Metric is one rendered row of an estimate.
type Metric struct {
	Label        string
	Value        float64
	Benchmark    float64
	HasBenchmark bool
	Kind         Kind
	// HigherIsBetter orients the comparison against the benchmark.
	HigherIsBetter bool
}

// WorseThanBenchmark reports whether the value trails its benchmark.
func (m Metric) WorseThanBenchmark() bool {
	if !m.HasBenchmark {
		return false
	}
	if m.HigherIsBetter {
		return m.Value < m.Benchmark
	}
	return m.Value > m.Benchmark
}

// Format renders v according to the metric kind.
func (m Metric) Format(v float64) string {
	switch m.Kind {
	case KindMoney:
		return FormatMoney(v)
	case KindPercent:
		return FormatPercent(v)
	case KindDays:
		return FormatCount(v) + " days"
	default:
		return FormatCount(v)
	}
}

// Metrics flattens a calculation into display rows in a fixed order.
func Metrics(c model.Calculation) []Metric {
	u, b := c.User, c.Benchmark
	return []Metric{
		{Label: "Claim success rate", Value: u.ClaimPercentage, Benchmark: b.ClaimPercentage, HasBenchmark: true, Kind: KindPercent, HigherIsBetter: true},
		{Label: "Denial rate", Value: u.DenialRate, Benchmark: b.DenialRate, HasBenchmark: true, Kind: KindPercent},
		{Label: "Cost per claim", Value: u.CostPerClaim, Benchmark: b.CostPerClaim, HasBenchmark: true, Kind: KindMoney},
		{Label: "Average payment time", Value: u.PaymentTime, Benchmark: b.PaymentTime, HasBenchmark: true, Kind: KindDays},
		{Label: "Monthly patients", Value: u.MonthlyPatients, Kind: KindCount},
		{Label: "Monthly claims", Value: u.TotalMonthlyClaims, Kind: KindCount},
		{Label: "Monthly revenue", Value: u.MonthlyRevenue, Kind: KindMoney},
		{Label: "Monthly processing cost", Value: u.MonthlyProcessingCost, Kind: KindMoney},
	}
}

// InputRows lists the entered form fields as label/value pairs, skipping
// fields that were left empty.
func InputRows(in model.FormInput) [][2]string {
	var rows [][2]string
	add := func(label, v string) {
		if v != "" {
			rows = append(rows, [2]string{label, v})
		}
	}
	num := func(label string, p *float64) {
		if p != nil {
			add(label, strconv.FormatFloat(*p, 'f', -1, 64))
		}
	}

	add("Address", in.Address)
	add("ZIP / PIN", in.ZipCode)
	add("Specialty", in.Specialty)
	num("Patient volume", in.PatientVolume)
	add("Volume period", string(in.VolumePeriod))
	num("Average billing", in.BillingAverage)
	num("Collection rate", in.CollectionRate)
	num("Payment time (days)", in.PaymentTime)
	add("Knows denial rate", in.KnowDenialRate)
	num("Denial rate", in.DenialRate)
	add("Processing type", string(in.ProcessingType))
	num("Staff count", in.StaffCount)
	add("Wage type", string(in.WageType))
	num("Staff wages", in.StaffWages)
	add("Outsource pricing", string(in.OutsourcePricing))
	num("Percentage of revenue", in.PercentageValue)
	num("Fee per claim", in.PerClaimValue)
	num("Flat monthly fee", in.FlatMonthlyValue)
	num("Hourly rate", in.HourlyValue)
	return rows
}

// ProviderRow renders a provider as table cells.
func ProviderRow(p model.Provider) []string {
	return []string{p.Name, p.NPI, p.Specialty, fmt.Sprintf("%.1f%%", p.SuccessRatio), p.Address}
}
