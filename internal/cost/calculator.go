// Package cost computes monthly claims-processing cost for a practice.
package cost

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/billing-estimator/internal/model"
)

// HoursPerMonth is the number of paid hours assumed per staff member per month.
const HoursPerMonth = 160

// Rates holds the processing cost inputs extracted from a form.
type Rates struct {
	Type model.ProcessingType
	// In-house staffing.
	StaffCount float64
	WageType   model.WageType
	StaffWages float64
	// Outsourced billing vendor.
	Pricing     model.OutsourcePricing
	Percentage  float64
	PerClaim    float64
	FlatMonthly float64
	Hourly      float64
}

// RatesFromInput extracts processing rates from form input.
func RatesFromInput(in model.FormInput) Rates {
	return Rates{
		Type:        in.ProcessingType,
		StaffCount:  model.Value(in.StaffCount),
		WageType:    in.WageType,
		StaffWages:  model.Value(in.StaffWages),
		Pricing:     in.OutsourcePricing,
		Percentage:  model.Value(in.PercentageValue),
		PerClaim:    model.Value(in.PerClaimValue),
		FlatMonthly: model.Value(in.FlatMonthlyValue),
		Hourly:      model.Value(in.HourlyValue),
	}
}

// Calculator computes processing costs for a set of rates.
type Calculator struct {
	rates Rates
}

// NewCalculator creates a Calculator with the given rates.
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// Monthly returns the monthly processing cost given the practice's collected
// monthly revenue and monthly claim count.
func (c *Calculator) Monthly(monthlyRevenue, monthlyClaims float64) (float64, error) {
	switch c.rates.Type {
	case model.ProcessingInHouse:
		return c.InHouse(), nil
	case model.ProcessingOutsource:
		return c.Outsourced(monthlyRevenue, monthlyClaims)
	default:
		return 0, eris.Errorf("cost: unknown processing type %q", c.rates.Type)
	}
}

// InHouse returns the monthly payroll of in-house billing staff. Hourly
// wages are scaled by HoursPerMonth; any other wage type is monthly.
func (c *Calculator) InHouse() float64 {
	if c.rates.WageType == model.WageHourly {
		return c.rates.StaffWages * HoursPerMonth * c.rates.StaffCount
	}
	return c.rates.StaffWages * c.rates.StaffCount
}

// Outsourced returns the monthly fee of an outsourced billing vendor.
func (c *Calculator) Outsourced(monthlyRevenue, monthlyClaims float64) (float64, error) {
	switch c.rates.Pricing {
	case model.PricingPercentage:
		return monthlyRevenue * (c.rates.Percentage / 100), nil
	case model.PricingPerClaim:
		return c.rates.PerClaim * monthlyClaims, nil
	case model.PricingFlatMonthly:
		return c.rates.FlatMonthly, nil
	case model.PricingHourly:
		return c.rates.Hourly * HoursPerMonth, nil
	default:
		return 0, eris.Errorf("cost: unknown outsource pricing %q", c.rates.Pricing)
	}
}

// PerClaim divides a monthly cost over the monthly claim count. A
// non-positive claim count yields 0 rather than an infinite or NaN cost.
func PerClaim(monthlyCost, monthlyClaims float64) float64 {
	if monthlyClaims <= 0 {
		return 0
	}
	return monthlyCost / monthlyClaims
}
