// Package estimate derives practice financial metrics from estimator form input.
package estimate

import (
	"fmt"
	"math"

	"github.com/sells-group/billing-estimator/internal/model"
)

// Period multipliers converting a reported patient volume to a monthly count.
const (
	daysPerMonth  = 30
	weeksPerMonth = 4
)

// MonthlyPatients converts volume reported per period into a monthly count.
// Any period other than daily or weekly is treated as already monthly.
func MonthlyPatients(volume float64, period model.VolumePeriod) float64 {
	switch period {
	case model.VolumeDaily:
		return volume * daysPerMonth
	case model.VolumeWeekly:
		return volume * weeksPerMonth
	default:
		return volume
	}
}

// MonthlyRevenue returns the collected monthly revenue. The collection rate is
// a percentage and is clamped to [0, 100].
func MonthlyRevenue(monthlyPatients, billingAverage, collectionRate float64) float64 {
	return monthlyPatients * billingAverage * (ClampCollectionRate(collectionRate) / 100)
}

// ClampCollectionRate bounds a collection rate percentage to [0, 100].
func ClampCollectionRate(rate float64) float64 {
	return math.Max(0, math.Min(rate, 100))
}

// FormatRevenue formats a revenue amount in human-readable form.
func FormatRevenue(amount float64) string {
	switch {
	case amount >= 1_000_000_000:
		return fmt.Sprintf("$%.1fB", amount/1_000_000_000)
	case amount >= 1_000_000:
		return fmt.Sprintf("$%.1fM", amount/1_000_000)
	case amount >= 1_000:
		return fmt.Sprintf("$%.1fK", amount/1_000)
	default:
		return fmt.Sprintf("$%.0f", amount)
	}
}
