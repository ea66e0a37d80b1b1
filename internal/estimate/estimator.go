package estimate

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/billing-estimator/internal/cost"
	"github.com/sells-group/billing-estimator/internal/model"
)

// Fixed industry benchmark values.
const (
	BenchmarkClaimPercentage = 95.0
	BenchmarkDenialRate      = 5.0
	BenchmarkCostPerClaim    = 6.5
	BenchmarkPaymentTime     = 30.0
)

// Benchmarks returns the fixed benchmark metrics.
func Benchmarks() model.BenchmarkMetrics {
	return model.BenchmarkMetrics{
		ClaimPercentage: BenchmarkClaimPercentage,
		DenialRate:      BenchmarkDenialRate,
		CostPerClaim:    BenchmarkCostPerClaim,
		PaymentTime:     BenchmarkPaymentTime,
	}
}

// ProviderSource supplies nearby provider benchmark entries.
type ProviderSource interface {
	Nearby(n int) []model.Provider
}

// Estimator computes a full Calculation from a validated form.
type Estimator struct {
	providers     ProviderSource
	providerCount int
	now           func() time.Time
}

// NewEstimator creates an Estimator. providers may be nil, in which case
// no nearby providers are attached to results.
func NewEstimator(providers ProviderSource, providerCount int) *Estimator {
	return &Estimator{
		providers:     providers,
		providerCount: providerCount,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// ResolveDenialRate returns the user's own denial rate when they said they
// know it, otherwise the specialty default.
func ResolveDenialRate(in model.FormInput) float64 {
	if in.KnowDenialRate == model.AnswerYes && in.DenialRate != nil {
		return *in.DenialRate
	}
	return DenialRateFor(in.Specialty)
}

// Metrics derives the user metrics for a form input.
func Metrics(in model.FormInput) (model.UserMetrics, error) {
	patients := MonthlyPatients(model.Value(in.PatientVolume), in.VolumePeriod)
	revenue := MonthlyRevenue(patients, model.Value(in.BillingAverage), model.Value(in.CollectionRate))
	denial := ResolveDenialRate(in)

	// One claim is filed per patient visit.
	claims := patients

	processing, err := cost.NewCalculator(cost.RatesFromInput(in)).Monthly(revenue, claims)
	if err != nil {
		return model.UserMetrics{}, eris.Wrap(err, "estimate: processing cost")
	}

	return model.UserMetrics{
		ClaimPercentage:       ClaimPercentage(denial),
		DenialRate:            denial,
		CostPerClaim:          cost.PerClaim(processing, claims),
		TotalMonthlyClaims:    claims,
		MonthlyPatients:       patients,
		MonthlyRevenue:        revenue,
		MonthlyProcessingCost: processing,
		PaymentTime:           model.Value(in.PaymentTime),
	}, nil
}

// Calculate runs the full estimate: user metrics, benchmarks and nearby providers.
func (e *Estimator) Calculate(ctx context.Context, in model.FormInput) (*model.Calculation, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "estimate: calculate")
	}

	user, err := Metrics(in)
	if err != nil {
		return nil, err
	}

	var providers []model.Provider
	if e.providers != nil {
		providers = e.providers.Nearby(e.providerCount)
	}

	zap.L().Info("estimate: metrics computed",
		zap.String("specialty", in.Specialty),
		zap.String("processing_type", string(in.ProcessingType)),
		zap.Float64("monthly_claims", user.TotalMonthlyClaims),
		zap.Float64("monthly_revenue", user.MonthlyRevenue),
		zap.Float64("processing_cost", user.MonthlyProcessingCost),
		zap.Float64("cost_per_claim", user.CostPerClaim),
		zap.Float64("denial_rate", user.DenialRate),
	)

	return &model.Calculation{
		User:         user,
		Benchmark:    Benchmarks(),
		Providers:    providers,
		CalculatedAt: e.now(),
	}, nil
}
