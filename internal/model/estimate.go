package model

import "time"

// UserMetrics are the metrics derived from a single FormInput snapshot.
type UserMetrics struct {
	ClaimPercentage       float64 `json:"claimPercentage"`
	DenialRate            float64 `json:"denialRate"`
	CostPerClaim          float64 `json:"costPerClaim"`
	TotalMonthlyClaims    float64 `json:"totalMonthlyClaims"`
	MonthlyPatients       float64 `json:"monthlyPatients"`
	MonthlyRevenue        float64 `json:"monthlyRevenue"`
	MonthlyProcessingCost float64 `json:"monthlyProcessingCost"`
	PaymentTime           float64 `json:"paymentTime"`
}

// BenchmarkMetrics are fixed industry reference values shown next to the
// user's own metrics.
type BenchmarkMetrics struct {
	ClaimPercentage float64 `json:"claimPercentage"`
	DenialRate      float64 `json:"denialRate"`
	CostPerClaim    float64 `json:"costPerClaim"`
	PaymentTime     float64 `json:"paymentTime"`
}

// Provider is a mock "nearby provider" benchmark entry.
type Provider struct {
	Name         string  `json:"name"`
	NPI          string  `json:"npi"`
	Specialty    string  `json:"specialty"`
	SuccessRatio float64 `json:"successRatio"`
	Address      string  `json:"address"`
}

// Calculation is the full result of one estimator run.
type Calculation struct {
	User         UserMetrics      `json:"userMetrics"`
	Benchmark    BenchmarkMetrics `json:"benchmarkMetrics"`
	Providers    []Provider       `json:"nearbyProviders"`
	CalculatedAt time.Time        `json:"calculatedAt"`
}

// Estimate is a persisted calculation together with the input it was
// derived from.
type Estimate struct {
	ID          string      `json:"id"`
	Input       FormInput   `json:"input"`
	Calculation Calculation `json:"calculation"`
	CreatedAt   time.Time   `json:"createdAt"`
}
