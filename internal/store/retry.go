package store

import (
	"context"

	"github.com/sells-group/billing-estimator/internal/model"
	"github.com/sells-group/billing-estimator/internal/resilience"
)

// RetryingStore retries transient failures of the wrapped store.
type RetryingStore struct {
	Store
	cfg resilience.RetryConfig
}

// WithRetry wraps st so reads and writes survive brief lock contention or
// dropped connections. Migrate and Close are passed through untouched.
func WithRetry(st Store, cfg resilience.RetryConfig) *RetryingStore {
	return &RetryingStore{Store: st, cfg: cfg}
}

func (r *RetryingStore) withLogger(op string) resilience.RetryConfig {
	cfg := r.cfg
	if cfg.OnRetry == nil {
		cfg.OnRetry = resilience.RetryLogger(op)
	}
	return cfg
}

// SaveEstimate implements Store.
func (r *RetryingStore) SaveEstimate(ctx context.Context, in model.FormInput, calc model.Calculation) (*model.Estimate, error) {
	return resilience.Do(ctx, r.withLogger("store.save_estimate"), func(ctx context.Context) (*model.Estimate, error) {
		return r.Store.SaveEstimate(ctx, in, calc)
	})
}

// GetEstimate implements Store.
func (r *RetryingStore) GetEstimate(ctx context.Context, id string) (*model.Estimate, error) {
	return resilience.Do(ctx, r.withLogger("store.get_estimate"), func(ctx context.Context) (*model.Estimate, error) {
		return r.Store.GetEstimate(ctx, id)
	})
}

// ListEstimates implements Store.
func (r *RetryingStore) ListEstimates(ctx context.Context, filter EstimateFilter) ([]model.Estimate, error) {
	return resilience.Do(ctx, r.withLogger("store.list_estimates"), func(ctx context.Context) ([]model.Estimate, error) {
		return r.Store.ListEstimates(ctx, filter)
	})
}
