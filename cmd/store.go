package main

import (
	"context"
	"math/rand/v2"

	"github.com/rotisserie/eris"

	"github.com/sells-group/billing-estimator/internal/estimate"
	"github.com/sells-group/billing-estimator/internal/provider"
	"github.com/sells-group/billing-estimator/internal/resilience"
	"github.com/sells-group/billing-estimator/internal/store"
)

// initStore opens the configured estimate store. An empty driver or "none"
// disables history and returns a nil store.
func initStore(ctx context.Context) (store.Store, error) {
	st, err := openDriver(ctx)
	if err != nil || st == nil {
		return nil, err
	}
	retry := resilience.DefaultRetryConfig()
	retry.MaxAttempts = cfg.Store.RetryAttempts
	return store.WithRetry(st, retry), nil
}

func openDriver(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "", "none":
		return nil, nil
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "estimates.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// openStore opens the store and applies migrations. History commands need
// one, so a disabled store is an error here.
func openStore(ctx context.Context) (store.Store, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, eris.New("estimate history is disabled (set ESTIMATOR_STORE_DRIVER)")
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

func initEstimator() *estimate.Estimator {
	var rng *rand.Rand
	if cfg.Estimator.Seed != 0 {
		rng = rand.New(rand.NewPCG(cfg.Estimator.Seed, cfg.Estimator.Seed))
	}
	dir := provider.NewDirectory(rng, cfg.Estimator.ProviderMaxOffset)
	return estimate.NewEstimator(dir, cfg.Estimator.ProviderCount)
}
