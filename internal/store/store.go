// Package store persists completed estimates.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/billing-estimator/internal/model"
)

// ErrNotFound is returned when an estimate id does not exist.
var ErrNotFound = eris.New("store: estimate not found")

// defaultListLimit caps ListEstimates when no limit is given.
const defaultListLimit = 100

// EstimateFilter specifies criteria for listing estimates.
type EstimateFilter struct {
	Specialty string `json:"specialty,omitempty"`
	ZipCode   string `json:"zipCode,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}

func (f EstimateFilter) limit() int {
	if f.Limit <= 0 {
		return defaultListLimit
	}
	return f.Limit
}

// Store defines the persistence interface for estimates.
type Store interface {
	SaveEstimate(ctx context.Context, in model.FormInput, calc model.Calculation) (*model.Estimate, error)
	GetEstimate(ctx context.Context, id string) (*model.Estimate, error)
	ListEstimates(ctx context.Context, filter EstimateFilter) ([]model.Estimate, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
