// Package mocks provides test doubles for the estimate store.
package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"

	model "github.com/sells-group/billing-estimator/internal/model"
	store "github.com/sells-group/billing-estimator/internal/store"
)

// MockStore is a mock type for the Store interface.
type MockStore struct {
	mock.Mock
}

// SaveEstimate provides a mock function with given fields: ctx, in, calc
func (_m *MockStore) SaveEstimate(ctx context.Context, in model.FormInput, calc model.Calculation) (*model.Estimate, error) {
	ret := _m.Called(ctx, in, calc)

	if len(ret) == 0 {
		panic("no return value specified for SaveEstimate")
	}

	var r0 *model.Estimate
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, model.FormInput, model.Calculation) (*model.Estimate, error)); ok {
		return rf(ctx, in, calc)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Estimate)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// GetEstimate provides a mock function with given fields: ctx, id
func (_m *MockStore) GetEstimate(ctx context.Context, id string) (*model.Estimate, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for GetEstimate")
	}

	var r0 *model.Estimate
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*model.Estimate, error)); ok {
		return rf(ctx, id)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Estimate)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// ListEstimates provides a mock function with given fields: ctx, filter
func (_m *MockStore) ListEstimates(ctx context.Context, filter store.EstimateFilter) ([]model.Estimate, error) {
	ret := _m.Called(ctx, filter)

	if len(ret) == 0 {
		panic("no return value specified for ListEstimates")
	}

	var r0 []model.Estimate
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, store.EstimateFilter) ([]model.Estimate, error)); ok {
		return rf(ctx, filter)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.Estimate)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// Migrate provides a mock function with given fields: ctx
func (_m *MockStore) Migrate(ctx context.Context) error {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Migrate")
	}

	return ret.Error(0)
}

// Close provides a mock function with no fields
func (_m *MockStore) Close() error {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Close")
	}

	return ret.Error(0)
}

// NewMockStore creates a new instance of MockStore.
func NewMockStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockStore {
	mock := &MockStore{}
	mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
