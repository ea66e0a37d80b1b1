package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/billing-estimator/internal/model"
	"github.com/sells-group/billing-estimator/internal/validate"
)

type stubCalc struct {
	err   error
	calls int
}

func (c *stubCalc) Calculate(_ context.Context, in model.FormInput) (*model.Calculation, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &model.Calculation{User: model.UserMetrics{TotalMonthlyClaims: model.Value(in.PatientVolume)}}, nil
}

func step1() model.FormInput {
	return model.FormInput{
		Address:       "1 Main St",
		ZipCode:       "12345-6789",
		Specialty:     "dermatology",
		PatientVolume: model.Float(100),
		VolumePeriod:  model.VolumeMonthly,
	}
}

func step2() model.FormInput {
	return model.FormInput{
		BillingAverage: model.Float(150),
		CollectionRate: model.Float(85),
		PaymentTime:    model.Float(30),
		KnowDenialRate: model.AnswerNo,
	}
}

func step3() model.FormInput {
	return model.FormInput{
		ProcessingType: model.ProcessingInHouse,
		StaffCount:     model.Float(2),
		WageType:       model.WageMonthly,
		StaffWages:     model.Float(4000),
	}
}

func TestSession_StepNavigation(t *testing.T) {
	t.Parallel()
	s := NewSession("s1", time.Now())
	assert.Equal(t, 1, s.Step)

	err := s.Next()
	require.Error(t, err)
	var verr *validate.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, s.Step)

	s.Update(step1())
	require.NoError(t, s.Next())
	assert.Equal(t, 2, s.Step)

	s.Back()
	assert.Equal(t, 1, s.Step)
	s.Back()
	assert.Equal(t, 1, s.Step)

	require.NoError(t, s.Next())
	s.Update(step2())
	require.NoError(t, s.Next())
	assert.Equal(t, 3, s.Step)

	s.Update(step3())
	require.NoError(t, s.Next())
	assert.Equal(t, 3, s.Step, "last step does not advance")
}

func TestSession_CalculateRequiresValidForm(t *testing.T) {
	t.Parallel()
	s := NewSession("s1", time.Now())
	s.Update(step1())
	calc := &stubCalc{}

	err := s.Calculate(context.Background(), calc, 0)
	require.Error(t, err)
	assert.Equal(t, StatusEditing, s.Status)
	assert.Zero(t, calc.calls)
}

func TestSession_CalculateSuccess(t *testing.T) {
	t.Parallel()
	s := NewSession("s1", time.Now())
	s.Update(step1())
	s.Update(step2())
	s.Update(step3())

	require.NoError(t, s.Calculate(context.Background(), &stubCalc{}, time.Millisecond))
	assert.Equal(t, StatusComplete, s.Status)
	require.NotNil(t, s.Result)
	assert.Equal(t, 100.0, s.Result.User.TotalMonthlyClaims)

	s.Update(model.FormInput{PatientVolume: model.Float(5)})
	assert.Nil(t, s.Result, "editing discards stale results")
	assert.Equal(t, StatusEditing, s.Status)
}

func TestSession_CalculateFailure(t *testing.T) {
	t.Parallel()
	s := NewSession("s1", time.Now())
	s.Update(step1())
	s.Update(step2())
	s.Update(step3())

	cause := errors.New("boom")
	err := s.Calculate(context.Background(), &stubCalc{err: cause}, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCalculationFailed))
	assert.True(t, errors.Is(err, cause), "cause stays reachable")
	var calcErr *CalculationError
	require.True(t, errors.As(err, &calcErr))
	assert.Equal(t, cause, calcErr.Err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, StatusFailed, s.Status)
	assert.Equal(t, CalculationFailedMessage, s.Notification)
}

func TestSession_CalculateCancelledDuringDelay(t *testing.T) {
	t.Parallel()
	s := NewSession("s1", time.Now())
	s.Update(step1())
	s.Update(step2())
	s.Update(step3())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calc := &stubCalc{}

	err := s.Calculate(ctx, calc, time.Hour)
	require.Error(t, err)
	assert.Equal(t, StatusEditing, s.Status)
	assert.Zero(t, calc.calls)
}

func TestSession_Reset(t *testing.T) {
	t.Parallel()
	s := NewSession("s1", time.Now())
	s.Update(step1())
	require.NoError(t, s.Next())

	s.Reset()
	assert.Equal(t, 1, s.Step)
	assert.Equal(t, model.FormInput{}, s.Input)
	assert.Equal(t, StatusEditing, s.Status)
}

func TestManager_Lifecycle(t *testing.T) {
	t.Parallel()
	m := NewManager(&stubCalc{}, ManagerConfig{})

	created := m.Create()
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 1, m.Len())

	snap, err := m.Do(created.ID, func(s *Session) error {
		s.Update(step1())
		return s.Next()
	})
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Step)

	_, err = m.Do(created.ID, func(s *Session) error {
		s.Update(step2())
		s.Update(step3())
		return nil
	})
	require.NoError(t, err)

	snap, err = m.Calculate(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusComplete, snap.Status)

	got, err := m.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusComplete, got.Status)

	require.NoError(t, m.Delete(created.ID))
	_, err = m.Get(created.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(m.Delete(created.ID), ErrNotFound))
}

func TestManager_Sweep(t *testing.T) {
	t.Parallel()
	m := NewManager(&stubCalc{}, ManagerConfig{TTL: time.Minute})
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }

	stale := m.Create()
	m.now = func() time.Time { return base.Add(50 * time.Second) }
	fresh := m.Create()

	m.now = func() time.Time { return base.Add(90 * time.Second) }
	assert.Equal(t, 1, m.Sweep())

	_, err := m.Get(stale.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = m.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestManager_SweepDisabled(t *testing.T) {
	t.Parallel()
	m := NewManager(&stubCalc{}, ManagerConfig{})
	m.Create()
	assert.Zero(t, m.Sweep())
	assert.Equal(t, 1, m.Len())
}

func TestManager_RunStopsOnCancel(t *testing.T) {
	t.Parallel()
	m := NewManager(&stubCalc{}, ManagerConfig{TTL: time.Minute})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx, time.Millisecond) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
