// Package wizard implements the three-step estimator form as a small state
// machine: edit fields, advance step by step with per-step validation, then
// calculate.
package wizard

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/billing-estimator/internal/model"
	"github.com/sells-group/billing-estimator/internal/validate"
)

// Status is the lifecycle state of a form session.
type Status string

const (
	StatusEditing     Status = "editing"
	StatusCalculating Status = "calculating"
	StatusComplete    Status = "complete"
	StatusFailed      Status = "failed"
)

// CalculationFailedMessage is the notification shown when a calculation fails.
const CalculationFailedMessage = "We couldn't calculate your estimate. Please try again."

// ErrCalculationFailed matches any failure of the calculation step.
var ErrCalculationFailed = eris.New("wizard: calculation failed")

// CalculationError carries the cause of a failed calculation. It matches
// ErrCalculationFailed with errors.Is and unwraps to the cause.
type CalculationError struct {
	Err error
}

func (e *CalculationError) Error() string {
	return "wizard: calculation failed: " + e.Err.Error()
}

func (e *CalculationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrCalculationFailed.
func (e *CalculationError) Is(target error) bool {
	return target == ErrCalculationFailed
}

// Calculator computes results for a completed form.
type Calculator interface {
	Calculate(ctx context.Context, in model.FormInput) (*model.Calculation, error)
}

// Session is one user's pass through the estimator form.
type Session struct {
	ID           string             `json:"id"`
	Step         int                `json:"step"`
	Status       Status             `json:"status"`
	Input        model.FormInput    `json:"input"`
	Result       *model.Calculation `json:"result,omitempty"`
	Notification string             `json:"notification,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// NewSession returns a session positioned on the first step.
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Step:      validate.FirstStep,
		Status:    StatusEditing,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Update merges patch into the form. Editing a finished session returns it
// to the editing state and discards the stale result.
func (s *Session) Update(patch model.FormInput) {
	s.Input.Merge(patch)
	s.edited()
}

// Clear unsets the named fields (JSON keys) and, like Update, discards any
// stale result.
func (s *Session) Clear(keys ...string) {
	s.Input.Clear(keys...)
	s.edited()
}

func (s *Session) edited() {
	s.Result = nil
	s.Notification = ""
	s.Status = StatusEditing
}

// Next validates the current step and advances. On the last step it
// validates and stays put.
func (s *Session) Next() error {
	if err := validate.Step(s.Input, s.Step); err != nil {
		return err
	}
	if s.Step < validate.LastStep {
		s.Step++
	}
	return nil
}

// Back returns to the previous step without validating.
func (s *Session) Back() {
	if s.Step > validate.FirstStep {
		s.Step--
	}
}

// Reset clears all input and results and returns to the first step.
func (s *Session) Reset() {
	s.Input = model.FormInput{}
	s.Result = nil
	s.Notification = ""
	s.Step = validate.FirstStep
	s.Status = StatusEditing
}

// Calculate validates the whole form, waits delay to mimic a round trip,
// then computes the result. Validation failures leave the session editable;
// calculation failures mark it failed with a generic notification.
func (s *Session) Calculate(ctx context.Context, calc Calculator, delay time.Duration) error {
	if err := validate.Form(s.Input); err != nil {
		return err
	}

	s.Status = StatusCalculating
	s.Notification = ""

	if err := wait(ctx, delay); err != nil {
		s.Status = StatusEditing
		return eris.Wrap(err, "wizard: calculation cancelled")
	}

	result, err := calc.Calculate(ctx, s.Input)
	if err != nil {
		zap.L().Error("wizard: calculation failed",
			zap.String("session_id", s.ID),
			zap.Error(err),
		)
		s.Status = StatusFailed
		s.Notification = CalculationFailedMessage
		return &CalculationError{Err: err}
	}

	s.Result = result
	s.Status = StatusComplete
	return nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
