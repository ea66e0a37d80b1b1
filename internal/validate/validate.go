// Package validate checks estimator form input field by field and step by step.
package validate

import (
	"math"
	"slices"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/billing-estimator/internal/model"
)

// FieldError is a single violated rule on a single field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Error collects every field error found in one validation pass.
type Error struct {
	Fields []FieldError `json:"fields"`
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ByField returns the first error recorded for field, if any.
func (e *Error) ByField(field string) (FieldError, bool) {
	for _, f := range e.Fields {
		if f.Field == field {
			return f, true
		}
	}
	return FieldError{}, false
}

// Step validates only the fields shown on step n.
func Step(in model.FormInput, n int) error {
	if n < FirstStep || n > LastStep {
		return eris.Errorf("validate: step %d out of range", n)
	}
	return check(in, FieldsForStep(n))
}

// Form validates every applicable field of the form.
func Form(in model.FormInput) error {
	return check(in, fields)
}

func check(in model.FormInput, list []Field) error {
	var errs []FieldError
	for _, f := range list {
		if !f.Applies(in) {
			continue
		}
		rule, bad := violated(f, f.get(in))
		if !bad {
			continue
		}
		msg := Message(f.Key, rule)
		if rule == RuleNumber {
			msg = f.Label + " must be a finite number"
		}
		errs = append(errs, FieldError{Field: f.Key, Rule: rule, Message: msg})
	}
	if len(errs) == 0 {
		return nil
	}
	return &Error{Fields: errs}
}

// violated returns the first rule the value breaks. Every field is required.
func violated(f Field, v value) (string, bool) {
	if v.empty() {
		return RuleRequired, true
	}
	if v.numeric {
		n := *v.num
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return RuleNumber, true
		}
		if f.Min != nil && n < *f.Min {
			return RuleMin, true
		}
		if f.Max != nil && n > *f.Max {
			return RuleMax, true
		}
		return "", false
	}

	s := strings.TrimSpace(v.str)
	if s == "" {
		return RuleRequired, true
	}
	if f.Pattern != nil && !f.Pattern.MatchString(s) {
		return RulePattern, true
	}
	if len(f.OneOf) > 0 && !slices.Contains(f.OneOf, s) {
		return RuleOneOf, true
	}
	return "", false
}
