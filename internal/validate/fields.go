package validate

import (
	"regexp"

	"github.com/sells-group/billing-estimator/internal/estimate"
	"github.com/sells-group/billing-estimator/internal/model"
)

// Number of steps in the estimator form.
const (
	FirstStep = 1
	LastStep  = 3
)

// zipPattern accepts a US ZIP, a US ZIP+4, or a 6-digit PIN code.
var zipPattern = regexp.MustCompile(`^(\d{5}(-\d{4})?|\d{6})$`)

// ValidZip reports whether s is a US ZIP (12345 or 12345-6789) or a 6-digit PIN.
func ValidZip(s string) bool {
	return zipPattern.MatchString(s)
}

// value is a field's raw form value.
type value struct {
	str     string
	num     *float64
	numeric bool
}

func (v value) empty() bool {
	if v.numeric {
		return v.num == nil
	}
	return v.str == ""
}

func text(s string) value { return value{str: s} }
func number(p *float64) value { return value{num: p, numeric: true} }
func ptr(v float64) *float64 { return &v }
func always(model.FormInput) bool { return true }

// Field describes one form field and the rules it must satisfy.
type Field struct {
	Key     string
	Label   string
	Step    int
	Min     *float64
	Max     *float64
	Pattern *regexp.Regexp
	OneOf   []string

	// when reports whether the field applies to the given input.
	when func(model.FormInput) bool
	get  func(model.FormInput) value
}

// Applies reports whether the field is shown for the given input.
func (f Field) Applies(in model.FormInput) bool {
	return f.when(in)
}

func inHouse(in model.FormInput) bool { return in.ProcessingType == model.ProcessingInHouse }
func outsource(in model.FormInput) bool { return in.ProcessingType == model.ProcessingOutsource }

func pricing(p model.OutsourcePricing) func(model.FormInput) bool {
	return func(in model.FormInput) bool {
		return outsource(in) && in.OutsourcePricing == p
	}
}

// Upper bounds for open-ended numeric fields. They keep every derived
// metric finite.
const (
	MaxPatientVolume = 100_000
	MaxStaffCount    = 10_000
	MaxAmount        = 1_000_000
)

// fields is the registry of every estimator field in display order.
var fields = []Field{
	// Step 1: practice details.
	{Key: "address", Label: "Practice address", Step: 1, when: always,
		get: func(in model.FormInput) value { return text(in.Address) }},
	{Key: "zipCode", Label: "ZIP / PIN code", Step: 1, Pattern: zipPattern, when: always,
		get: func(in model.FormInput) value { return text(in.ZipCode) }},
	{Key: "specialty", Label: "Specialty", Step: 1, OneOf: estimate.SpecialtyKeys(), when: always,
		get: func(in model.FormInput) value { return text(in.Specialty) }},
	{Key: "patientVolume", Label: "Patient volume", Step: 1, Min: ptr(1), Max: ptr(MaxPatientVolume), when: always,
		get: func(in model.FormInput) value { return number(in.PatientVolume) }},
	{Key: "volumePeriod", Label: "Volume period", Step: 1, when: always,
		OneOf: []string{string(model.VolumeDaily), string(model.VolumeWeekly), string(model.VolumeMonthly)},
		get:   func(in model.FormInput) value { return text(string(in.VolumePeriod)) }},

	// Step 2: billing and collections.
	{Key: "billingAverage", Label: "Average billing per patient", Step: 2, Min: ptr(0), Max: ptr(MaxAmount), when: always,
		get: func(in model.FormInput) value { return number(in.BillingAverage) }},
	{Key: "collectionRate", Label: "Collection rate", Step: 2, Min: ptr(0), Max: ptr(100), when: always,
		get: func(in model.FormInput) value { return number(in.CollectionRate) }},
	{Key: "paymentTime", Label: "Average payment time", Step: 2, Min: ptr(0), Max: ptr(365), when: always,
		get: func(in model.FormInput) value { return number(in.PaymentTime) }},
	{Key: "knowDenialRate", Label: "Do you know your denial rate?", Step: 2, when: always,
		OneOf: []string{model.AnswerYes, model.AnswerNo},
		get:   func(in model.FormInput) value { return text(in.KnowDenialRate) }},
	{Key: "denialRate", Label: "Denial rate", Step: 2, Min: ptr(0), Max: ptr(100),
		when: func(in model.FormInput) bool { return in.KnowDenialRate == model.AnswerYes },
		get:  func(in model.FormInput) value { return number(in.DenialRate) }},

	// Step 3: claims processing.
	{Key: "processingType", Label: "Claims processing", Step: 3, when: always,
		OneOf: []string{string(model.ProcessingInHouse), string(model.ProcessingOutsource)},
		get:   func(in model.FormInput) value { return text(string(in.ProcessingType)) }},
	{Key: "staffCount", Label: "Billing staff count", Step: 3, Min: ptr(1), Max: ptr(MaxStaffCount), when: inHouse,
		get: func(in model.FormInput) value { return number(in.StaffCount) }},
	{Key: "wageType", Label: "Wage type", Step: 3, when: inHouse,
		OneOf: []string{string(model.WageHourly), string(model.WageMonthly)},
		get:   func(in model.FormInput) value { return text(string(in.WageType)) }},
	{Key: "staffWages", Label: "Staff wages", Step: 3, Min: ptr(0), Max: ptr(MaxAmount), when: inHouse,
		get: func(in model.FormInput) value { return number(in.StaffWages) }},
	{Key: "outsourcePricing", Label: "Outsourcing pricing", Step: 3, when: outsource,
		OneOf: []string{
			string(model.PricingPercentage), string(model.PricingPerClaim),
			string(model.PricingFlatMonthly), string(model.PricingHourly),
		},
		get: func(in model.FormInput) value { return text(string(in.OutsourcePricing)) }},
	{Key: "percentageValue", Label: "Percentage of revenue", Step: 3, Min: ptr(0), Max: ptr(100),
		when: pricing(model.PricingPercentage),
		get:  func(in model.FormInput) value { return number(in.PercentageValue) }},
	{Key: "perClaimValue", Label: "Fee per claim", Step: 3, Min: ptr(0), Max: ptr(MaxAmount),
		when: pricing(model.PricingPerClaim),
		get:  func(in model.FormInput) value { return number(in.PerClaimValue) }},
	{Key: "flatMonthlyValue", Label: "Flat monthly fee", Step: 3, Min: ptr(0), Max: ptr(MaxAmount),
		when: pricing(model.PricingFlatMonthly),
		get:  func(in model.FormInput) value { return number(in.FlatMonthlyValue) }},
	{Key: "hourlyValue", Label: "Hourly rate", Step: 3, Min: ptr(0), Max: ptr(MaxAmount),
		when: pricing(model.PricingHourly),
		get:  func(in model.FormInput) value { return number(in.HourlyValue) }},
}

// Fields returns the field registry in display order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// FieldsForStep returns the fields shown on step n.
func FieldsForStep(n int) []Field {
	var out []Field
	for _, f := range fields {
		if f.Step == n {
			out = append(out, f)
		}
	}
	return out
}
