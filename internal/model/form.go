package model

// VolumePeriod is the period the patient volume figure is reported in.
type VolumePeriod string

const (
	VolumeDaily   VolumePeriod = "daily"
	VolumeWeekly  VolumePeriod = "weekly"
	VolumeMonthly VolumePeriod = "monthly"
)

// ProcessingType selects how claims are processed by the practice.
type ProcessingType string

const (
	ProcessingInHouse   ProcessingType = "inhouse"
	ProcessingOutsource ProcessingType = "outsource"
)

// WageType describes how in-house billing staff are paid.
type WageType string

const (
	WageHourly  WageType = "hourly"
	WageMonthly WageType = "monthly"
)

// OutsourcePricing selects the pricing formula of an outsourced billing vendor.
type OutsourcePricing string

const (
	PricingPercentage  OutsourcePricing = "percentage"  // % of collected revenue
	PricingPerClaim    OutsourcePricing = "perClaim"    // flat fee per claim
	PricingFlatMonthly OutsourcePricing = "flatMonthly" // flat monthly retainer
	PricingHourly      OutsourcePricing = "hourly"      // hourly rate x 160h
)

// Yes/no answers used by the knowDenialRate field.
const (
	AnswerYes = "yes"
	AnswerNo  = "no"
)

// FormInput is the flat record of user-entered estimator fields.
// Numeric fields are pointers so that an omitted value can be told apart
// from an explicit zero.
type FormInput struct {
	// Step 1: practice details.
	Address       string       `json:"address" yaml:"address"`
	ZipCode       string       `json:"zipCode" yaml:"zipCode"`
	Specialty     string       `json:"specialty" yaml:"specialty"`
	PatientVolume *float64     `json:"patientVolume,omitempty" yaml:"patientVolume,omitempty"`
	VolumePeriod  VolumePeriod `json:"volumePeriod" yaml:"volumePeriod"`

	// Step 2: billing and collections.
	BillingAverage *float64 `json:"billingAverage,omitempty" yaml:"billingAverage,omitempty"`
	CollectionRate *float64 `json:"collectionRate,omitempty" yaml:"collectionRate,omitempty"`
	PaymentTime    *float64 `json:"paymentTime,omitempty" yaml:"paymentTime,omitempty"` // days
	KnowDenialRate string   `json:"knowDenialRate" yaml:"knowDenialRate"`
	DenialRate     *float64 `json:"denialRate,omitempty" yaml:"denialRate,omitempty"`

	// Step 3: claims processing.
	ProcessingType ProcessingType `json:"processingType" yaml:"processingType"`

	StaffCount *float64 `json:"staffCount,omitempty" yaml:"staffCount,omitempty"`
	WageType   WageType `json:"wageType,omitempty" yaml:"wageType,omitempty"`
	StaffWages *float64 `json:"staffWages,omitempty" yaml:"staffWages,omitempty"`

	OutsourcePricing OutsourcePricing `json:"outsourcePricing,omitempty" yaml:"outsourcePricing,omitempty"`
	PercentageValue  *float64         `json:"percentageValue,omitempty" yaml:"percentageValue,omitempty"`
	PerClaimValue    *float64         `json:"perClaimValue,omitempty" yaml:"perClaimValue,omitempty"`
	FlatMonthlyValue *float64         `json:"flatMonthlyValue,omitempty" yaml:"flatMonthlyValue,omitempty"`
	HourlyValue      *float64         `json:"hourlyValue,omitempty" yaml:"hourlyValue,omitempty"`
}

// Merge overlays every non-empty field of patch onto f. Empty fields in
// patch leave f unchanged; use Clear to unset a field.
func (f *FormInput) Merge(patch FormInput) {
	mergeString(&f.Address, patch.Address)
	mergeString(&f.ZipCode, patch.ZipCode)
	mergeString(&f.Specialty, patch.Specialty)
	mergeNumber(&f.PatientVolume, patch.PatientVolume)
	mergeString((*string)(&f.VolumePeriod), string(patch.VolumePeriod))

	mergeNumber(&f.BillingAverage, patch.BillingAverage)
	mergeNumber(&f.CollectionRate, patch.CollectionRate)
	mergeNumber(&f.PaymentTime, patch.PaymentTime)
	mergeString(&f.KnowDenialRate, patch.KnowDenialRate)
	mergeNumber(&f.DenialRate, patch.DenialRate)

	mergeString((*string)(&f.ProcessingType), string(patch.ProcessingType))
	mergeNumber(&f.StaffCount, patch.StaffCount)
	mergeString((*string)(&f.WageType), string(patch.WageType))
	mergeNumber(&f.StaffWages, patch.StaffWages)
	mergeString((*string)(&f.OutsourcePricing), string(patch.OutsourcePricing))
	mergeNumber(&f.PercentageValue, patch.PercentageValue)
	mergeNumber(&f.PerClaimValue, patch.PerClaimValue)
	mergeNumber(&f.FlatMonthlyValue, patch.FlatMonthlyValue)
	mergeNumber(&f.HourlyValue, patch.HourlyValue)
}

// Clear resets the fields named by their JSON keys to unanswered and
// reports the keys it did not recognise.
func (f *FormInput) Clear(keys ...string) (unknown []string) {
	for _, k := range keys {
		switch k {
		case "address":
			f.Address = ""
		case "zipCode":
			f.ZipCode = ""
		case "specialty":
			f.Specialty = ""
		case "patientVolume":
			f.PatientVolume = nil
		case "volumePeriod":
			f.VolumePeriod = ""
		case "billingAverage":
			f.BillingAverage = nil
		case "collectionRate":
			f.CollectionRate = nil
		case "paymentTime":
			f.PaymentTime = nil
		case "knowDenialRate":
			f.KnowDenialRate = ""
		case "denialRate":
			f.DenialRate = nil
		case "processingType":
			f.ProcessingType = ""
		case "staffCount":
			f.StaffCount = nil
		case "wageType":
			f.WageType = ""
		case "staffWages":
			f.StaffWages = nil
		case "outsourcePricing":
			f.OutsourcePricing = ""
		case "percentageValue":
			f.PercentageValue = nil
		case "perClaimValue":
			f.PerClaimValue = nil
		case "flatMonthlyValue":
			f.FlatMonthlyValue = nil
		case "hourlyValue":
			f.HourlyValue = nil
		default:
			unknown = append(unknown, k)
		}
	}
	return unknown
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func mergeNumber(dst **float64, v *float64) {
	if v != nil {
		n := *v
		*dst = &n
	}
}

// Float returns a pointer to v. Handy for building FormInput literals.
func Float(v float64) *float64 {
	return &v
}

// Value dereferences p, returning 0 for nil.
func Value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
