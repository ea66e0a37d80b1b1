package validate

import "fmt"

// Rule names reported in FieldError.Rule.
const (
	RuleRequired = "required"
	RuleMin      = "min"
	RuleMax      = "max"
	RulePattern  = "pattern"
	RuleOneOf    = "oneOf"
	RuleNumber   = "number"
)

// messages holds the static message text keyed by field, then rule.
var messages = map[string]map[string]string{
	"address": {
		RuleRequired: "Practice address is required",
	},
	"zipCode": {
		RuleRequired: "ZIP / PIN code is required",
		RulePattern:  "Enter a valid ZIP (12345 or 12345-6789) or 6-digit PIN code",
	},
	"specialty": {
		RuleRequired: "Please select a specialty",
		RuleOneOf:    "Please select a specialty from the list",
	},
	"patientVolume": {
		RuleRequired: "Patient volume is required",
		RuleMin:      "Patient volume must be at least 1",
		RuleMax:      "Patient volume cannot exceed 100,000",
	},
	"volumePeriod": {
		RuleRequired: "Please select a volume period",
		RuleOneOf:    "Volume period must be daily, weekly or monthly",
	},
	"billingAverage": {
		RuleRequired: "Average billing amount is required",
		RuleMin:      "Average billing amount cannot be negative",
		RuleMax:      "Average billing amount cannot exceed $1,000,000",
	},
	"collectionRate": {
		RuleRequired: "Collection rate is required",
		RuleMin:      "Collection rate cannot be negative",
		RuleMax:      "Collection rate cannot exceed 100%",
	},
	"paymentTime": {
		RuleRequired: "Average payment time is required",
		RuleMin:      "Payment time cannot be negative",
		RuleMax:      "Payment time cannot exceed 365 days",
	},
	"knowDenialRate": {
		RuleRequired: "Please tell us whether you know your denial rate",
		RuleOneOf:    "Please answer yes or no",
	},
	"denialRate": {
		RuleRequired: "Denial rate is required",
		RuleMin:      "Denial rate cannot be negative",
		RuleMax:      "Denial rate cannot exceed 100%",
	},
	"processingType": {
		RuleRequired: "Please select how claims are processed",
		RuleOneOf:    "Processing type must be in-house or outsourced",
	},
	"staffCount": {
		RuleRequired: "Number of billing staff is required",
		RuleMin:      "At least one staff member is required",
		RuleMax:      "Billing staff count cannot exceed 10,000",
	},
	"wageType": {
		RuleRequired: "Please select a wage type",
		RuleOneOf:    "Wage type must be hourly or monthly",
	},
	"staffWages": {
		RuleRequired: "Staff wages are required",
		RuleMin:      "Staff wages cannot be negative",
		RuleMax:      "Staff wages cannot exceed $1,000,000",
	},
	"outsourcePricing": {
		RuleRequired: "Please select a pricing model",
		RuleOneOf:    "Please select a pricing model from the list",
	},
	"percentageValue": {
		RuleRequired: "Percentage of revenue is required",
		RuleMin:      "Percentage cannot be negative",
		RuleMax:      "Percentage cannot exceed 100%",
	},
	"perClaimValue": {
		RuleRequired: "Fee per claim is required",
		RuleMin:      "Fee per claim cannot be negative",
		RuleMax:      "Fee per claim cannot exceed $1,000,000",
	},
	"flatMonthlyValue": {
		RuleRequired: "Flat monthly fee is required",
		RuleMin:      "Flat monthly fee cannot be negative",
		RuleMax:      "Flat monthly fee cannot exceed $1,000,000",
	},
	"hourlyValue": {
		RuleRequired: "Hourly rate is required",
		RuleMin:      "Hourly rate cannot be negative",
		RuleMax:      "Hourly rate cannot exceed $1,000,000",
	},
}

// Message returns the static message for a field and violated rule.
func Message(field, rule string) string {
	if m, ok := messages[field][rule]; ok {
		return m
	}
	return fmt.Sprintf("%s is invalid", field)
}
