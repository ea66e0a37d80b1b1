package estimate

import (
	"math"
	"sort"
)

// DefaultDenialRate is used for specialties without a published default.
const DefaultDenialRate = 8.0

// Displayed claim-success percentage bounds.
const (
	MinClaimPercentage = 60.0
	MaxClaimPercentage = 98.0
)

// Specialty describes a practice specialty offered by the form.
type Specialty struct {
	Key        string  `json:"key"`
	Label      string  `json:"label"`
	DenialRate float64 `json:"denialRate"`
}

// specialties lists the supported specialties with their typical denial rate (%).
var specialties = map[string]Specialty{
	"cardiology":       {Key: "cardiology", Label: "Cardiology", DenialRate: 9.5},
	"dermatology":      {Key: "dermatology", Label: "Dermatology", DenialRate: 6.5},
	"familyMedicine":   {Key: "familyMedicine", Label: "Family Medicine", DenialRate: 7.0},
	"internalMedicine": {Key: "internalMedicine", Label: "Internal Medicine", DenialRate: 7.5},
	"neurology":        {Key: "neurology", Label: "Neurology", DenialRate: 9.2},
	"obgyn":            {Key: "obgyn", Label: "OB/GYN", DenialRate: 8.8},
	"orthopedics":      {Key: "orthopedics", Label: "Orthopedics", DenialRate: 9.0},
	"pediatrics":       {Key: "pediatrics", Label: "Pediatrics", DenialRate: 6.0},
	"psychiatry":       {Key: "psychiatry", Label: "Psychiatry", DenialRate: 10.5},
	"radiology":        {Key: "radiology", Label: "Radiology", DenialRate: 8.5},
}

// DenialRateFor returns the default denial rate for a specialty key.
func DenialRateFor(specialty string) float64 {
	if s, ok := specialties[specialty]; ok {
		return s.DenialRate
	}
	return DefaultDenialRate
}

// IsSpecialty reports whether key names a supported specialty.
func IsSpecialty(key string) bool {
	_, ok := specialties[key]
	return ok
}

// Specialties returns all supported specialties sorted by label.
func Specialties() []Specialty {
	out := make([]Specialty, 0, len(specialties))
	for _, s := range specialties {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// SpecialtyKeys returns the supported specialty keys in label order.
func SpecialtyKeys() []string {
	list := Specialties()
	keys := make([]string, len(list))
	for i, s := range list {
		keys[i] = s.Key
	}
	return keys
}

// ClaimPercentage is the displayed claim-success percentage for a denial
// rate, clamped to [MinClaimPercentage, MaxClaimPercentage].
func ClaimPercentage(denialRate float64) float64 {
	pct := 100 - denialRate
	if math.IsNaN(pct) {
		return MinClaimPercentage
	}
	pct = math.Min(pct, MaxClaimPercentage)
	pct = math.Max(pct, MinClaimPercentage)
	return pct
}
