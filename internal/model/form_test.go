package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormInput_MergeKeepsUnsetFields(t *testing.T) {
	t.Parallel()
	f := FormInput{ZipCode: "12345", DenialRate: Float(9)}
	f.Merge(FormInput{Specialty: "neurology"})

	assert.Equal(t, "12345", f.ZipCode)
	assert.Equal(t, "neurology", f.Specialty)
	assert.InDelta(t, 9, Value(f.DenialRate), 1e-9)
}

func TestFormInput_Clear(t *testing.T) {
	t.Parallel()
	f := FormInput{
		ZipCode:          "12345",
		KnowDenialRate:   AnswerYes,
		DenialRate:       Float(9),
		ProcessingType:   ProcessingOutsource,
		OutsourcePricing: PricingHourly,
		HourlyValue:      Float(40),
	}

	unknown := f.Clear("denialRate", "hourlyValue", "outsourcePricing", "favouriteColour")

	assert.Nil(t, f.DenialRate)
	assert.Nil(t, f.HourlyValue)
	assert.Empty(t, f.OutsourcePricing)
	assert.Equal(t, "12345", f.ZipCode)
	assert.Equal(t, ProcessingOutsource, f.ProcessingType)
	assert.Equal(t, []string{"favouriteColour"}, unknown)
}
