package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/billing-estimator/internal/estimate"
	"github.com/sells-group/billing-estimator/internal/model"
	"github.com/sells-group/billing-estimator/internal/provider"
	"github.com/sells-group/billing-estimator/internal/store/mocks"
	"github.com/sells-group/billing-estimator/internal/validate"
)

const practiceYAML = `
address: 1 Main St
zipCode: "12345"
specialty: cardiology
patientVolume: 10
volumePeriod: daily
billingAverage: 50
collectionRate: 85
paymentTime: 30
knowDenialRate: "no"
processingType: outsource
outsourcePricing: percentage
percentageValue: 5
`

func testEstimator() *estimate.Estimator {
	return estimate.NewEstimator(provider.NewDirectory(rand.New(rand.NewPCG(7, 7)), 2), 3)
}

func TestDecodeInput(t *testing.T) {
	t.Parallel()

	in, err := decodeInput(strings.NewReader(practiceYAML))
	require.NoError(t, err)
	assert.Equal(t, "12345", in.ZipCode)
	assert.Equal(t, model.VolumeDaily, in.VolumePeriod)
	assert.Equal(t, model.AnswerNo, in.KnowDenialRate)
	assert.InDelta(t, 5, model.Value(in.PercentageValue), 1e-9)
	assert.Nil(t, in.StaffCount)
}

func TestDecodeInput_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := decodeInput(strings.NewReader("zip: 12345\n"))
	assert.Error(t, err)
}

func TestRunEstimate_JSON(t *testing.T) {
	t.Parallel()

	in, err := decodeInput(strings.NewReader(practiceYAML))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runEstimate(context.Background(), &out, testEstimator(), nil, in, estimateOptions{JSON: true}))

	var got model.Estimate
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	u := got.Calculation.User
	assert.InDelta(t, 12750, u.MonthlyRevenue, 1e-9)
	assert.InDelta(t, 637.5, u.MonthlyProcessingCost, 1e-9)
	assert.InDelta(t, 2.125, u.CostPerClaim, 1e-9)
	assert.Len(t, got.Calculation.Providers, 3)
}

func TestRunEstimate_TableSaveAndXLSX(t *testing.T) {
	t.Parallel()

	in, err := decodeInput(strings.NewReader(practiceYAML))
	require.NoError(t, err)

	st := mocks.NewMockStore(t)
	st.On("SaveEstimate", mock.Anything, in, mock.Anything).
		Return(&model.Estimate{ID: "est-42", Input: in}, nil).Once()

	path := filepath.Join(t.TempDir(), "report.xlsx")
	var out bytes.Buffer
	err = runEstimate(context.Background(), &out, testEstimator(), st, in, estimateOptions{XLSX: path, NoColor: true})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "$12,750.00")
	assert.Contains(t, out.String(), "Saved estimate est-42")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRunEstimate_InvalidInput(t *testing.T) {
	t.Parallel()

	in, err := decodeInput(strings.NewReader(practiceYAML))
	require.NoError(t, err)
	in.ZipCode = "1234"
	in.PercentageValue = nil

	var out bytes.Buffer
	err = runEstimate(context.Background(), &out, testEstimator(), nil, in, estimateOptions{})
	require.Error(t, err)

	var verr *validate.Error
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, out.String(), "zipCode:")
	assert.Contains(t, out.String(), "percentageValue:")
}

func TestSpecialtiesCommand(t *testing.T) {
	var out bytes.Buffer
	specialtiesCmd.SetOut(&out)
	defer specialtiesCmd.SetOut(nil)

	require.NoError(t, specialtiesCmd.RunE(specialtiesCmd, nil))
	assert.Contains(t, out.String(), "Cardiology")
	assert.Contains(t, out.String(), "9.5%")
	assert.Contains(t, out.String(), "8.0%")
}

func TestRunEstimate_NaNFromYAMLFailsValidation(t *testing.T) {
	t.Parallel()

	in, err := decodeInput(strings.NewReader(strings.Replace(practiceYAML, "billingAverage: 50", "billingAverage: .nan", 1)))
	require.NoError(t, err)

	var out bytes.Buffer
	err = runEstimate(context.Background(), &out, testEstimator(), nil, in, estimateOptions{JSON: true})
	require.Error(t, err)

	var verr *validate.Error
	require.True(t, errors.As(err, &verr))
	fe, ok := verr.ByField("billingAverage")
	require.True(t, ok)
	assert.Equal(t, validate.RuleNumber, fe.Rule)
}
