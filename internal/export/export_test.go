package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/billing-estimator/internal/model"
)

func sampleEstimate() model.Estimate {
	return model.Estimate{
		ID: "est-1",
		Input: model.FormInput{
			Address:        "1 Main St",
			ZipCode:        "12345",
			Specialty:      "cardiology",
			PatientVolume:  model.Float(100),
			VolumePeriod:   model.VolumeMonthly,
			BillingAverage: model.Float(150),
			CollectionRate: model.Float(85),
			ProcessingType: model.ProcessingInHouse,
		},
		Calculation: model.Calculation{
			User: model.UserMetrics{
				ClaimPercentage:       90.5,
				DenialRate:            9.5,
				CostPerClaim:          80,
				TotalMonthlyClaims:    100,
				MonthlyPatients:       100,
				MonthlyRevenue:        12750,
				MonthlyProcessingCost: 8000,
				PaymentTime:           45,
			},
			Benchmark: model.BenchmarkMetrics{ClaimPercentage: 95, DenialRate: 5, CostPerClaim: 6.5, PaymentTime: 30},
			Providers: []model.Provider{
				{Name: "Lakeside Family Clinic", NPI: "1184729305", Specialty: "Family Medicine", SuccessRatio: 94.2, Address: "Chicago"},
			},
		},
		CreatedAt: time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestFormatMoney(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "$12,750.00", FormatMoney(12750))
	assert.Equal(t, "$6.50", FormatMoney(6.5))
	assert.Equal(t, "$0.00", FormatMoney(0))
	assert.Equal(t, "-$1,200.50", FormatMoney(-1200.5))
	assert.Equal(t, "$1,234,567.89", FormatMoney(1234567.891))
}

func TestFormatPercentAndCount(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "92.5%", FormatPercent(92.5))
	assert.Equal(t, "3,000", FormatCount(3000))
}

func TestMetrics_WorseThanBenchmark(t *testing.T) {
	t.Parallel()
	metrics := Metrics(sampleEstimate().Calculation)
	byLabel := make(map[string]Metric, len(metrics))
	for _, m := range metrics {
		byLabel[m.Label] = m
	}

	assert.True(t, byLabel["Claim success rate"].WorseThanBenchmark())
	assert.True(t, byLabel["Denial rate"].WorseThanBenchmark())
	assert.True(t, byLabel["Cost per claim"].WorseThanBenchmark())
	assert.False(t, byLabel["Monthly revenue"].WorseThanBenchmark())

	better := Metric{Value: 3, Benchmark: 5, HasBenchmark: true}
	assert.False(t, better.WorseThanBenchmark())
}

func TestInputRows_SkipsEmpty(t *testing.T) {
	t.Parallel()
	rows := InputRows(sampleEstimate().Input)

	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = r[0]
	}
	assert.Contains(t, labels, "Average billing")
	assert.NotContains(t, labels, "Staff wages")
	assert.Contains(t, rows, [2]string{"Collection rate", "85"})
}

func TestWriteTable(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sampleEstimate().Calculation, TableOptions{}))

	out := buf.String()
	assert.Contains(t, out, "$12,750.00")
	assert.Contains(t, out, "Cost per claim")
	assert.Contains(t, out, "Lakeside Family Clinic")
	assert.Contains(t, out, "94.2%")
	assert.NotContains(t, out, "\x1b[", "color disabled")
}

func TestWriteEstimateList(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, WriteEstimateList(&buf, []model.Estimate{sampleEstimate()}))

	out := buf.String()
	assert.Contains(t, out, "est-1")
	assert.Contains(t, out, "2026-05-01 09:30")
	assert.Contains(t, out, "$12.8K")
	assert.Contains(t, out, "$80.00")
}

func TestWriteXLSX(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleEstimate()))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, f.Sheets, 3)

	inputs := f.Sheet[SheetInputs]
	require.NotNil(t, inputs)
	assert.Equal(t, "Field", inputs.Rows[0].Cells[0].String())
	assert.Equal(t, "Address", inputs.Rows[1].Cells[0].String())
	assert.Equal(t, "1 Main St", inputs.Rows[1].Cells[1].String())

	metrics := f.Sheet[SheetMetrics]
	require.NotNil(t, metrics)
	require.Len(t, metrics.Rows, len(Metrics(sampleEstimate().Calculation))+1)
	assert.Equal(t, "Claim success rate", metrics.Rows[1].Cells[0].String())
	v, err := metrics.Rows[1].Cells[1].Float()
	require.NoError(t, err)
	assert.InDelta(t, 90.5, v, 0.0001)

	providers := f.Sheet[SheetProviders]
	require.NotNil(t, providers)
	require.Len(t, providers.Rows, 2)
	assert.Equal(t, "1184729305", providers.Rows[1].Cells[1].String())
}
