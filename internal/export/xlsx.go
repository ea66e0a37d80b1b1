package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/billing-estimator/internal/model"
)

// Sheet names written by WriteXLSX.
const (
	SheetInputs    = "Inputs"
	SheetMetrics   = "Metrics"
	SheetProviders = "Providers"
)

const (
	moneyFormat   = `"$"#,##0.00`
	percentFormat = `0.0"%"`
	countFormat   = `#,##0`
)

// WriteXLSX writes an estimate as a workbook with input, metric and provider sheets.
func WriteXLSX(w io.Writer, est model.Estimate) error {
	f := xlsx.NewFile()

	if err := writeInputs(f, est.Input); err != nil {
		return err
	}
	if err := writeMetrics(f, est.Calculation); err != nil {
		return err
	}
	if err := writeProviders(f, est.Calculation.Providers); err != nil {
		return err
	}

	return eris.Wrap(f.Write(w), "xlsx: write workbook")
}

func addSheet(f *xlsx.File, name string, header ...string) (*xlsx.Sheet, error) {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return nil, eris.Wrapf(err, "xlsx: add sheet %s", name)
	}
	row := sheet.AddRow()
	for _, h := range header {
		row.AddCell().SetString(h)
	}
	return sheet, nil
}

func writeInputs(f *xlsx.File, in model.FormInput) error {
	sheet, err := addSheet(f, SheetInputs, "Field", "Value")
	if err != nil {
		return err
	}
	for _, kv := range InputRows(in) {
		row := sheet.AddRow()
		row.AddCell().SetString(kv[0])
		row.AddCell().SetString(kv[1])
	}
	return nil
}

func writeMetrics(f *xlsx.File, c model.Calculation) error {
	sheet, err := addSheet(f, SheetMetrics, "Metric", "Your Practice", "Benchmark")
	if err != nil {
		return err
	}
	for _, m := range Metrics(c) {
		row := sheet.AddRow()
		row.AddCell().SetString(m.Label)
		numberCell(row.AddCell(), m.Value, m.Kind)
		if m.HasBenchmark {
			numberCell(row.AddCell(), m.Benchmark, m.Kind)
		}
	}
	return nil
}

func writeProviders(f *xlsx.File, providers []model.Provider) error {
	sheet, err := addSheet(f, SheetProviders, "Name", "NPI", "Specialty", "Success Ratio", "Address")
	if err != nil {
		return err
	}
	for _, p := range providers {
		row := sheet.AddRow()
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.NPI)
		row.AddCell().SetString(p.Specialty)
		row.AddCell().SetFloatWithFormat(p.SuccessRatio, percentFormat)
		row.AddCell().SetString(p.Address)
	}
	return nil
}

func numberCell(cell *xlsx.Cell, v float64, kind Kind) {
	switch kind {
	case KindMoney:
		cell.SetFloatWithFormat(v, moneyFormat)
	case KindPercent:
		cell.SetFloatWithFormat(v, percentFormat)
	default:
		cell.SetFloatWithFormat(v, countFormat)
	}
}
