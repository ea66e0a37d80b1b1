package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/billing-estimator/internal/estimate"
	"github.com/sells-group/billing-estimator/internal/export"
	"github.com/sells-group/billing-estimator/internal/model"
	"github.com/sells-group/billing-estimator/internal/store"
	"github.com/sells-group/billing-estimator/internal/validate"
)

type estimateOptions struct {
	File    string
	XLSX    string
	JSON    bool
	Save    bool
	NoColor bool
}

var estimateOpts estimateOptions

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Compute an estimate from a YAML form file",
	Long: `Reads a completed estimator form from YAML (use "-" for stdin), validates
every field, and prints the practice metrics next to industry benchmarks.`,
	Example: `  billing-estimator estimate --file practice.yaml
  billing-estimator estimate --file practice.yaml --xlsx report.xlsx --save`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		in, err := readInputFile(estimateOpts.File)
		if err != nil {
			return err
		}

		var st store.Store
		if estimateOpts.Save {
			st, err = openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
		}

		return runEstimate(ctx, cmd.OutOrStdout(), initEstimator(), st, in, estimateOpts)
	},
}

func readInputFile(path string) (model.FormInput, error) {
	if path == "-" {
		return decodeInput(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return model.FormInput{}, eris.Wrap(err, "estimate: open input")
	}
	defer f.Close() //nolint:errcheck
	return decodeInput(f)
}

// decodeInput parses a YAML form. Unknown keys are rejected so typos in
// field names surface instead of reading as missing values.
func decodeInput(r io.Reader) (model.FormInput, error) {
	var in model.FormInput
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil {
		return model.FormInput{}, eris.Wrap(err, "estimate: decode input")
	}
	return in, nil
}

func runEstimate(ctx context.Context, out io.Writer, est *estimate.Estimator, st store.Store, in model.FormInput, opts estimateOptions) error {
	if err := validate.Form(in); err != nil {
		var verr *validate.Error
		if errors.As(err, &verr) {
			for _, f := range verr.Fields {
				_, _ = fmt.Fprintf(out, "  %s: %s\n", f.Field, f.Message)
			}
		}
		return err
	}

	calc, err := est.Calculate(ctx, in)
	if err != nil {
		return eris.Wrap(err, "estimate: calculate")
	}

	record := model.Estimate{Input: in, Calculation: *calc, CreatedAt: calc.CalculatedAt}
	if st != nil {
		saved, err := st.SaveEstimate(ctx, in, *calc)
		if err != nil {
			return err
		}
		record = *saved
	}

	if opts.XLSX != "" {
		if err := writeXLSXFile(opts.XLSX, record); err != nil {
			return err
		}
	}

	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(record), "estimate: encode json")
	}

	if err := export.WriteTable(out, *calc, export.TableOptions{Color: !opts.NoColor && !color.NoColor}); err != nil {
		return err
	}
	if record.ID != "" {
		_, _ = fmt.Fprintf(out, "Saved estimate %s\n", record.ID)
	}
	if opts.XLSX != "" {
		_, _ = fmt.Fprintf(out, "Wrote %s\n", opts.XLSX)
	}
	return nil
}

func writeXLSXFile(path string, est model.Estimate) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "estimate: create xlsx")
	}
	if err := export.WriteXLSX(f, est); err != nil {
		_ = f.Close()
		return err
	}
	return eris.Wrap(f.Close(), "estimate: close xlsx")
}

func init() {
	estimateCmd.Flags().StringVarP(&estimateOpts.File, "file", "f", "", "YAML form input (\"-\" for stdin)")
	estimateCmd.Flags().StringVar(&estimateOpts.XLSX, "xlsx", "", "also write a spreadsheet report to this path")
	estimateCmd.Flags().BoolVar(&estimateOpts.JSON, "json", false, "print the estimate as JSON")
	estimateCmd.Flags().BoolVar(&estimateOpts.Save, "save", false, "save the estimate to history")
	estimateCmd.Flags().BoolVar(&estimateOpts.NoColor, "no-color", false, "disable colored output")
	_ = estimateCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(estimateCmd)
}
