package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/billing-estimator/internal/export"
	"github.com/sells-group/billing-estimator/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect saved estimates",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		specialty, _ := cmd.Flags().GetString("specialty")
		zip, _ := cmd.Flags().GetString("zip")
		limit, _ := cmd.Flags().GetInt("limit")

		list, err := st.ListEstimates(ctx, store.EstimateFilter{
			Specialty: specialty,
			ZipCode:   zip,
			Limit:     limit,
		})
		if err != nil {
			return eris.Wrap(err, "history list")
		}
		if len(list) == 0 {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "No estimates found.")
			return nil
		}
		return export.WriteEstimateList(cmd.OutOrStdout(), list)
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <estimate-id>",
	Short: "Show the full result of a saved estimate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		est, err := st.GetEstimate(ctx, args[0])
		if err != nil {
			return err
		}

		if path, _ := cmd.Flags().GetString("xlsx"); path != "" {
			if err := writeXLSXFile(path, *est); err != nil {
				return err
			}
		}
		noColor, _ := cmd.Flags().GetBool("no-color")
		return export.WriteTable(cmd.OutOrStdout(), est.Calculation, export.TableOptions{Color: !noColor && !color.NoColor})
	},
}

func init() {
	historyCmd.Flags().String("specialty", "", "filter by specialty key")
	historyCmd.Flags().String("zip", "", "filter by ZIP / PIN code")
	historyCmd.Flags().Int("limit", 20, "max number of estimates to display")

	historyShowCmd.Flags().String("xlsx", "", "also write a spreadsheet report to this path")
	historyShowCmd.Flags().Bool("no-color", false, "disable colored output")

	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
