package main

import (
	"github.com/olekukonko/tablewriter"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/billing-estimator/internal/estimate"
	"github.com/sells-group/billing-estimator/internal/export"
)

var specialtiesCmd = &cobra.Command{
	Use:   "specialties",
	Short: "List supported specialties and their typical denial rates",
	RunE: func(cmd *cobra.Command, _ []string) error {
		t := tablewriter.NewWriter(cmd.OutOrStdout())
		t.Header("Key", "Specialty", "Denial Rate")
		for _, s := range estimate.Specialties() {
			if err := t.Append([]string{s.Key, s.Label, export.FormatPercent(s.DenialRate)}); err != nil {
				return eris.Wrap(err, "specialties: append")
			}
		}
		if err := t.Append([]string{"", "Other", export.FormatPercent(estimate.DefaultDenialRate)}); err != nil {
			return eris.Wrap(err, "specialties: append")
		}
		return eris.Wrap(t.Render(), "specialties: render")
	},
}

func init() {
	rootCmd.AddCommand(specialtiesCmd)
}
