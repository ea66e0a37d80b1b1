package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/billing-estimator/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "billing-estimator",
	Short: "Medical billing cost estimator",
	Long:  "Estimates a practice's claims-processing cost, denial rate and revenue, compares them with industry benchmarks, and serves the step-by-step calculator over HTTP.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
