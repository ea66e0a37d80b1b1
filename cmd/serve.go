package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/billing-estimator/internal/server"
	"github.com/sells-group/billing-estimator/internal/wizard"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the estimator web app and JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close() //nolint:errcheck
			if err := st.Migrate(ctx); err != nil {
				return err
			}
		} else {
			zap.L().Info("estimate history disabled")
		}

		est := initEstimator()
		sessions := wizard.NewManager(est, wizard.ManagerConfig{
			ResultDelay: cfg.Estimator.ResultDelay(),
			TTL:         time.Duration(cfg.Sessions.TTLMinutes) * time.Minute,
		})

		srv := server.New(est, sessions, st, server.Options{
			CORSOrigins:     cfg.Server.CORSOrigins,
			RateLimitRPS:    cfg.Server.RateLimitRPS,
			RateLimitBurst:  cfg.Server.RateLimitBurst,
			SweepInterval:   time.Duration(cfg.Sessions.SweepSeconds) * time.Second,
			ShutdownTimeout: time.Duration(cfg.Server.ShutdownTimeout) * time.Second,
		})

		port := cfg.Server.Port
		if servePort > 0 {
			port = servePort
		}
		return srv.Run(ctx, port)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
