package cmd

import (
	"context"
	"dropdate/internal/config"
	"dropdate/internal/daemon"
	"dropdate/internal/logger"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var scheduleHealthAddr string

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Rename files on the configured schedule until stopped",
	RunE:  runSchedule,
}

func runSchedule(cmd *cobra.Command, args []string) error {
	defer logger.Sync()

	if scheduleHealthAddr != "" {
		cfg.HealthAddr = scheduleHealthAddr
	}

	state := daemon.NewState()
	sched, err := daemon.NewScheduler(daemon.NewJob(state), cfg.Schedule, cfg.RunOnStartup)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if dir, err := config.Dir(); err == nil {
		watchErr := config.Watch(dir, func(c *config.Config, err error) {
			if err != nil {
				logger.Log.Warn("failed to reload config", zap.Error(err))
				return
			}

			if err := sched.Reschedule(c.Schedule); err != nil {
				logger.Log.Warn("failed to apply new schedule", zap.Error(err))
			}
		})
		if watchErr != nil {
			logger.Log.Warn("failed to watch config", zap.Error(watchErr))
		}
	}

	var srv *daemon.Server
	if cfg.HealthAddr != "" {
		srv = daemon.NewServer(state, sched, cfg.HealthAddr)
		srv.Start()
	}

	sched.Start(ctx)

	<-ctx.Done()
	logger.Log.Info("shutting down")

	sched.Stop()

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Stop(shutdownCtx)
	}

	return nil
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleHealthAddr, "health-addr", "", "serve /healthz, /status and /metrics on this address")
	rootCmd.AddCommand(scheduleCmd)
}
