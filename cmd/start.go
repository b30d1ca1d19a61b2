package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"catalog-mirror/core/loader"
	"catalog-mirror/core/server"
	"catalog-mirror/feature/history"
	"catalog-mirror/feature/scheduler"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sync loop and the HTTP server",
	Long: `Runs a sync cycle every sync.interval_seconds until SIGINT or SIGTERM.
When server.enabled is set, the status, trigger, history and metrics endpoints are served too.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// 1. Configuration, logger, mirror and storage
		rt, err := bootstrap(ctx)
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		logg := rt.logger
		defer logg.Sync()

		// 2. Connect to Journal Database (Optional)
		rt.openJournal(ctx)

		// 3. Build Scheduler
		sched, err := rt.scheduler()
		if err != nil {
			logg.Fatal("Failed to build scheduler", zap.Error(err))
		}

		// 4. HTTP Server (Optional)
		if rt.cfg.Server.Enabled {
			app := server.New(rt.cfg.Server, logg, rt.metrics.Handler())

			mgr := loader.NewManager(logg)
			mgr.Register(scheduler.NewFeature(sched))
			mgr.Register(history.NewFeature(rt.journal))

			if err := mgr.LoadAll(app); err != nil {
				logg.Fatal("Failed to load features", zap.Error(err))
			}

			go func() {
				logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
				if err := app.Listen(rt.cfg.Server.Addr()); err != nil {
					logg.Error("Server stopped", zap.Error(err))
					stop()
				}
			}()
			defer func() {
				logg.Info("Shutting down server...")
				_ = app.Shutdown()
			}()
		}

		// 5. Sync Loop until signal
		logg.Info("Starting sync loop", zap.Int("interval_seconds", rt.cfg.Sync.IntervalSeconds))
		if err := sched.Run(ctx); err != nil {
			logg.Error("Sync loop failed", zap.Error(err))
		}
		logg.Info("Sync loop stopped")
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
