package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/creamcroissant/pixelbeacon/internal/api"
	"github.com/creamcroissant/pixelbeacon/internal/bootstrap"
	"github.com/creamcroissant/pixelbeacon/internal/job"
	"github.com/creamcroissant/pixelbeacon/internal/migrations"
	"github.com/creamcroissant/pixelbeacon/internal/pixel"
	"github.com/creamcroissant/pixelbeacon/internal/repository/sqlite"
	"github.com/creamcroissant/pixelbeacon/internal/service"
	"github.com/creamcroissant/pixelbeacon/internal/support/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pixelbeacon server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(logging.Options{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
	})

	db, err := bootstrap.OpenSQLite(cfg.DB.SQLitePath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Up(db); err != nil {
		return err
	}

	store := sqlite.NewStore(db)
	hitService := service.NewHitService(store)
	renderer := pixel.NewRenderer()

	if cfg.Admin.Key == "" {
		logger.Warn("admin key not configured; all admin requests will be rejected")
	}

	router := api.NewRouter(logger, api.Services{
		Hits:     hitService,
		Renderer: renderer,
	}, api.Options{
		AdminKey:       cfg.Admin.Key,
		BehindProxy:    cfg.Admin.BehindProxy,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	})

	scheduler := job.NewScheduler(logger)
	if spec := cfg.Jobs.StatsSnapshotCron; spec != "" {
		if _, err := scheduler.Register(spec, job.NewHitSnapshotJob(hitService, logger)); err != nil {
			return err
		}
		scheduler.Start()
		defer func() { <-scheduler.Stop().Done() }()
	}

	server := bootstrap.NewHTTPServer(cfg, router)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening for connections", "addr", cfg.HTTP.Addr, "version", Version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.HTTP.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
