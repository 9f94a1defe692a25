// Package api wires the HTTP surface of the service.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/creamcroissant/pixelbeacon/internal/api/handler"
	"github.com/creamcroissant/pixelbeacon/internal/api/middleware"
	"github.com/creamcroissant/pixelbeacon/internal/pixel"
	"github.com/creamcroissant/pixelbeacon/internal/service"
)

// Services carries the application services the router depends on.
type Services struct {
	Hits     service.HitService
	Renderer *pixel.Renderer
}

// Options carries request-handling configuration resolved at startup. The
// values are immutable for the process lifetime.
type Options struct {
	AdminKey       string
	BehindProxy    bool
	MetricsEnabled bool
	MetricsToken   string
}

// NewRouter wires all endpoints.
func NewRouter(logger *slog.Logger, services Services, opts Options) http.Handler {
	if services.Hits == nil {
		panic("router requires HitService")
	}
	if services.Renderer == nil {
		panic("router requires Renderer")
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(
		chiMiddleware.RequestID,
	)

	if opts.MetricsEnabled {
		mCfg := middleware.DefaultMetricsConfig()
		metrics := middleware.NewMetrics(mCfg)
		r.Use(metrics.Middleware(mCfg))
	}

	logCfg := middleware.DefaultLoggingConfig()
	logCfg.Logger = logger
	r.Use(
		middleware.StructuredLogger(logCfg),
		chiMiddleware.Recoverer,
	)

	pixelHandler := handler.NewPixelHandler(services.Hits, services.Renderer, opts.BehindProxy, logger)
	adminHandler := handler.NewAdminHandler(services.Hits, opts.AdminKey, opts.BehindProxy, logger)

	r.Get("/", handler.Status)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/robots.txt", handler.RobotsTXT)
	r.Get("/favicon.ico", handler.Favicon)

	if opts.MetricsEnabled {
		metricsHandler := promhttp.Handler()
		if opts.MetricsToken != "" {
			r.With(middleware.MetricsGuard(opts.MetricsToken)).Get("/metrics", metricsHandler.ServeHTTP)
		} else {
			r.Get("/metrics", metricsHandler.ServeHTTP)
		}
	}

	r.Get("/image/{category}.png", pixelHandler.Serve)
	r.Get("/admin/{command}", adminHandler.Handle)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		handler.RespondNotFound(w)
	})

	return r
}
