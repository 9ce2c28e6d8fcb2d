package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"pageserver/internal/applog"
	"pageserver/internal/config"
	handlers "pageserver/internal/http/handler"
	"pageserver/internal/http/middleware"
	"pageserver/internal/otel"
	"pageserver/internal/page"
	"pageserver/internal/server"
	"pageserver/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := applog.New(cfg.Log, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log, cfg.ServiceName)
	if err != nil {
		log.WithError(err).Fatal("tracing_init_failed")
	}

	src, err := newPageSource(cfg)
	if err != nil {
		log.WithError(err).Fatal("page_source_init_failed")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.WithError(err).Fatal("metrics_init_failed")
	}

	app := fiber.New(handlers.PageAppConfig(log))
	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(metrics.Handler())
	handlers.RegisterRoutes(app, src)

	pageSrv, err := server.Start(cfg.Addr(), app)
	if err != nil {
		log.WithError(err).Fatal("listen_failed")
	}
	log.WithFields(logrus.Fields{
		"addr":        pageSrv.Addr().String(),
		"page_source": cfg.Page.Source,
	}).Info("server_listening")

	servers := []*server.Server{pageSrv}
	if cfg.AdminAddr != "" {
		admin := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ErrorHandler:          handlers.ErrorHandler(),
		})
		admin.Use(middleware.RequestID())
		handlers.RegisterAdminRoutes(admin, src, reg)

		adminSrv, err := server.Start(cfg.AdminAddr, admin)
		if err != nil {
			log.WithError(err).Fatal("admin_listen_failed")
		}
		log.WithField("addr", adminSrv.Addr().String()).Info("admin_listening")
		servers = append(servers, adminSrv)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		g.Go(s.Wait)
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown_started")

		timeout := time.Duration(cfg.ShutdownTimeoutSec) * time.Second
		sctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var errs []error
		for _, s := range servers {
			errs = append(errs, s.Shutdown(sctx))
		}
		errs = append(errs, shutdownTracing(sctx))
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("server_stopped")
	}
	log.Info("shutdown_complete")
}

// newPageSource builds the configured page source. A local PAGE_FILE is split
// so the filesystem is rooted at its directory and the name stays relative:
// "index.html" resolves against the working directory on every request.
func newPageSource(cfg *config.AppConfig) (page.Source, error) {
	switch cfg.Page.Source {
	case config.SourceFile:
		abs, err := filepath.Abs(cfg.Page.File)
		if err != nil {
			return nil, fmt.Errorf("resolve page file: %w", err)
		}
		dir, name := filepath.Split(abs)
		// Bound files keep the *os.File handle, so the opened page can be
		// stat'ed directly rather than by a second path lookup.
		return page.NewFileSource(osfs.New(dir, osfs.WithBoundOS()), name), nil
	case config.SourceMinIO:
		store, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("init object storage: %w", err)
		}
		return page.NewObjectSource(store, cfg.MinIO.ObjectKey), nil
	default:
		return nil, fmt.Errorf("unknown page source %q", cfg.Page.Source)
	}
}
