// Package server boots the SCMFlow API: configuration, backing stores,
// middleware chain, routes, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/infernolabs/scmflow/app/routes"
	"github.com/infernolabs/scmflow/config"
	"github.com/infernolabs/scmflow/pkg/cache"
	"github.com/infernolabs/scmflow/pkg/database"
	"github.com/infernolabs/scmflow/pkg/logger"
	"github.com/infernolabs/scmflow/pkg/metrics"
	"github.com/infernolabs/scmflow/pkg/middleware"
	"github.com/infernolabs/scmflow/pkg/reqid"
	"github.com/infernolabs/scmflow/pkg/router"
	"github.com/infernolabs/scmflow/pkg/storage"
)

const shutdownTimeout = 10 * time.Second

// BuildRouter assembles the middleware chain and route table. Split out
// so the CLI can print routes without starting a listener.
func BuildRouter() *router.Router {
	r := router.New()
	r.Use(
		reqid.Middleware(),
		metrics.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
	)
	routes.RegisterAPI(r)
	return r
}

// Start runs the API until SIGINT or SIGTERM, then drains in-flight
// requests before disconnecting the stores.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := database.Disconnect(disconnectCtx); err != nil {
			logger.Error("mongo disconnect failed", "error", err)
		}
	}()

	if col := config.MongoLogCollection(); col != "" {
		handler := logger.NewMongoHandler(database.Collection(col))
		logger.L = slog.New(logger.NewMultiHandler(logger.L.Handler(), handler))
		slog.SetDefault(logger.L)
		defer handler.Close()
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, caching disabled", "error", err)
	}
	storage.Connect()

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           BuildRouter().Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("scmflow api listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
