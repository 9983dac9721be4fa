// The worker binary consumes fulfillment envelopes and advances orders
// through the fulfillment lifecycle. It exposes a small operational HTTP
// surface for health checks and metrics.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ordermgmt/cmd"
	"ordermgmt/internal/adapters/rabbitmq"
)

func main() {
	config := cmd.LoadConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("service", "worker"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := gorm.Open(postgresdriver.Open(config.PostgresDSN()), &gorm.Config{})
	if err != nil {
		logger.Error("failed to connect to postgres", slog.Any("error", err))
		os.Exit(1)
	}

	mqClient, err := rabbitmq.Connect(ctx, config.AmqpURL, logger)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", slog.Any("error", err))
		os.Exit(1)
	}
	defer mqClient.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
	})
	defer func() { _ = redisClient.Close() }()

	root := cmd.NewCompositionRoot(config, db, mqClient, redisClient, logger)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.GET("/health", func(c echo.Context) error {
		if pingErr := mqClient.Ping(2 * time.Second); pingErr != nil {
			return c.String(http.StatusServiceUnavailable, "broker unreachable")
		}
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	go func() {
		if serveErr := e.Start(":" + config.WorkerHTTPPort); serveErr != nil &&
			!errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("ops http server stopped", slog.Any("error", serveErr))
			stop()
		}
	}()

	// The consumer returns when its channel dies; reconnect is handled by
	// the client, so consumption restarts after a short pause until the
	// context is cancelled.
	for {
		if err = root.CreateConsumer().Start(ctx); err != nil {
			logger.Warn("consumer stopped", slog.Any("error", err))
		}

		select {
		case <-ctx.Done():
			logger.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
				logger.Error("ops http shutdown failed", slog.Any("error", shutdownErr))
			}
			cancel()
			return
		case <-time.After(5 * time.Second):
		}
	}
}
