// The api binary serves the order management REST API and runs the orphan
// reconciliation job.
//
//	@title			Order Management API
//	@version		1.0
//	@description	Asynchronous order fulfillment pipeline
//	@BasePath		/api/v1
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
	echoSwagger "github.com/swaggo/echo-swagger"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ordermgmt/cmd"
	_ "ordermgmt/docs"
	httpserver "ordermgmt/internal/adapters/in/http"
	"ordermgmt/internal/adapters/out/postgres/orderrepo"
	"ordermgmt/internal/adapters/rabbitmq"
)

func main() {
	config := cmd.LoadConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("service", "api"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := gorm.Open(postgresdriver.Open(config.PostgresDSN()), &gorm.Config{})
	if err != nil {
		logger.Error("failed to connect to postgres", slog.Any("error", err))
		os.Exit(1)
	}
	if err = db.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		logger.Error("failed to migrate schema", slog.Any("error", err))
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

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		logger.Error("failed to start jobs", slog.Any("error", err))
		os.Exit(1)
	}
	defer jobManager.StopAll()

	e := newEcho(&root, mqClient)

	go func() {
		if serveErr := e.Start(":" + config.HTTPPort); serveErr != nil &&
			!errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("http server stopped", slog.Any("error", serveErr))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", slog.Any("error", err))
	}
}

func newEcho(root *cmd.CompositionRoot, mqClient *rabbitmq.Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	submitHandler := root.CreateSubmitOrderCommandHandler()
	deleteHandler := root.CreateDeleteOrderCommandHandler()
	getAllHandler := root.CreateGetAllOrdersQueryHandler()
	getByIDHandler := root.CreateGetOrderQueryHandler()

	server := httpserver.NewServer(&submitHandler, &deleteHandler, getAllHandler, getByIDHandler)
	server.RegisterRoutes(e)

	e.GET("/health", func(c echo.Context) error {
		if err := mqClient.Ping(2 * time.Second); err != nil {
			return c.String(http.StatusServiceUnavailable, "broker unreachable")
		}
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
