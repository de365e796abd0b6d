package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mesaYaBoard/internal/config"
	realtime "mesaYaBoard/internal/modules/realtime/domain"
	"mesaYaBoard/internal/modules/realtime/infrastructure"
	"mesaYaBoard/internal/modules/reservations/application/handler"
	"mesaYaBoard/internal/modules/reservations/application/port"
	"mesaYaBoard/internal/modules/reservations/application/usecase"
	reservations "mesaYaBoard/internal/modules/reservations/infrastructure"
	transport "mesaYaBoard/internal/modules/reservations/interface"
	"mesaYaBoard/internal/modules/reservations/query"
	"mesaYaBoard/internal/platform/broker"
	"mesaYaBoard/internal/shared/logging"
)

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, _, err := logging.Setup(cfg.Logging.Directory, logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("kafka config resolved", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("group", cfg.Kafka.GroupID), slog.Any("topics", cfg.Kafka.Topics))

	hub := infrastructure.NewHub()
	registry := infrastructure.NewHandlerRegistry()

	boards := usecase.NewBoardUseCase(newSource(cfg.Source), hub, query.Options{Location: cfg.Display.Location})

	// Reservation change events refresh every open board.
	for _, topic := range realtime.ReservationChangeTopics() {
		registry.Register(handler.NewReservationChangeHandler(topic, boards))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	broker.StartKafkaConsumers(ctx, registry, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topics)

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(log.Writer())

	transport.NewBoardHTTPHandler(boards).Register(e.Group("/api/v1/boards"))
	wsHandler := transport.NewBoardWebsocketHandler(hub, boards, cfg.Websocket.SendBuffer)
	e.GET("/ws/boards", wsHandler)
	e.GET("/ws/boards/:id", wsHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown", slog.Any("error", err))
	}
}

func newSource(cfg config.SourceConfig) port.ReservationSource {
	if cfg.File != "" {
		slog.Info("reservation source: file", slog.String("path", cfg.File))
		return reservations.NewFileSource(cfg.File)
	}
	slog.Info("reservation source: rest", slog.String("baseUrl", cfg.BaseURL), slog.String("path", cfg.Path))
	return reservations.NewReservationsHTTPClient(cfg.BaseURL, cfg.Path, cfg.Token, cfg.Timeout, nil)
}
