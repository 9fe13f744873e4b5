package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/ting-32/noodle/internal/configs"
	httpdelivery "github.com/ting-32/noodle/internal/delivery/http"
	"github.com/ting-32/noodle/internal/delivery/kafka"
	"github.com/ting-32/noodle/internal/metrics"
	"github.com/ting-32/noodle/internal/repository/remote"
	"github.com/ting-32/noodle/internal/service"
)

// @title noodle order planner
// @version 1.0
// @description Stages delivery orders locally, checks them for duplicates and store holidays, syncs them to the remote store and sums pending quantities per delivery date.

// @host localhost:8081
// @basePath /

func main() {
	_ = godotenv.Load()
	cfg, err := configs.LoadConfig()
	if err != nil {
		logrus.Fatalf("config load: %s", err)
	}
	if err := cfg.SetupLogging(); err != nil {
		logrus.Fatalf("logging: %s", err)
	}
	logrus.Print("config parsed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := []service.Option{service.WithMetrics(metrics.New(prometheus.DefaultRegisterer))}
	if cfg.KafkaSyncTopic != "" {
		pub := kafka.NewPublisher(cfg.KafkaBrokersSlice(), cfg.KafkaSyncTopic)
		defer func() {
			if cerr := pub.Close(); cerr != nil {
				logrus.Errorf("publisher close: %v", cerr)
			}
		}()
		opts = append(opts, service.WithNotifier(pub))
		logrus.WithField("topic", cfg.KafkaSyncTopic).Print("sync events enabled")
	}

	svc := service.NewService(remote.NewClient(cfg.RemoteURL, cfg.RemoteTimeout), opts...)

	loadCtx, loadCancel := context.WithTimeout(ctx, cfg.RemoteTimeout)
	if err := svc.Reload(loadCtx); err != nil {
		logrus.WithError(err).Warn("initial load failed, starting with an empty book")
	}
	loadCancel()

	h := httpdelivery.NewHandler(svc)
	srv := new(httpdelivery.Server)

	go func() {
		if err := srv.Run(cfg.HTTPAddr, h.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("http run: %v", err)
			cancel()
		}
	}()
	logrus.Printf("http server started on %s", cfg.HTTPAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case <-quit:
		logrus.Print("shutdown signal received")
	case <-ctx.Done():
		logrus.Print("context canceled, shutting down")
	}

	if staged := len(svc.Snapshot().Staged); staged > 0 {
		logrus.WithField("staged", staged).Warn("unsynced orders are dropped on shutdown")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("http shutdown: %s", err)
	}
	logrus.Print("planner stopped")
}
