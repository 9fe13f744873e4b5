package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/ting-32/noodle/internal/backend"
	"github.com/ting-32/noodle/internal/configs"
	httpdelivery "github.com/ting-32/noodle/internal/delivery/http"
	"github.com/ting-32/noodle/internal/delivery/kafka"
	"github.com/ting-32/noodle/internal/metrics"
	"github.com/ting-32/noodle/internal/repository"
	"github.com/ting-32/noodle/internal/repository/postgres"
)

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

	db, err := postgres.ConnectDB(postgres.Config{
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		Username: cfg.PostgresUser,
		Password: cfg.PostgresPass,
		DbName:   cfg.PostgresDB,
		SslMode:  cfg.PostgresSSLMode,
	})
	if err != nil {
		logrus.Fatalf("postgres connect: %s", err)
	}
	defer func() {
		if derr := db.Close(); derr != nil {
			logrus.Errorf("db close: %v", derr)
		}
	}()
	if err := postgres.Migrate(db); err != nil {
		logrus.Fatalf("postgres migrate: %s", err)
	}
	logrus.Print("connected to postgres")

	repo := repository.NewRepository(db, cfg.CacheTTL)
	svc := backend.NewService(repo, backend.WithMetrics(metrics.New(prometheus.DefaultRegisterer)))

	if err := svc.WarmCache(ctx); err != nil {
		logrus.Fatalf("warm cache: %s", err)
	}

	consumer := kafka.NewConsumer(kafka.Config{
		Brokers:     cfg.KafkaBrokersSlice(),
		GroupID:     cfg.KafkaGroupID,
		Topic:       cfg.KafkaWriteTopic,
		DLQ:         cfg.KafkaDLQTopic,
		MaxRetries:  cfg.KafkaMaxRetries,
		BaseBackoff: cfg.KafkaBackoff,
	}, svc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := consumer.Subscribe(ctx); err != nil {
			logrus.Errorf("consumer stopped: %v", err)
			cancel()
		}
	}()
	logrus.WithField("topic", cfg.KafkaWriteTopic).Print("kafka subscription started")

	h := httpdelivery.NewBackendHandler(svc)
	srv := new(httpdelivery.Server)

	go func() {
		if err := srv.Run(cfg.BackendHTTPAddr, h.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("http run: %v", err)
			cancel()
		}
	}()
	logrus.Printf("http server started on %s", cfg.BackendHTTPAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case <-quit:
		logrus.Print("shutdown signal received")
	case <-ctx.Done():
		logrus.Print("context canceled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("http shutdown: %s", err)
	}

	cancel()
	wg.Wait()
	if err := consumer.Close(); err != nil {
		logrus.Errorf("consumer close: %s", err)
	}
	logrus.Print("backend stopped")
}
