package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ting-32/noodle/internal/configs"
	"github.com/ting-32/noodle/internal/delivery/kafka"
)

func main() {
	_ = godotenv.Load()

	cfg, err := configs.LoadConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %s", err)
	}
	if len(os.Args) > 1 {
		cfg.SeedPath = os.Args[1]
	}
	logrus.Print("config loaded")

	raw, err := os.ReadFile(cfg.SeedPath)
	if err != nil {
		logrus.Fatalf("read seed file: %s", err)
	}
	reqs, err := parseSeed(raw)
	if err != nil {
		logrus.Fatalf("parse seed file: %s", err)
	}

	pub := kafka.NewPublisher(cfg.KafkaBrokersSlice(), cfg.KafkaWriteTopic)
	defer func() {
		if cerr := pub.Close(); cerr != nil {
			logrus.Errorf("publisher close: %v", cerr)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, req := range reqs {
		if err := pub.PublishWrite(ctx, req); err != nil {
			logrus.Fatalf("publish failed: %s", err)
		}
		logrus.WithField("action", req.Action).Print("seed envelope published")
	}
	logrus.Printf("published %d envelopes from %s", len(reqs), cfg.SeedPath)
}
