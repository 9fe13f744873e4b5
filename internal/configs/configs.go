package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/sirupsen/logrus"
)

type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	HTTPAddr        string `env:"HTTP_ADDR" envDefault:":8081"`
	BackendHTTPAddr string `env:"BACKEND_HTTP_ADDR" envDefault:":8082"`

	RemoteURL     string        `env:"REMOTE_URL" envDefault:"http://localhost:8082/"`
	RemoteTimeout time.Duration `env:"REMOTE_TIMEOUT" envDefault:"15s"`

	KafkaBrokers    string        `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaWriteTopic string        `env:"KAFKA_WRITE_TOPIC" envDefault:"noodle.writes"`
	KafkaSyncTopic  string        `env:"KAFKA_SYNC_TOPIC" envDefault:""`
	KafkaDLQTopic   string        `env:"KAFKA_DLQ_TOPIC" envDefault:"noodle.writes.dlq"`
	KafkaGroupID    string        `env:"KAFKA_GROUP_ID" envDefault:"noodle-backend"`
	KafkaMaxRetries int           `env:"KAFKA_MAX_RETRIES" envDefault:"5"`
	KafkaBackoff    time.Duration `env:"KAFKA_BACKOFF" envDefault:"200ms"`

	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	SeedPath string `env:"SEED_PATH" envDefault:"seed.yaml"`

	DatabaseURL     string `env:"DATABASE_URL" envDefault:""`
	PostgresHost    string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort    string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser    string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPass    string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	PostgresDB      string `env:"POSTGRES_DB" envDefault:"noodle"`
	PostgresSSLMode string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
}

func LoadConfig() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("config parse: %w", err)
	}
	return c, nil
}

func (c Config) KafkaBrokersSlice() []string {
	parts := strings.Split(c.KafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c Config) PgDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.PostgresUser,
		c.PostgresPass,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDB,
		c.PostgresSSLMode,
	)
}

// SetupLogging applies LOG_LEVEL to the global logrus logger.
func (c Config) SetupLogging() error {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}
