package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends the engine can run against.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config is the resolved runtime configuration. Everything is optional:
// with no environment at all the engine runs in-memory with logging off
// below warn and no publisher.
type Config struct {
	Store            string
	DatabaseURL      string
	KafkaBrokers     []string
	KafkaTopicPrefix string
	LogLevel         string
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	// A missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	cfg := Config{
		Store:            envOr("LEDGER_STORE", StoreMemory),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		KafkaTopicPrefix: os.Getenv("KAFKA_TOPIC_PREFIX"),
		LogLevel:         envOr("LOG_LEVEL", "warn"),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if cfg.Store != StoreMemory && cfg.Store != StorePostgres {
		return Config{}, fmt.Errorf("unknown LEDGER_STORE %q", cfg.Store)
	}
	if cfg.Store == StorePostgres && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("LEDGER_STORE=postgres requires DATABASE_URL")
	}
	return cfg, nil
}

// PublisherEnabled reports whether Kafka publishing is configured.
func (c Config) PublisherEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
