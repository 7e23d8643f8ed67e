package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/sheikh-saqib/payments-accounting-engine/internal/config"
	"github.com/sheikh-saqib/payments-accounting-engine/internal/csvio"
	"github.com/sheikh-saqib/payments-accounting-engine/internal/events/kafka"
	interfaces "github.com/sheikh-saqib/payments-accounting-engine/internal/interfaces"
	"github.com/sheikh-saqib/payments-accounting-engine/internal/ledger"
	"github.com/sheikh-saqib/payments-accounting-engine/internal/models"
	"github.com/sheikh-saqib/payments-accounting-engine/internal/storage/memory"
	"github.com/sheikh-saqib/payments-accounting-engine/internal/storage/postgres"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "missing path to csv file")
		return
	}
	inputPath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	store, err := buildStore(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var publisher interfaces.EventPublisher
	if cfg.PublisherEnabled() {
		p := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopicPrefix)
		defer p.Close()
		publisher = p
	}

	engine := ledger.NewEngine(store, logger, publisher)

	input, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "couldn't open input: %v\n", err)
		return
	}
	defer input.Close()

	if err := csvio.Decode(input, func(ev models.Event) {
		engine.Submit(ctx, ev)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "couldn't read input: %v\n", err)
		os.Exit(1)
	}

	accounts := engine.Drain(ctx)

	if err := csvio.Encode(os.Stdout, accounts); err != nil {
		fmt.Fprintf(os.Stderr, "couldn't write output: %v\n", err)
		os.Exit(1)
	}
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	return zcfg.Build()
}

func buildStore(ctx context.Context, cfg config.Config) (interfaces.TransactionStore, error) {
	if cfg.Store == config.StorePostgres {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		store := postgres.NewPostgresTransactionStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		return store, nil
	}
	return memory.NewMemoryTransactionStore(), nil
}
