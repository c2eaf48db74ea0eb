package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/urbanexpress/storefront/internal/console"
	"github.com/urbanexpress/storefront/internal/state"
	"github.com/urbanexpress/storefront/internal/storefront"
	"github.com/urbanexpress/storefront/pkg/config"
	"github.com/urbanexpress/storefront/pkg/enums"
	"github.com/urbanexpress/storefront/pkg/idgen"
	"github.com/urbanexpress/storefront/pkg/logger"
	"github.com/urbanexpress/storefront/pkg/metrics"
	"github.com/urbanexpress/storefront/pkg/storage"
)

func main() {
	os.Exit(run())
}

func run() int {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Debug(context.Background(), ".env file not found, relying on environment")
	}

	showMetrics := flag.Bool("metrics", false, "print state metrics after the command")
	flag.Usage = func() { console.Usage(os.Stderr) }
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		return 1
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"backend": cfg.Storage.Backend,
	})

	backend, err := storage.Open(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to open storage backend", err)
		return 1
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logg.Error(ctx, "error closing storage backend", err)
		}
	}()

	registry := prometheus.NewRegistry()
	sf, err := storefront.New(state.Deps{
		Storage: backend,
		Logger:  logg,
		Metrics: metrics.NewStateMetrics(registry),
		IDs:     idgen.UUID{},
	})
	if err != nil {
		logg.Error(ctx, "failed to build storefront", err)
		return 1
	}

	app := &console.App{
		Storefront:    sf,
		Logger:        logg,
		Gatherer:      registry,
		Out:           os.Stdout,
		WhatsAppPhone: cfg.Storefront.WhatsAppPhone,
		Language:      enums.ParseLanguage(cfg.Storefront.Language),
	}

	code := 0
	if err := app.Run(ctx, flag.Args()); err != nil {
		code = console.WriteError(ctx, logg, os.Stdout, err)
	}
	if *showMetrics {
		if err := app.WriteMetrics(os.Stderr); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write metrics: %v\n", err)
		}
	}
	return code
}
