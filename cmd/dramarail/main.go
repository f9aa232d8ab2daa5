package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/voyagen/dramarail/internal/cache"
	"github.com/voyagen/dramarail/internal/config"
	"github.com/voyagen/dramarail/internal/fetcher"
	"github.com/voyagen/dramarail/internal/logging"
	"github.com/voyagen/dramarail/internal/server"
	"github.com/voyagen/dramarail/internal/service"
	"github.com/voyagen/dramarail/internal/store"
)

func main() {
	configPath := flag.String("config", "", "Optional config file path (YAML); else use environment")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("exit", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := fetcher.NewClient(cfg.APIBase, cfg.UserAgent, cfg.Timeout)
	log.Info("content api", zap.String("base", client.BaseURL()), zap.String("lang", cfg.Lang))

	var (
		feed fetcher.Lister = client
		opts server.Options
	)

	// Fetch log is enabled only when DATABASE_URL is configured.
	if cfg.DatabaseURL != "" {
		if err := store.RunMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		pg, err := store.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("db: %w", err)
		}
		defer pg.Close()
		opts.FetchLog = pg
		log.Info("fetch log enabled (postgres)")
	} else {
		log.Info("fetch log disabled (DATABASE_URL not set)")
	}

	// Rail cache is enabled only when REDIS_URL is configured.
	if cfg.RedisURL != "" {
		rds, err := cache.New(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer rds.Close()
		if err := rds.Ping(ctx); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		cached := cache.NewCachedFeed(client, rds, cfg.CacheTTL, log)
		feed = cached
		opts.Purger = cached
		log.Info("rail cache enabled (redis)", zap.Duration("ttl", cfg.CacheTTL))
	} else {
		log.Info("rail cache disabled (REDIS_URL not set)")
	}

	home := service.HomeOptions{
		Lang:             cfg.Lang,
		FeaturedRankID:   cfg.FeaturedRankID,
		FeaturedLimit:    cfg.FeaturedLimit,
		TrendingPage:     cfg.TrendingPage,
		TrendingPageSize: cfg.TrendingPageSize,
	}
	srv := server.New(feed, home, log, opts)
	return srv.ListenAndServe(ctx, ":"+cfg.ServerPort)
}
