package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/referralworks/refnet/pkg/api"
	"github.com/referralworks/refnet/pkg/config"
	"github.com/referralworks/refnet/pkg/logging"
	"github.com/referralworks/refnet/pkg/metrics"
	"github.com/referralworks/refnet/pkg/referral"
	"github.com/referralworks/refnet/pkg/source"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.DefaultLogger().Error("invalid configuration", logging.Error(err))
		os.Exit(1)
	}

	log := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.Logging.Level))
	log.Info("refnet server starting", logging.String("addr", cfg.Server.Addr))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		src  referral.Snapshotter
		dirs referral.DirectoryProvider
	)
	switch {
	case cfg.Database.URL != "":
		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			log.Error("database connection failed", logging.Error(err))
			os.Exit(1)
		}
		defer pool.Close()
		store := source.NewPostgres(pool)
		src, dirs = store, store
	case cfg.Source.RecordsFile != "":
		log.Info("serving from records file", logging.String("path", cfg.Source.RecordsFile))
		src = source.NewFile(cfg.Source.RecordsFile)
	default:
		log.Error("no record source configured (set database.url or source.records_file)")
		os.Exit(1)
	}

	reg := metrics.NewRegistry()
	svc := referral.NewService(src, dirs, log, reg)

	server := api.NewServer(svc, api.ServerOptions{
		Logger:  log,
		Metrics: reg,
		CORS:    api.CORSConfig{AllowedOrigins: cfg.Server.CORSOrigins},
	})

	err = server.Start(ctx, cfg.Server.Addr,
		cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout)
	if err != nil {
		log.Error("server failed", logging.Error(err))
		os.Exit(1)
	}
	log.Info("refnet server stopped")
}
