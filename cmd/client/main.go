package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/guidipper/internal/buildinfo"
	"github.com/dmitrijs2005/guidipper/internal/client/cli"
	"github.com/dmitrijs2005/guidipper/internal/client/client"
	"github.com/dmitrijs2005/guidipper/internal/client/config"
	"github.com/dmitrijs2005/guidipper/internal/logging"
	"github.com/dmitrijs2005/guidipper/internal/telemetry"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, closer, err := logging.NewFileLogger(logging.FileOptions{Path: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer closer.Close()

	opts := client.Options{Timeout: cfg.RequestTimeout, Logger: logger}

	if cfg.TelemetryDir != "" {
		tel, err := telemetry.Init(ctx, telemetry.Options{Dir: cfg.TelemetryDir, Version: buildinfo.Version()})
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tel.Shutdown(shutdownCtx); err != nil {
				logger.Warn(shutdownCtx, "telemetry shutdown", "error", err)
			}
		}()
		opts.Tracer, opts.Meter = tel.Tracer, tel.Meter
	}

	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	api, err := client.NewHTTPClient(cfg.APIURL, opts)
	if err != nil {
		return err
	}

	logger.Info(ctx, "client started", "api_url", cfg.APIURL, "version", buildinfo.Version())
	return cli.NewApp(cfg, api, db, logger).Run(ctx)
}
