package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"bmitracker/internal/adapter/chart"
	"bmitracker/internal/adapter/cli"
	"bmitracker/internal/adapter/memory"
	"bmitracker/internal/adapter/postgres"
	"bmitracker/internal/adapter/sqlite"
	"bmitracker/internal/app"
	"bmitracker/internal/config"
	"bmitracker/internal/domain"
	"bmitracker/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, rest, err := config.Load(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	log, err := logger.New(cfg.LogMode, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer log.Sync()

	ctx := context.Background()
	repo, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("store open failed", "driver", cfg.Driver, "error", err)
		return 1
	}

	var renderer cli.ChartRenderer
	if cr, err := chart.NewRenderer(1000, 500); err != nil {
		log.Warn("chart rendering disabled", "error", err)
	} else {
		renderer = cr
	}

	bmiSvc := app.NewBMIService(repo, log)
	trendSvc := app.NewTrendService(repo)
	sh := cli.New(bmiSvc, trendSvc, renderer, os.Stdin, os.Stdout, log)

	if err := sh.Run(ctx, rest); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			return 2
		}
		return 1
	}
	return 0
}

func openStore(ctx context.Context, cfg config.Config, log *logger.Logger) (domain.ObservationRepository, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(ctx, cfg.DSN, log)
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return sqlite.Open(ctx, cfg.DBPath, log)
	}
}
