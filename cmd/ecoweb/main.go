package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/asanhueza/ecoweb"
	_ "github.com/joho/godotenv/autoload"
	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v3"
)

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := ecoweb.LoadConfig(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: cfg.Level(),
	}))
	slog.SetDefault(logger)

	networks, err := ecoweb.LoadDirectory(cfg.Input.Dir)
	if err != nil {
		return fmt.Errorf("failed to load networks: %w", err)
	}
	logger.Info("networks loaded", "dir", cfg.Input.Dir, "count", len(networks))

	catCfg := ecoweb.CatalogConfig{
		Quantiles:     cfg.Quantiles,
		Simulator:     cfg.SimulatorConfig(),
		Workers:       cfg.Simulation.Workers,
		RunSimulation: cfg.Simulation.Run,
		Logger:        logger,
	}
	if cfg.Cache.Path != "" {
		cache, err := ecoweb.OpenSampleCache(cfg.Cache.Path)
		if err != nil {
			return fmt.Errorf("failed to open sample cache: %w", err)
		}
		defer cache.Close()
		catCfg.Cache = cache
	}

	cat, err := ecoweb.BuildCatalog(ctx, networks, catCfg)
	if err != nil {
		return fmt.Errorf("catalog build failed: %w", err)
	}

	for c, fit := range cat.Model.Fits {
		logger.Info("fitted correction",
			"c", c,
			"lambda", fit.Lambda,
			"r2", fit.RSquared,
			"networks", fit.Networks)
	}
	for _, issue := range cat.Summary.Filtered {
		logger.Warn("filtered", "id", issue.ID, "reason", issue.Reason)
	}
	for _, issue := range cat.Summary.Failed {
		logger.Warn("failed", "id", issue.ID, "reason", issue.Reason)
	}
	logger.Info("run summary",
		"processed", cat.Summary.Processed,
		"filtered", len(cat.Summary.Filtered),
		"failed", len(cat.Summary.Failed))

	if cfg.Output.CSV != "" {
		f, err := os.Create(cfg.Output.CSV)
		if err != nil {
			return fmt.Errorf("failed to create csv file: %w", err)
		}
		defer f.Close()
		if err := ecoweb.WriteCSV(f, cat); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
		logger.Info("catalog exported", "path", cfg.Output.CSV, "rows", len(cat.Records))
	}

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:   "ecoweb",
		Usage:  "Robustness simulation and dispersion-corrected fragility for bipartite interaction webs",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("ECOWEB_CONFIG_FILE"),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("run error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
