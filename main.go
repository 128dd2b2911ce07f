package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pharmacy-locator/config"
	"pharmacy-locator/scraper"
	"pharmacy-locator/scraper/registry"
	"pharmacy-locator/services"
	"pharmacy-locator/storage"
	"pharmacy-locator/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	brands []string
	list   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "pharmacy-locator",
		Short:         "Collects pharmacy store locator data per brand into CSV files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&opts.brands, "brands", nil, "comma separated brands to run (default all)")
	f.BoolVar(&opts.list, "list", false, "print the supported brands and exit")
	f.String("output", "./output", "directory for <brand>_pharmacies.csv files")
	f.String("log-level", "info", "debug, info, warn or error")
	f.Duration("timeout", 30*time.Second, "per request timeout")
	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	if opts.list {
		for _, n := range registry.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	}

	// Unknown brands fail before anything touches the network.
	if _, err := registry.Parse(opts.brands); err != nil {
		return err
	}

	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("=== Pharmacy locator starting ===")
	logger.Info("Config: output %s | request timeout %v | brand timeout %v | max brands %d",
		cfg.OutputDir, cfg.RequestTimeout, cfg.BrandTimeout, cfg.MaxBrandConcurrency)

	client := scraper.NewRestyClient(cfg)
	reg := registry.New(scraper.NewDeps(cfg, client, logger))
	if len(cfg.BrowserBrands) > 0 {
		browser := scraper.NewBrowserClient(cfg, client, logger)
		defer browser.Close()
		reg.WithBrowser(browser, cfg.UsesBrowser)
	}

	handlers, err := reg.Resolve(opts.brands)
	if err != nil {
		return err
	}

	writer, err := storage.NewCSVWriter(cfg.OutputDir)
	if err != nil {
		return err
	}

	orch := services.NewOrchestrator(services.OrchestratorConfig{
		MaxConcurrency: cfg.MaxBrandConcurrency,
		BrandTimeout:   cfg.BrandTimeout,
	}, writer, logger)

	summary, err := orch.Run(cmd.Context(), handlers)
	orch.Summary().Print(summary)
	if errors.Is(err, scraper.ErrNoData) {
		logger.Error("No brand produced data")
	}
	return err
}
