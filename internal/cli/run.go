package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"salesmart/internal/config"
	"salesmart/internal/logging"
	"salesmart/internal/mart"
	"salesmart/internal/metrics"
	"salesmart/internal/metrics/datadog"
	"salesmart/internal/metrics/prompush"
	"salesmart/internal/source"
	"salesmart/internal/storage"
)

func newRunCmd(opts *options) *cobra.Command {
	var (
		dryRun         bool
		metricsBackend string
		locale         string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Extract, build and replace every mart table",
		Long: `Run one full build: extract the source entities, build dim_date and the
four dimensions, aggregate fact_sales, then drop, recreate and load each
table in order (dim_date, dim_customer, dim_product, dim_employee,
dim_supplier, fact_sales).

Example:
  SALESMART_SOURCE_DSN='sqlserver://etl:pw@wwi:1433?database=WideWorldImporters' \
  SALESMART_STORAGE_DSN='postgres://etl:pw@localhost/mart' salesmart run
  salesmart run --config mart.yaml --dry-run --log-level debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if metricsBackend != "" {
				cfg.Metrics.Backend = metricsBackend
			}
			if locale != "" {
				cfg.Locale = locale
			}
			if err := checkConfig(cfg, dryRun); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			flush := setupMetrics(cfg)
			defer flush()

			rep, err := runMart(ctx, cfg, dryRun)
			if err != nil {
				return err
			}
			for _, t := range rep.Tables {
				cmd.Printf("%-13s %8d rows  %016x\n", t.Name, t.Rows, t.Fingerprint)
			}
			if rep.Rejected() > 0 {
				cmd.Printf("rejected invoice lines: %d %v\n", rep.Rejected(), rep.Rejects)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "build every table but persist nothing")
	cmd.Flags().StringVar(&metricsBackend, "metrics-backend", "",
		"metrics backend: none, pushgateway, datadog (overrides config)")
	cmd.Flags().StringVar(&locale, "locale", "", "label locale: es, en (overrides config)")
	return cmd
}

func runMart(ctx context.Context, cfg *config.Config, dryRun bool) (mart.Report, error) {
	queries := make(map[source.Entity]string, len(cfg.Source.Queries))
	for k, q := range cfg.Source.Queries {
		e, err := source.ParseEntity(k)
		if err != nil {
			return mart.Report{}, err
		}
		queries[e] = q
	}
	src, closeSrc, err := source.Open(ctx, source.Config{Kind: cfg.Source.Kind, DSN: cfg.Source.DSN, Queries: queries})
	if err != nil {
		return mart.Report{}, err
	}
	defer closeSrc()

	var sink mart.Sink
	if !dryRun {
		loader, err := storage.NewLoader(ctx, storage.Config{
			Kind:   cfg.Storage.Kind,
			DSN:    cfg.Storage.DSN,
			Schema: cfg.Storage.Schema,
		}, cfg.Storage.BatchSize, cfg.Job)
		if err != nil {
			return mart.Report{}, fmt.Errorf("open storage: %w", err)
		}
		defer loader.Close()
		sink = loader
	}

	start := time.Now()
	rep, err := mart.Run(ctx, src, sink, mart.Options{Job: cfg.Job, Locale: cfg.Locale, DryRun: dryRun})
	if err != nil {
		return rep, err
	}
	logging.Info().Str("run_id", rep.RunID).Dur("elapsed", time.Since(start)).Msg("ETL completed")
	return rep, nil
}

// setupMetrics installs the configured backend and returns its flush func.
// Backend failures are logged and leave metrics disabled.
func setupMetrics(cfg *config.Config) func() {
	var (
		b   metrics.Backend
		err error
	)
	switch cfg.Metrics.Backend {
	case "pushgateway":
		b, err = prompush.NewBackend(cfg.Job, cfg.Metrics.PushgatewayURL)
	case "datadog":
		b, err = datadog.NewBackend(datadog.Config{
			Addr:       cfg.Metrics.DatadogAddr,
			Namespace:  "salesmart.",
			GlobalTags: append([]string{"job:" + cfg.Job}, cfg.Metrics.DatadogTags...),
		})
	default:
		logging.Debug().Str("backend", cfg.Metrics.Backend).Msg("metrics: disabled")
		return func() {}
	}
	if err != nil {
		logging.Warn().Err(err).Str("backend", cfg.Metrics.Backend).Msg("metrics: init failed; using nop")
		return func() {}
	}
	logging.Info().Str("backend", cfg.Metrics.Backend).Str("job", cfg.Job).Msg("metrics: enabled")
	prev := metrics.SetBackend(b)
	return func() {
		if err := metrics.Flush(); err != nil {
			logging.Warn().Err(err).Msg("metrics: flush error")
		}
		metrics.SetBackend(prev)
	}
}
