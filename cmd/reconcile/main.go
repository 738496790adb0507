// Command reconcile recomputes each domain's summary counters from the stored
// emails. Stop webhook ingestion before running it against live data.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/pflag"

	"github.com/wsdmailer/wsdmailer/config"
	"github.com/wsdmailer/wsdmailer/internal/app"
	"github.com/wsdmailer/wsdmailer/internal/service"
	"github.com/wsdmailer/wsdmailer/pkg/logger"
)

var osExit = os.Exit

type options struct {
	dryRun      bool
	concurrency int
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("reconcile", pflag.ContinueOnError)
	fs.BoolVar(&opts.dryRun, "dry-run", false, "report drift without writing corrected counters")
	fs.IntVar(&opts.concurrency, "concurrency", service.DefaultReconcileConcurrency, "number of domains reconciled in parallel")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.concurrency < 1 {
		return opts, fmt.Errorf("--concurrency must be at least 1, got %d", opts.concurrency)
	}
	return opts, nil
}

// run reconciles every domain and writes the JSON report to out.
// A report with failed domains is returned alongside an error.
func run(ctx context.Context, cfg *config.Config, opts options, out io.Writer, appLogger logger.Logger, appOpts ...app.AppOption) error {
	appOpts = append([]app.AppOption{app.WithLogger(appLogger)}, appOpts...)
	a := app.NewApp(cfg, appOpts...)
	defer func() {
		if err := a.Shutdown(context.Background()); err != nil {
			appLogger.WithField("error", err.Error()).Warn("Failed to release resources")
		}
	}()

	if err := a.InitDB(); err != nil {
		return err
	}
	if err := a.InitRepositories(); err != nil {
		return err
	}

	reconciler := service.NewSummaryReconciler(
		a.GetDomainRepository(),
		a.GetEmailRepository(),
		a.GetEmailSummaryRepository(),
		appLogger,
		opts.concurrency,
		opts.dryRun,
	)

	report, err := reconciler.Reconcile(ctx)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if report.Failed > 0 {
		return fmt.Errorf("%d domain(s) failed to reconcile", report.Failed)
	}
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.NewLoggerWithLevel(cfg.LogLevel).WithField("command", "reconcile")
	appLogger.WithField("dry_run", opts.dryRun).
		WithField("concurrency", opts.concurrency).
		Info("Starting summary reconciliation")

	if err := run(context.Background(), cfg, opts, os.Stdout, appLogger); err != nil {
		appLogger.WithField("error", err.Error()).Error("Reconciliation failed")
		osExit(1)
	}
}
