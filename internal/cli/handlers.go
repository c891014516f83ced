package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/juju/ratelimit"

	"github.com/BartekS5/kaiten2planka/internal/config"
	"github.com/BartekS5/kaiten2planka/internal/engine"
	"github.com/BartekS5/kaiten2planka/internal/kaiten"
	"github.com/BartekS5/kaiten2planka/internal/planka"
	"github.com/BartekS5/kaiten2planka/pkg/logger"
	"github.com/BartekS5/kaiten2planka/pkg/transport"
)

// Compile-time interface checks.
var (
	_ engine.Source = (*kaiten.Client)(nil)
	_ engine.Target = (*planka.Client)(nil)
)

// buildClients wires credentials and settings into the two authenticated
// API clients sharing one retrying, rate-limited transport.
func buildClients(settingsFile string) (config.Options, *kaiten.Client, *planka.Client, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return config.Options{}, nil, nil, err
	}
	opts, err := config.LoadOptions(settingsFile)
	if err != nil {
		return config.Options{}, nil, nil, err
	}

	capacity := int64(opts.RequestsPerSecond)
	if capacity < 1 {
		capacity = 1
	}
	httpClient := &http.Client{
		Timeout: 5 * time.Minute,
		Transport: &transport.Retrying{
			Attempts: opts.RetryAttempts,
			Delay:    opts.RetryDelay.Std(),
			Bucket:   ratelimit.NewBucketWithRate(opts.RequestsPerSecond, capacity),
		},
	}

	source := kaiten.NewClient(cfg.KaitenURL, cfg.KaitenToken, httpClient)
	source.PageSize = opts.PageSize
	source.RateLimitThreshold = opts.RateLimitThreshold

	target := planka.NewClient(cfg.PlankaURL, cfg.PlankaToken, httpClient)

	return opts, source, target, nil
}

func runMigration(opts *MigrateOptions) error {
	if opts.LogFile != "" {
		if err := logger.InitLogger(opts.LogFile); err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer logger.Close()
	}

	options, source, plankaClient, err := buildClients(opts.SettingsFile)
	if err != nil {
		return err
	}

	var target engine.Target = plankaClient
	if opts.DryRun {
		logger.Infof("dry run: no writes will reach Planka")
		target = engine.NewDryRunTarget()
	}

	ctx := context.Background()
	migrator := engine.New(source, target, engine.NewIDTable(), options)

	if opts.CleanFirst && !opts.DryRun {
		if !migrator.CleanTarget(ctx) {
			logger.Warnf("pre-migration cleanup finished with errors, continuing")
		}
	}

	report, err := migrator.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Print(report.Summary())
	return nil
}

func runCleanup(settingsFile string) error {
	options, source, target, err := buildClients(settingsFile)
	if err != nil {
		return err
	}

	migrator := engine.New(source, target, engine.NewIDTable(), options)
	if !migrator.CleanTarget(context.Background()) {
		return fmt.Errorf("cleanup completed with errors, see log for details")
	}
	fmt.Println("Cleanup finished successfully.")
	return nil
}

func runCheck(settingsFile string) error {
	_, source, target, err := buildClients(settingsFile)
	if err != nil {
		return err
	}
	ctx := context.Background()

	spaces, err := source.Spaces(ctx)
	if err != nil {
		return fmt.Errorf("kaiten connection failed: %w", err)
	}
	fmt.Printf("Kaiten OK: %d spaces visible.\n", len(spaces))

	projects, err := target.Projects(ctx)
	if err != nil {
		return fmt.Errorf("planka connection failed: %w", err)
	}
	fmt.Printf("Planka OK: %d projects visible.\n", len(projects))
	return nil
}
