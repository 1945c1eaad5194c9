package cli

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/blueprints-go/internal/adapters/logging"
	"github.com/andrescamacho/blueprints-go/internal/adapters/metrics"
	"github.com/andrescamacho/blueprints-go/internal/adapters/persistence"
	"github.com/andrescamacho/blueprints-go/internal/application/common"
	"github.com/andrescamacho/blueprints-go/internal/application/evaluation"
	"github.com/andrescamacho/blueprints-go/internal/application/evaluation/commands"
	"github.com/andrescamacho/blueprints-go/internal/domain/blueprint"
	"github.com/andrescamacho/blueprints-go/internal/domain/production"
	"github.com/andrescamacho/blueprints-go/internal/infrastructure/config"
	"github.com/andrescamacho/blueprints-go/internal/infrastructure/database"
)

// application holds everything one CLI invocation needs
type application struct {
	cfg      *config.Config
	logger   *logging.ZapLogger
	db       *gorm.DB
	repo     blueprint.RunRepository
	mediator common.Mediator
}

// appOptions selects the optional parts of the application
type appOptions struct {
	withDatabase bool
	configure    func(cfg *config.Config) // applies flag overrides after loading
}

// newApplication loads configuration and wires logger, metrics, storage and
// the mediator. The returned context carries the logger.
func newApplication(ctx context.Context, opts appOptions) (context.Context, *application, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return ctx, nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if opts.configure != nil {
		opts.configure(cfg)
	}

	logger, err := logging.New(logging.Options{
		Level:             cfg.Logging.Level,
		Format:            cfg.Logging.Format,
		Output:            cfg.Logging.Output,
		FilePath:          cfg.Logging.FilePath,
		IncludeCaller:     cfg.Logging.IncludeCaller,
		IncludeStacktrace: cfg.Logging.IncludeStacktrace,
	})
	if err != nil {
		return ctx, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	ctx = common.WithLogger(ctx, logger)

	app := &application{
		cfg:      cfg,
		logger:   logger,
		mediator: common.NewMediator(),
	}

	if cfg.Metrics.Enabled {
		collectors, err := metrics.Setup()
		if err != nil {
			return ctx, nil, err
		}
		app.mediator.RegisterMiddleware(metrics.PrometheusMiddleware(collectors.Commands))
	}

	if opts.withDatabase {
		db, err := database.Open(&cfg.Database)
		if err != nil {
			return ctx, nil, err
		}
		app.db = db
		app.repo = persistence.NewGormRunRepository(db)
	}

	evaluator := evaluation.NewEvaluator(evaluationOptions(cfg.Search), app.repo, nil)
	if err := commands.RegisterHandlers(app.mediator, evaluator, app.repo); err != nil {
		app.Close()
		return ctx, nil, err
	}

	return ctx, app, nil
}

// evaluationOptions maps search configuration onto evaluator options
func evaluationOptions(search config.SearchConfig) evaluation.Options {
	return evaluation.Options{
		Policy: production.PolicyOptions{
			CommitIntermediate: search.CommitIntermediate,
			DiscardSurplus:     search.DiscardSurplus,
		},
		OptimisticBound: search.OptimisticBound,
	}
}

// pushMetrics sends metrics to the configured Pushgateway, if any
func (a *application) pushMetrics(ctx context.Context, grouping map[string]string) {
	if !a.cfg.Metrics.Enabled || a.cfg.Metrics.PushgatewayURL == "" {
		return
	}
	if err := metrics.Push(ctx, a.cfg.Metrics.PushgatewayURL, a.cfg.Metrics.Job, grouping); err != nil {
		a.logger.Log("WARN", "[Metrics] Push failed", map[string]interface{}{
			"error": err,
		})
	}
}

// Close releases the database and flushes the logger
func (a *application) Close() {
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.logger.Log("WARN", "[CLI] Failed to close database", map[string]interface{}{
				"error": err,
			})
		}
	}
	_ = a.logger.Sync()
	metrics.Reset()
}
