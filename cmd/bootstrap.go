package cmd

import (
	"context"
	"fmt"

	"catalog-mirror/core/audit"
	"catalog-mirror/core/catalog"
	"catalog-mirror/core/config"
	"catalog-mirror/core/database"
	"catalog-mirror/core/logger"
	"catalog-mirror/core/metrics"
	"catalog-mirror/core/mirror"
	"catalog-mirror/core/notify"
	"catalog-mirror/core/storage"
	"catalog-mirror/feature/backup"
	"catalog-mirror/feature/history"
	"catalog-mirror/feature/scheduler"

	"go.uber.org/zap"
)

// runtime holds the collaborators shared by the commands.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   mirror.Store
	storage storage.Client
	journal *history.Repository
	metrics *metrics.Recorder
}

// bootstrap loads configuration, builds the logger and opens the mirror store
// and the object storage client.
func bootstrap(ctx context.Context) (*runtime, error) {
	// 1. Load Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Initialize Logger
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	// 3. Open Mirror Store
	store, err := mirror.Open(ctx, cfg.Mirror)
	if err != nil {
		return nil, fmt.Errorf("failed to open mirror store: %w", err)
	}
	logg.Info("Mirror store opened", zap.String("driver", cfg.Mirror.Driver))

	// 4. Initialize Storage (connection is lazy)
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &runtime{
		cfg:     cfg,
		logger:  logg,
		store:   store,
		storage: client,
		metrics: metrics.New(),
	}, nil
}

// openJournal connects the optional run journal. Failures only disable it.
func (r *runtime) openJournal(ctx context.Context) {
	db, err := database.Connect(r.cfg.Database)
	if err != nil {
		r.logger.Warn("Optional database connection failed, journal disabled", zap.Error(err))
		return
	}
	repo := history.NewRepository(db, r.logger)
	if err := repo.Migrate(ctx); err != nil {
		r.logger.Warn("Journal migration failed, journal disabled", zap.Error(err))
		return
	}
	r.journal = repo
	r.logger.Info("Connected to journal database", zap.String("driver", r.cfg.Database.Driver))
}

// scheduler wires the sync scheduler from the runtime.
func (r *runtime) scheduler() (*scheduler.Scheduler, error) {
	sink, err := audit.New(r.cfg.Audit, r.storage, r.cfg.Storage.Bucket)
	if err != nil {
		return nil, err
	}
	if r.cfg.Audit.Sink == "storage" {
		if err := storage.EnsureBucket(context.Background(), r.storage, r.cfg.Storage.Bucket); err != nil {
			return nil, err
		}
	}

	deps := scheduler.Deps{
		Fetcher: catalog.NewClient(r.cfg.Catalog, r.logger),
		Store:   r.store,
		Audit:   sink,
		Metrics: r.metrics,
		Logger:  r.logger,
	}
	if n := notify.NewClient(r.cfg.Notify, r.logger); n.Enabled() {
		deps.Notifier = n
	} else {
		r.logger.Info("Notification URL not set, image notification disabled")
	}
	if r.journal != nil {
		deps.Journal = r.journal
	}
	return scheduler.NewScheduler(r.cfg.Sync, deps), nil
}

// backup builds the snapshot and restore service.
func (r *runtime) backup() *backup.Service {
	return backup.NewService(r.store, r.storage, r.cfg.Storage.Bucket, r.cfg.Backup, r.logger)
}
