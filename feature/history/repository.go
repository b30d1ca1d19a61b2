package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"catalog-mirror/core/database"
	"catalog-mirror/feature/scheduler"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a cycle id is not journaled.
var ErrNotFound = errors.New("sync run not found")

// Repository stores cycle reports. It implements scheduler.Journal.
type Repository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRepository creates a new journal repository.
func NewRepository(db *gorm.DB, logger *zap.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// Migrate creates or updates the journal table and warns about columns it could not add.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&SyncRun{}); err != nil {
		return fmt.Errorf("failed to migrate journal: %w", err)
	}

	missing, err := database.MissingColumns(r.db.WithContext(ctx), SyncRun{}.TableName(), journalColumns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		r.logger.Warn("Journal table is missing columns", zap.Strings("columns", missing))
	}
	return nil
}

// Record stores a cycle report.
func (r *Repository) Record(ctx context.Context, report *scheduler.CycleReport) error {
	run, err := newRun(report)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record sync run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []SyncRun
	if err := r.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list sync runs: %w", err)
	}
	return runs, nil
}

// Get returns the run with the given cycle id.
func (r *Repository) Get(ctx context.Context, cycleID string) (*SyncRun, error) {
	var run SyncRun
	err := r.db.WithContext(ctx).Where("cycle_id = ?", cycleID).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sync run: %w", err)
	}
	return &run, nil
}

func newRun(report *scheduler.CycleReport) (*SyncRun, error) {
	entities, err := json.Marshal(report.Entities)
	if err != nil {
		return nil, fmt.Errorf("failed to encode entity reports: %w", err)
	}
	stepErrors := report.Errors
	if stepErrors == nil {
		stepErrors = []scheduler.StepError{}
	}
	errs, err := json.Marshal(stepErrors)
	if err != nil {
		return nil, fmt.Errorf("failed to encode step errors: %w", err)
	}

	run := &SyncRun{
		CycleID:    report.CycleID,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		DurationMS: report.Duration().Milliseconds(),
		DryRun:     report.DryRun,
		Status:     StatusOK,
		Entities:   string(entities),
		Errors:     string(errs),
	}
	if report.Failed() {
		run.Status = StatusPartial
	}
	for _, e := range report.Entities {
		run.Creates += e.Summary.Creates
		run.Sets += e.Summary.Sets
		run.Deletes += e.Summary.Deletes
		run.Skips += e.Summary.Skips
	}
	return run, nil
}
