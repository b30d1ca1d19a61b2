package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"catalog-mirror/core/audit"
	"catalog-mirror/core/catalog"
	"catalog-mirror/core/logger"
	"catalog-mirror/core/metrics"
	"catalog-mirror/core/mirror"
	"catalog-mirror/core/notify"
	"catalog-mirror/core/reconcile"
	"catalog-mirror/feature/category"
	"catalog-mirror/feature/counterparty"
	"catalog-mirror/feature/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ImageNotifier receives the product image list after product sync.
type ImageNotifier interface {
	SendProductImages(ctx context.Context, images []notify.ProductImage) error
}

// Journal persists cycle reports.
type Journal interface {
	Record(ctx context.Context, report *CycleReport) error
}

// Deps are the collaborators of a Scheduler. Notifier, Audit, Journal and Metrics are optional.
type Deps struct {
	Fetcher  catalog.Fetcher
	Store    mirror.Store
	Notifier ImageNotifier
	Audit    audit.Sink
	Journal  Journal
	Metrics  *metrics.Recorder
	Logger   *zap.Logger
}

// Scheduler runs sync cycles, either in a loop or on demand. At most one cycle
// started through Trigger or TriggerAsync runs at a time.
type Scheduler struct {
	deps           Deps
	interval       time.Duration
	categories     *category.Service
	counterparties *counterparty.Service
	products       *product.Service
	logger         *zap.Logger

	group singleflight.Group

	mu      sync.RWMutex
	current *inflight
	last    *CycleReport
	baseCtx context.Context
}

// inflight is the cycle currently holding the scheduler.
type inflight struct {
	done   chan struct{}
	report *CycleReport
}

// NewScheduler creates a Scheduler.
func NewScheduler(cfg Config, deps Deps) *Scheduler {
	interval := time.Duration(cfg.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	if deps.Audit == nil {
		deps.Audit = audit.NopSink{}
	}

	return &Scheduler{
		deps:           deps,
		interval:       interval,
		categories:     category.NewService(deps.Store, deps.Logger),
		counterparties: counterparty.NewService(deps.Store, deps.Logger),
		products:       product.NewService(deps.Store, cfg.ImageCDNPrefix, deps.Logger),
		logger:         deps.Logger,
		baseCtx:        context.Background(),
	}
}

// Run executes a cycle, waits for the interval and repeats until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	s.baseCtx = ctx
	s.mu.Unlock()

	s.logger.Info("Sync loop started", zap.Duration("interval", s.interval))

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sync loop stopped")
			return nil
		case <-timer.C:
		}

		s.Trigger(ctx, RunOptions{})
		timer.Reset(s.interval)
	}
}

// Trigger runs a cycle unless one is already in flight, in which case it waits
// for that cycle and returns its report. shared is true in the latter case.
func (s *Scheduler) Trigger(ctx context.Context, opts RunOptions) (report *CycleReport, shared bool) {
	waited := false
	v, _, shared := s.group.Do("cycle", func() (any, error) {
		f, started := s.reserve()
		if !started {
			// A cycle started by TriggerAsync holds the scheduler.
			<-f.done
			waited = true
			return f.report, nil
		}
		s.execute(ctx, opts, f)
		return f.report, nil
	})
	return v.(*CycleReport), shared || waited
}

// TriggerAsync starts a cycle with opts in the background on the loop context.
// The scheduler is reserved before it returns, so it reports false whenever
// another cycle is running and opts would not be honoured.
func (s *Scheduler) TriggerAsync(opts RunOptions) bool {
	f, started := s.reserve()
	if !started {
		return false
	}

	s.mu.RLock()
	ctx := s.baseCtx
	s.mu.RUnlock()

	go s.execute(ctx, opts, f)
	return true
}

// Status returns the live state.
func (s *Scheduler) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{Running: s.current != nil, Interval: s.interval.String(), LastCycle: s.last}
}

func (s *Scheduler) reserve() (*inflight, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		return s.current, false
	}
	s.current = &inflight{done: make(chan struct{})}
	return s.current, true
}

func (s *Scheduler) execute(ctx context.Context, opts RunOptions, f *inflight) {
	defer func() {
		s.mu.Lock()
		s.current = nil
		s.mu.Unlock()
		close(f.done)
	}()
	f.report = s.RunCycle(ctx, opts)
}

// RunCycle fetches the catalog and reconciles every selected collection.
// Each step runs on its own: a failed or panicking step is logged and recorded,
// and the remaining steps still run.
func (s *Scheduler) RunCycle(ctx context.Context, opts RunOptions) *CycleReport {
	report := &CycleReport{
		CycleID:   uuid.NewString(),
		StartedAt: time.Now().UTC(),
		DryRun:    opts.DryRun,
		Rows:      map[string]int{},
		Entities:  []reconcile.Report{},
	}
	log := logger.WithCycle(s.logger, report.CycleID)
	ropts := reconcile.ReconcileOptions{DryRun: opts.DryRun}

	// Shared between steps; a step that fails leaves the zero value for the next one.
	var (
		categoryRows     []json.RawMessage
		counterpartyRows []json.RawMessage
		productRows      []json.RawMessage
		hierarchy        *category.Hierarchy
		stock            = map[string]float64{}
	)
	defer s.finish(ctx, log, report)

	log.Info("Sync cycle started", zap.Bool("dry_run", opts.DryRun), zap.Strings("entities", opts.Entities))

	// 1. Categories, fetched once and reused for product category resolution
	if opts.wants(EntityCategory) || opts.wants(EntityProduct) {
		s.runStep(log, report, "fetch_category", func() error {
			rows, err := s.deps.Fetcher.FetchAll(ctx, catalog.ResourceCategory)
			categoryRows = rows
			s.rows(report, EntityCategory, len(rows))
			return err
		})
	}
	if opts.wants(EntityCategory) {
		s.runStep(log, report, EntityCategory, func() error {
			h, r, err := s.categories.Sync(ctx, categoryRows, ropts)
			hierarchy = h
			s.entity(report, r)
			return err
		})
	}
	if hierarchy == nil && opts.wants(EntityProduct) {
		s.runStep(log, report, "category_hierarchy", func() error {
			hierarchy = category.BuildHierarchy(category.ParseFolders(categoryRows, log), log)
			return nil
		})
	}

	// 2. Counterparties
	if opts.wants(EntityCounterparty) {
		s.runStep(log, report, "fetch_counterparty", func() error {
			rows, err := s.deps.Fetcher.FetchAll(ctx, catalog.ResourceCounterparty)
			counterpartyRows = rows
			s.rows(report, EntityCounterparty, len(rows))
			return err
		})
		s.runStep(log, report, EntityCounterparty, func() error {
			r, err := s.counterparties.Sync(ctx, counterpartyRows, ropts)
			s.entity(report, r)
			return err
		})
	}

	// 3. Products and stock
	if opts.wants(EntityProduct) {
		s.runStep(log, report, "fetch_product", func() error {
			rows, err := s.deps.Fetcher.FetchAll(ctx, catalog.ResourceProduct)
			productRows = product.FilterValid(rows, log)
			s.rows(report, EntityProduct, len(productRows))
			return err
		})
		s.runStep(log, report, "fetch_stock", func() error {
			st, err := s.deps.Fetcher.FetchStock(ctx)
			if err != nil {
				return err
			}
			stock = st
			return nil
		})
		s.runStep(log, report, EntityProduct, func() error {
			r, err := s.products.Sync(ctx, productRows, stock, hierarchy, ropts)
			s.entity(report, r)
			return err
		})

		// 4. Downstream image notification
		if !opts.DryRun && s.deps.Notifier != nil {
			s.runStep(log, report, "notify", func() error {
				images := product.ImageList(productRows, s.deps.Fetcher.ProductImagesURL)
				return s.deps.Notifier.SendProductImages(ctx, images)
			})
		}
	}

	// 5. Audit dumps of the raw rows
	dumps := []struct {
		entity string
		name   string
		rows   []json.RawMessage
	}{
		{EntityCategory, "categories", categoryRows},
		{EntityCounterparty, "counterparties", counterpartyRows},
		{EntityProduct, "products", productRows},
	}
	for _, d := range dumps {
		if !opts.wants(d.entity) {
			continue
		}
		s.runStep(log, report, "audit_"+d.entity, func() error {
			if err := s.deps.Audit.Dump(ctx, d.name, d.rows); err != nil {
				return err
			}
			log.Debug("Raw rows dumped", zap.String("name", d.name), zap.Int("rows", len(d.rows)))
			return nil
		})
	}

	return report
}

// runStep runs one step of a cycle. An error or a panic is recorded against the step.
func (s *Scheduler) runStep(log *zap.Logger, report *CycleReport, step string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			s.fail(log.With(zap.Stack("stack"), zap.Any("rows", report.Rows)), report, step, fmt.Errorf("panic: %v", r))
		}
	}()
	if err := fn(); err != nil {
		s.fail(log, report, step, err)
	}
}

func (s *Scheduler) rows(report *CycleReport, entity string, n int) {
	report.Rows[entity] = n
	if s.deps.Metrics != nil {
		s.deps.Metrics.SetRows(entity, n)
	}
}

func (s *Scheduler) entity(report *CycleReport, r reconcile.Report) {
	report.Entities = append(report.Entities, r)
	if s.deps.Metrics != nil && !report.DryRun {
		s.deps.Metrics.AddSkips(r.Entity, r.Summary.Skips)
	}
}

func (s *Scheduler) fail(log *zap.Logger, report *CycleReport, step string, err error) {
	log.Error("Sync step failed", zap.String("step", step), zap.Error(err))
	report.Errors = append(report.Errors, StepError{Step: step, Error: err.Error()})
	if s.deps.Metrics != nil {
		s.deps.Metrics.StepFailed(step)
	}
}

func (s *Scheduler) finish(ctx context.Context, log *zap.Logger, report *CycleReport) {
	report.FinishedAt = time.Now().UTC()

	if s.deps.Metrics != nil {
		s.deps.Metrics.ObserveCycle(report.Duration(), report.Failed())
		if !report.DryRun {
			for _, e := range report.Entities {
				if e.Error != "" {
					continue
				}
				s.deps.Metrics.AddMutations(e.Entity, string(reconcile.ActionCreate), e.Summary.Creates)
				s.deps.Metrics.AddMutations(e.Entity, string(reconcile.ActionSet), e.Summary.Sets)
				s.deps.Metrics.AddMutations(e.Entity, string(reconcile.ActionDelete), e.Summary.Deletes)
			}
		}
	}

	if s.deps.Journal != nil {
		if err := s.deps.Journal.Record(ctx, report); err != nil {
			log.Warn("Failed to record cycle in journal", zap.Error(err))
		}
	}

	s.mu.Lock()
	s.last = report
	s.mu.Unlock()

	log.Info("Sync cycle finished",
		zap.Duration("duration", report.Duration()),
		zap.Int("failed_steps", len(report.Errors)))
}
