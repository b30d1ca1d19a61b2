package reconcile

import (
	"context"
	"errors"
	"fmt"

	"catalog-mirror/core/mirror"

	"go.uber.org/zap"
)

// ReconcileWithPlan reads the mirrored collection, asks the adapter for the desired
// state and returns the resulting plan. It does NOT execute actions; use ApplyPlan for that.
func ReconcileWithPlan(ctx context.Context, store mirror.Store, adapter Adapter) (*ReconcilePlan, error) {
	existing, err := mirror.GetMap(ctx, store, adapter.Root())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", adapter.Root(), err)
	}

	desired, err := adapter.Desired(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to build desired %s: %w", adapter.Name(), err)
	}

	return BuildPlan(adapter.Root(), desired, existing), nil
}

// ApplyPlan executes the actions in a reconcile plan.
// A failed mutation is logged and the remaining actions still run; all failures are
// returned joined. Returns the number of actions that reached the store.
func ApplyPlan(ctx context.Context, store mirror.Store, plan *ReconcilePlan, opts ReconcileOptions, logger *zap.Logger) (executed int, err error) {
	for _, skip := range plan.Skips {
		logger.Error("Computed value is missing, write skipped",
			zap.String("path", skip.Path),
			zap.Any("existing", skip.Existing))
	}

	if opts.DryRun {
		return 0, nil
	}

	var errs []error
	for _, action := range plan.Actions {
		if ctxErr := ctx.Err(); ctxErr != nil {
			errs = append(errs, ctxErr)
			break
		}

		var opErr error
		switch action.Type {
		case ActionCreate, ActionSet:
			opErr = store.Set(ctx, action.Path, action.Value)
		case ActionDelete:
			opErr = store.Delete(ctx, action.Path)
		default:
			opErr = fmt.Errorf("unknown action type %q", action.Type)
		}

		if opErr != nil {
			logger.Error("Mirror write failed",
				zap.String("action", string(action.Type)),
				zap.String("path", action.Path),
				zap.Error(opErr))
			errs = append(errs, fmt.Errorf("%s %s: %w", action.Type, action.Path, opErr))
			continue
		}

		executed++
		logger.Info("Mirror updated",
			zap.String("action", string(action.Type)),
			zap.String("path", action.Path))
	}

	return executed, errors.Join(errs...)
}

// ReconcileAndApply is a convenience wrapper that plans and optionally applies actions.
// It returns the plan, number of actions executed, and any error.
func ReconcileAndApply(ctx context.Context, store mirror.Store, adapter Adapter, opts ReconcileOptions, logger *zap.Logger) (*ReconcilePlan, int, error) {
	plan, err := ReconcileWithPlan(ctx, store, adapter)
	if err != nil {
		return nil, 0, err
	}

	logger.Info("Reconcile plan built",
		zap.String("entity", adapter.Name()),
		zap.Int("desired", plan.Summary.Desired),
		zap.Int("existing", plan.Summary.Existing),
		zap.Int("creates", plan.Summary.Creates),
		zap.Int("sets", plan.Summary.Sets),
		zap.Int("deletes", plan.Summary.Deletes),
		zap.Int("skips", plan.Summary.Skips),
		zap.Bool("dry_run", opts.DryRun))

	executed, err := ApplyPlan(ctx, store, plan, opts, logger)
	return plan, executed, err
}

// NewReport summarises a reconcile run for the journal and status endpoint.
func NewReport(entity string, plan *ReconcilePlan, executed int, err error) Report {
	r := Report{Entity: entity, Executed: executed}
	if plan != nil {
		r.Summary = plan.Summary
	}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// LogSubtree dumps the mirrored collection at debug level.
func LogSubtree(ctx context.Context, store mirror.Store, root string, logger *zap.Logger) {
	if !logger.Core().Enabled(zap.DebugLevel) {
		return
	}
	tree, err := store.Get(ctx, root)
	if err != nil {
		logger.Warn("Failed to read mirror subtree", zap.String("root", root), zap.Error(err))
		return
	}
	if tree == nil {
		logger.Warn("No data found in mirror", zap.String("root", root))
		return
	}
	logger.Debug("Mirror subtree", zap.String("root", root), zap.Any("tree", tree))
}
