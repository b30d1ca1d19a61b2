package scheduler

import (
	"fmt"
	"strings"
	"time"

	"catalog-mirror/core/reconcile"
)

// Entities synced by a cycle, in execution order.
const (
	EntityCategory     = "category"
	EntityCounterparty = "counterparty"
	EntityProduct      = "product"
)

// AllEntities lists every entity in execution order.
var AllEntities = []string{EntityCategory, EntityCounterparty, EntityProduct}

// RunOptions selects what a cycle does.
type RunOptions struct {
	// DryRun builds plans without touching the mirror or notifying downstream.
	DryRun bool
	// Entities limits the cycle to the named entities. Empty means all.
	Entities []string
}

func (o RunOptions) wants(entity string) bool {
	if len(o.Entities) == 0 {
		return true
	}
	for _, e := range o.Entities {
		if e == entity {
			return true
		}
	}
	return false
}

// StepError records a failed cycle step.
type StepError struct {
	Step  string `json:"step"`
	Error string `json:"error"`
}

// CycleReport is the outcome of one sync cycle.
type CycleReport struct {
	CycleID    string             `json:"cycle_id"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
	DryRun     bool               `json:"dry_run"`
	Rows       map[string]int     `json:"rows"`
	Entities   []reconcile.Report `json:"entities"`
	Errors     []StepError        `json:"errors,omitempty"`
}

// Failed reports whether any step failed.
func (r *CycleReport) Failed() bool {
	return len(r.Errors) > 0
}

// Duration returns the wall time of the cycle.
func (r *CycleReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Status is the live state exposed by /sync/status.
type Status struct {
	Running   bool         `json:"running"`
	Interval  string       `json:"interval"`
	LastCycle *CycleReport `json:"last_cycle,omitempty"`
}

// ParseEntities validates entity names. "all" or an empty list selects every entity.
func ParseEntities(names []string) ([]string, error) {
	var out []string
	for _, n := range names {
		n = strings.TrimSpace(strings.ToLower(n))
		switch n {
		case "":
			continue
		case "all":
			return nil, nil
		case EntityCategory, EntityCounterparty, EntityProduct:
			out = append(out, n)
		default:
			return nil, fmt.Errorf("unknown entity %q", n)
		}
	}
	return out, nil
}
