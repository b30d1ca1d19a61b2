// Package metrics exposes Prometheus metrics for the sync loop.
//
// The Recorder keeps its own registry so several instances can live side by side
// in tests. core/server mounts Handler at /metrics.
package metrics
