// Package history journals sync cycles in a SQL database.
//
// Every finished cycle, dry-runs included, becomes one sync_runs row with the
// aggregated mutation counts, the per-entity reports and the failed steps. The
// journal is optional: without a database connection the scheduler runs unjournaled
// and the /history routes are not mounted.
//
// # HTTP Endpoints
//
//   - GET /history?limit= : most recent runs, newest first.
//   - GET /history/:cycle_id : a single run.
package history
