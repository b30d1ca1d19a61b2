// Package scheduler runs the catalog sync cycle.
//
// A cycle fetches the catalog and reconciles the three mirrored collections in order:
//
//  1. Categories are fetched once. The resulting hierarchy is synced to Category
//     and reused by product sync to resolve category ids.
//  2. Counterparties are synced to Supliers.
//  3. Products and the stock report are fetched; products are synced to Products.
//  4. The product image list is posted downstream (skipped in dry-run).
//  5. Raw rows are dumped to the audit sink and the cycle report is journaled.
//
// Each step reports its own error. A failed fetch leaves the rows collected so far
// and the cycle continues with them; a failed step never stops the later ones.
//
// # Loop
//
// Run starts a cycle immediately, then waits IntervalSeconds after each cycle
// until its context is cancelled. Cycles never overlap: Trigger shares an
// in-flight cycle with concurrent callers through singleflight.
//
// # HTTP Endpoints
//
//   - GET /sync/status : loop state and the last cycle report.
//   - POST /sync/trigger?dry_run=&entities= : start a cycle in the background.
package scheduler
