// Package reconcile brings a mirrored collection in line with freshly fetched catalog data.
//
// The engine compares a desired state against the current mirror subtree and
// produces a plan of path-addressed mutations. Entity packages describe their
// desired state through an Adapter; the engine owns the comparison rules so every
// collection is diffed the same way.
//
// # Desired state
//
// Two node kinds drive the comparison:
//
//   - Collection: a keyed set of children. Its key set must match the mirror
//     exactly, so mirrored keys missing from the collection are deleted.
//   - Fields: a single record. Each listed field is compared on its own and only
//     changed leaves are written. Mirror fields that are not listed are left alone.
//
// Leaf values are compared numerically when both sides are numbers, so a mirrored
// 5 and a computed 5.0 are equal.
//
// # Missing values
//
// A nil leaf means the value could not be computed. It is never written: the
// previous mirror value survives and the path is reported as a Skip, which
// ApplyPlan logs at error level.
//
// # Usage Example
//
//	plan, executed, err := reconcile.ReconcileAndApply(ctx, store, adapter,
//	    reconcile.ReconcileOptions{DryRun: false}, logger)
//
// Writes run before deletes. There is no transaction: a failed mutation is logged,
// the remaining actions still run and the failures are returned joined.
package reconcile
