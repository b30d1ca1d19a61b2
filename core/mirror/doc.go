// Package mirror abstracts the hierarchical document store that holds the mirrored catalog.
//
// The store is a tree addressed by slash separated paths with three operations:
// read a subtree, set a value at a path, delete a subtree. The production backend is the
// Firebase Realtime Database; MemoryStore mimics its semantics (JSON normalisation,
// pruning of nulls and empty objects) for tests and local dry runs.
//
// Top-level collections are Category, Supliers and Products.
package mirror
