// Package backup snapshots the mirror tree to object storage and restores it.
//
// A snapshot is the whole tree read from the mirror root and uploaded as indented
// JSON under the configured prefix, named by its UTC timestamp so that lexical
// order is chronological. Only the newest Keep snapshots are retained.
//
// Restore sets the mirror root to the decoded backup in one write. The source is
// looked up on the local filesystem first and then in the bucket, so both a file
// exported from the console and a snapshot name work.
package backup
