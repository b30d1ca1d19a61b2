// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so audit dumps and mirror snapshots can be written to
// AWS S3 or a self-hosted MinIO instance.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Helpers
//
//   - EnsureBucket: creates the target bucket on first use.
//   - PutJSON: uploads an indented JSON document.
//   - ReadObject: downloads an object fully.
//   - ListKeys: lists object names under a prefix in sorted order.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket)
package storage
