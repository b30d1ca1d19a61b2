package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"catalog-mirror/core/mirror"
	"catalog-mirror/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrNoStorage is returned when a bucket operation is requested without a storage client.
var ErrNoStorage = errors.New("object storage is not configured")

const timestampLayout = "20060102T150405Z"

// Service copies the whole mirror tree to and from backups.
type Service struct {
	store  mirror.Store
	client storage.Client
	bucket string
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a backup service. client may be nil, which limits
// the service to restoring local files.
func NewService(store mirror.Store, client storage.Client, bucket string, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		client: client,
		bucket: bucket,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Snapshot uploads the mirror tree as JSON and prunes old snapshots.
// It returns the object name of the new snapshot.
func (s *Service) Snapshot(ctx context.Context) (string, error) {
	if s.client == nil {
		return "", ErrNoStorage
	}

	tree, err := s.store.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to read mirror: %w", err)
	}
	if tree == nil {
		tree = map[string]any{}
	}

	if err := storage.EnsureBucket(ctx, s.client, s.bucket); err != nil {
		return "", err
	}

	name := s.cfg.Prefix + s.now().UTC().Format(timestampLayout) + ".json"
	size, err := storage.PutJSON(ctx, s.client, s.bucket, name, tree)
	if err != nil {
		return "", err
	}
	s.logger.Info("Mirror snapshot uploaded",
		zap.String("bucket", s.bucket),
		zap.String("object", name),
		zap.Int64("size", size))

	if err := s.prune(ctx); err != nil {
		s.logger.Warn("Failed to prune old snapshots", zap.Error(err))
	}
	return name, nil
}

// Restore replaces the mirror root with a backup. source is a local file path
// or, when no such file exists, an object name in the bucket. An empty source
// restores the configured backup file.
func (s *Service) Restore(ctx context.Context, source string) error {
	if source == "" {
		source = s.cfg.File
	}

	data, origin, err := s.load(ctx, source)
	if err != nil {
		return err
	}

	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("failed to decode backup %s: %w", source, err)
	}
	s.logger.Info("Backup data loaded", zap.String("source", source), zap.String("origin", origin))

	if err := s.store.Set(ctx, "", tree); err != nil {
		return fmt.Errorf("failed to restore mirror: %w", err)
	}
	s.logger.Info("Data restored successfully", zap.Int("top_level_keys", len(tree)))
	return nil
}

// List returns the snapshot object names, oldest first.
func (s *Service) List(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}
	return storage.ListKeys(ctx, s.client, s.bucket, s.cfg.Prefix)
}

func (s *Service) load(ctx context.Context, source string) ([]byte, string, error) {
	data, err := os.ReadFile(source)
	if err == nil {
		return data, "file", nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, "", fmt.Errorf("failed to read backup %s: %w", source, err)
	}
	if s.client == nil {
		return nil, "", fmt.Errorf("backup %s not found: %w", source, err)
	}

	data, err = storage.ReadObject(ctx, s.client, s.bucket, strings.TrimPrefix(source, "/"))
	if err != nil {
		return nil, "", err
	}
	return data, "storage", nil
}

func (s *Service) prune(ctx context.Context) error {
	if s.cfg.Keep <= 0 {
		return nil
	}
	keys, err := s.List(ctx)
	if err != nil {
		return err
	}
	if len(keys) <= s.cfg.Keep {
		return nil
	}

	var errs []error
	for _, key := range keys[:len(keys)-s.cfg.Keep] {
		if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
			continue
		}
		s.logger.Debug("Old snapshot removed", zap.String("object", key))
	}
	return errors.Join(errs...)
}
