package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"catalog-mirror/core/storage"
)

// Sink receives the raw catalog rows of a cycle.
type Sink interface {
	// Dump stores rows under name (e.g. "categories").
	Dump(ctx context.Context, name string, rows []json.RawMessage) error
}

// New creates the sink selected by cfg.Sink. client may be nil unless the storage sink is used.
func New(cfg Config, client storage.Client, bucket string) (Sink, error) {
	switch cfg.Sink {
	case "", "file":
		return &FileSink{Dir: cfg.Dir}, nil
	case "storage":
		if client == nil {
			return nil, fmt.Errorf("storage audit sink requires a storage client")
		}
		return &StorageSink{Client: client, Bucket: bucket, Prefix: cfg.Prefix}, nil
	case "none":
		return NopSink{}, nil
	default:
		return nil, fmt.Errorf("unknown audit sink %q", cfg.Sink)
	}
}

// FileSink writes <Dir>/<name>.json.
type FileSink struct {
	Dir string
}

func (s *FileSink) Dump(_ context.Context, name string, rows []json.RawMessage) error {
	data, err := encode(rows)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create audit dir: %w", err)
	}
	path := filepath.Join(s.Dir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// StorageSink uploads <Prefix><name>.json to the bucket.
type StorageSink struct {
	Client storage.Client
	Bucket string
	Prefix string
}

func (s *StorageSink) Dump(ctx context.Context, name string, rows []json.RawMessage) error {
	if rows == nil {
		rows = []json.RawMessage{}
	}
	_, err := storage.PutJSON(ctx, s.Client, s.Bucket, s.Prefix+name+".json", rows)
	return err
}

// NopSink discards dumps.
type NopSink struct{}

func (NopSink) Dump(context.Context, string, []json.RawMessage) error { return nil }

func encode(rows []json.RawMessage) ([]byte, error) {
	if rows == nil {
		rows = []json.RawMessage{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(rows); err != nil {
		return nil, fmt.Errorf("failed to encode rows: %w", err)
	}
	return buf.Bytes(), nil
}
