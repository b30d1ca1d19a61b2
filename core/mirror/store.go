package mirror

import (
	"context"
	"fmt"
	"strings"
)

// Top-level collections of the mirror tree.
const (
	RootCategory = "Category"
	RootSupplier = "Supliers"
	RootProduct  = "Products"
)

// Store is a hierarchical key/value store addressed by slash separated paths.
type Store interface {
	// Get returns the subtree at path decoded as JSON values
	// (map[string]any, []any, string, float64, bool) or nil when nothing is stored.
	Get(ctx context.Context, path string) (any, error)
	// Set replaces the value at path.
	Set(ctx context.Context, path string, value any) error
	// Delete removes the subtree at path.
	Delete(ctx context.Context, path string) error
}

// Open creates the store selected by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", "firebase":
		return NewFirebaseStore(ctx, cfg)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown mirror driver %q", cfg.Driver)
	}
}

// Join builds a store path from segments.
func Join(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.Trim(s, "/")
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "/")
}

// Split breaks a path into its non-empty segments.
func Split(path string) []string {
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// GetMap reads a subtree that is expected to be an object. Missing data yields an empty map.
func GetMap(ctx context.Context, s Store, path string) (map[string]any, error) {
	v, err := s.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	switch m := v.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return m, nil
	case []any:
		// The realtime database returns objects with numeric keys as arrays.
		out := make(map[string]any, len(m))
		for i, item := range m {
			if item != nil {
				out[fmt.Sprint(i)] = item
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("mirror path %q holds %T, expected an object", path, v)
	}
}
