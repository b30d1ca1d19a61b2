package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore keeps the tree in process memory. Values are normalised through JSON
// on write and empty objects or nulls are pruned, the way the realtime database does.
type MemoryStore struct {
	mu   sync.RWMutex
	root map[string]any
	ops  []Op
}

// Op records a mutation applied to a MemoryStore.
type Op struct {
	Kind  string // "set" or "delete"
	Path  string
	Value any
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{root: map[string]any{}}
}

// Get returns a deep copy of the subtree at path.
func (m *MemoryStore) Get(_ context.Context, path string) (any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var node any = m.root
	for _, seg := range Split(path) {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil, nil
		}
		node, ok = obj[seg]
		if !ok {
			return nil, nil
		}
	}
	return deepCopy(node), nil
}

// Set replaces the value at path, creating intermediate objects.
func (m *MemoryStore) Set(_ context.Context, path string, value any) error {
	normalized, err := normalize(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %q: %w", path, err)
	}
	normalized = prune(normalized)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, Op{Kind: "set", Path: path, Value: deepCopy(normalized)})

	segs := Split(path)
	if len(segs) == 0 {
		obj, _ := normalized.(map[string]any)
		if obj == nil {
			obj = map[string]any{}
		}
		m.root = obj
		return nil
	}
	if normalized == nil {
		m.deleteLocked(segs)
		return nil
	}

	node := m.root
	for _, seg := range segs[:len(segs)-1] {
		child, ok := node[seg].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[seg] = child
		}
		node = child
	}
	node[segs[len(segs)-1]] = normalized
	return nil
}

// Delete removes the subtree at path.
func (m *MemoryStore) Delete(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, Op{Kind: "delete", Path: path})

	segs := Split(path)
	if len(segs) == 0 {
		m.root = map[string]any{}
		return nil
	}
	m.deleteLocked(segs)
	return nil
}

// Ops returns the mutations applied so far.
func (m *MemoryStore) Ops() []Op {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Op, len(m.ops))
	copy(out, m.ops)
	return out
}

// ResetOps clears the mutation log.
func (m *MemoryStore) ResetOps() {
	m.mu.Lock()
	m.ops = nil
	m.mu.Unlock()
}

func (m *MemoryStore) deleteLocked(segs []string) {
	parents := make([]map[string]any, 0, len(segs))
	node := m.root
	for _, seg := range segs[:len(segs)-1] {
		parents = append(parents, node)
		child, ok := node[seg].(map[string]any)
		if !ok {
			return
		}
		node = child
	}
	delete(node, segs[len(segs)-1])

	// Drop parents left empty, as the realtime database does not keep empty objects.
	for i := len(parents) - 1; i >= 0; i-- {
		if len(node) > 0 {
			return
		}
		delete(parents[i], segs[i])
		node = parents[i]
	}
}

func normalize(value any) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func prune(v any) any {
	obj, ok := v.(map[string]any)
	if !ok {
		return v
	}
	for k, child := range obj {
		child = prune(child)
		if child == nil {
			delete(obj, k)
			continue
		}
		obj[k] = child
	}
	if len(obj) == 0 {
		return nil
	}
	return obj
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = deepCopy(child)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = deepCopy(child)
		}
		return out
	default:
		return t
	}
}
