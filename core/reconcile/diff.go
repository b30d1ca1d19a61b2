package reconcile

import (
	"reflect"
	"sort"

	"catalog-mirror/core/mirror"
	"catalog-mirror/core/utils"
)

// BuildPlan compares the desired collection with the mirrored one and returns the
// minimal set of actions: whole-record creates for new ids, field-level sets for
// changed values and deletes for ids that disappeared.
func BuildPlan(root string, desired Collection, existing map[string]any) *ReconcilePlan {
	plan := &ReconcilePlan{
		Root:    root,
		Actions: []Action{},
		Skips:   []Skip{},
	}
	plan.Summary.Desired = len(desired)
	plan.Summary.Existing = len(existing)

	diffCollection(plan, root, desired, existing)

	for _, a := range plan.Actions {
		switch a.Type {
		case ActionCreate:
			plan.Summary.Creates++
		case ActionSet:
			plan.Summary.Sets++
		case ActionDelete:
			plan.Summary.Deletes++
		}
	}
	plan.Summary.Skips = len(plan.Skips)

	// Writes first, then deletes.
	sort.SliceStable(plan.Actions, func(i, j int) bool {
		return plan.Actions[i].Type != ActionDelete && plan.Actions[j].Type == ActionDelete
	})
	return plan
}

func diffCollection(plan *ReconcilePlan, path string, desired Collection, existing map[string]any) {
	for _, key := range sortedKeys(desired) {
		childPath := mirror.Join(path, key)
		current, ok := existing[key]
		if !ok || current == nil {
			create(plan, childPath, desired[key])
			continue
		}
		diffValue(plan, childPath, desired[key], current)
	}

	for _, key := range sortedKeys(existing) {
		if _, ok := desired[key]; !ok {
			plan.Actions = append(plan.Actions, Action{Type: ActionDelete, Path: mirror.Join(path, key)})
		}
	}
}

func diffValue(plan *ReconcilePlan, path string, desired, current any) {
	switch d := desired.(type) {
	case Fields:
		if current == nil {
			create(plan, path, d)
			return
		}
		obj, ok := current.(map[string]any)
		if !ok {
			// Mirror holds something that is not a record; rewrite it.
			set(plan, path, d)
			return
		}
		for _, key := range sortedKeys(d) {
			diffValue(plan, mirror.Join(path, key), d[key], obj[key])
		}
	case Collection:
		if current == nil {
			diffCollection(plan, path, d, nil)
			return
		}
		obj, ok := current.(map[string]any)
		if !ok {
			set(plan, path, d)
			return
		}
		diffCollection(plan, path, d, obj)
	case nil:
		if current != nil {
			plan.Skips = append(plan.Skips, Skip{Path: path, Existing: current})
		}
	default:
		// Object-valued leaves are stored without their null members.
		leaf := compact(d)
		if leaf == nil {
			if current != nil {
				plan.Skips = append(plan.Skips, Skip{Path: path, Existing: current})
			}
			return
		}
		if current == nil {
			create(plan, path, leaf)
			return
		}
		if !equalLeaf(leaf, current) {
			plan.Actions = append(plan.Actions, Action{Type: ActionSet, Path: path, Value: leaf})
		}
	}
}

func create(plan *ReconcilePlan, path string, value any) {
	v := materialize(plan, path, value)
	if v == nil {
		return
	}
	plan.Actions = append(plan.Actions, Action{Type: ActionCreate, Path: path, Value: v})
}

func set(plan *ReconcilePlan, path string, value any) {
	v := materialize(plan, path, value)
	if v == nil {
		return
	}
	plan.Actions = append(plan.Actions, Action{Type: ActionSet, Path: path, Value: v})
}

// materialize turns a desired node into a plain JSON value. Nil leaves are dropped
// and recorded as skips; empty objects collapse to nil.
func materialize(plan *ReconcilePlan, path string, value any) any {
	var obj map[string]any
	switch v := value.(type) {
	case Fields:
		obj = v
	case Collection:
		obj = v
	case map[string]any:
		return compact(v)
	case nil:
		plan.Skips = append(plan.Skips, Skip{Path: path})
		return nil
	default:
		return v
	}

	out := make(map[string]any, len(obj))
	for _, key := range sortedKeys(obj) {
		if child := materialize(plan, mirror.Join(path, key), obj[key]); child != nil {
			out[key] = child
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// compact drops null members and empty objects from plain map values, the way
// the mirror does on write. Other values are returned unchanged.
func compact(v any) any {
	obj, ok := v.(map[string]any)
	if !ok {
		return v
	}
	out := make(map[string]any, len(obj))
	for key, child := range obj {
		if child = compact(child); child != nil {
			out[key] = child
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func equalLeaf(a, b any) bool {
	if am, ok := a.(map[string]any); ok {
		bm, ok := b.(map[string]any)
		if !ok || len(am) != len(bm) {
			return false
		}
		for key, av := range am {
			bv, ok := bm[key]
			if !ok || !equalLeaf(av, bv) {
				return false
			}
		}
		return true
	}
	if as, ok := a.([]any); ok {
		bs, ok := b.([]any)
		if !ok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !equalLeaf(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	if af, ok := utils.ToFloat(a); ok {
		bf, ok := utils.ToFloat(b)
		return ok && af == bf
	}
	return reflect.DeepEqual(a, b)
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
