package reconcile

// Fields is the desired state of a single record. Only the listed fields are compared;
// fields present in the mirror but absent here are left untouched.
// A nil value marks a field that could not be resolved: it is never written.
type Fields map[string]any

// Collection is a keyed set of children whose key set must match the mirror exactly.
// Keys present in the mirror but absent here are deleted.
type Collection map[string]any

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionCreate writes a whole new record.
	ActionCreate ActionType = "create"
	// ActionSet overwrites a single changed value.
	ActionSet ActionType = "set"
	// ActionDelete removes a stale subtree.
	ActionDelete ActionType = "delete"
)

// Action represents a planned mutation of the mirror.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Path is the mirror path the action targets.
	Path string `json:"path"`

	// Value is the value written by create and set actions.
	Value any `json:"value,omitempty"`
}

// Skip records a write that was withheld because the computed value was missing.
type Skip struct {
	// Path is the mirror path that was not written.
	Path string `json:"path"`

	// Existing is the mirror value left in place, if any.
	Existing any `json:"existing,omitempty"`
}

// ReconcilePlan contains the planned actions for one collection.
type ReconcilePlan struct {
	// Root is the top-level mirror collection.
	Root string `json:"root"`

	// Actions contains planned mutations in execution order.
	Actions []Action `json:"actions"`

	// Skips contains withheld writes.
	Skips []Skip `json:"skips"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// Desired is the number of records in the fresh catalog state.
	Desired int `json:"desired"`

	// Existing is the number of records found in the mirror.
	Existing int `json:"existing"`

	// Creates counts create actions.
	Creates int `json:"creates"`

	// Sets counts field-level set actions.
	Sets int `json:"sets"`

	// Deletes counts delete actions.
	Deletes int `json:"deletes"`

	// Skips counts withheld writes.
	Skips int `json:"skips"`
}

// ReconcileOptions controls reconcile behavior.
type ReconcileOptions struct {
	// DryRun plans without executing any mutation.
	DryRun bool
}

// Report is the outcome of reconciling one collection.
type Report struct {
	// Entity is the adapter name.
	Entity string `json:"entity"`

	// Summary is the plan summary.
	Summary PlanSummary `json:"summary"`

	// Executed counts mutations that reached the store.
	Executed int `json:"executed"`

	// Error holds the step failure, if any.
	Error string `json:"error,omitempty"`
}
