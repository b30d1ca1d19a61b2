package reconcile

import "context"

// Adapter defines the entity-specific part of a reconciliation.
// Each adapter knows where its collection lives in the mirror and how to build
// the desired state from freshly fetched catalog data.
type Adapter interface {
	// Name returns the unique name of this adapter (e.g., "category", "product").
	Name() string

	// Root returns the top-level mirror collection (e.g., "Category").
	Root() string

	// Desired builds the target collection. The current mirror snapshot of the
	// collection is passed in for fields that depend on previously mirrored values.
	Desired(ctx context.Context, existing map[string]any) (Collection, error)
}
