package category

import (
	"encoding/json"
	"sort"

	"catalog-mirror/core/reconcile"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Folder is a catalog product folder. Root folders have an empty PathName.
type Folder struct {
	ID          string
	Name        string
	PathName    string
	Description string
}

// Subcategory is a second-level folder attached to a root category.
type Subcategory struct {
	ID          string
	Name        string
	Description string
}

// Category is a root folder with its subcategories in catalog order.
type Category struct {
	ID            string
	Name          string
	Subcategories []Subcategory
}

// Hierarchy is the two-level category tree of one cycle.
type Hierarchy struct {
	order  []string
	byName map[string]*Category
	index  map[string]string
}

// ParseFolders decodes catalog rows. Rows without an id are logged and dropped.
func ParseFolders(rows []json.RawMessage, logger *zap.Logger) []Folder {
	folders := make([]Folder, 0, len(rows))
	for _, raw := range rows {
		row := gjson.ParseBytes(raw)
		id := row.Get("id").String()
		if id == "" {
			logger.Error("Invalid category data", zap.String("row", string(raw)))
			continue
		}
		folders = append(folders, Folder{
			ID:          id,
			Name:        row.Get("name").String(),
			PathName:    row.Get("pathName").String(),
			Description: row.Get("description").String(),
		})
	}
	return folders
}

// BuildHierarchy groups folders under their root category.
// Roots are keyed by name; a later root with the same name replaces the earlier one.
// A child whose pathName names no root is logged and dropped.
func BuildHierarchy(folders []Folder, logger *zap.Logger) *Hierarchy {
	sorted := make([]Folder, len(folders))
	copy(sorted, folders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PathName == "" && sorted[j].PathName != ""
	})

	h := &Hierarchy{
		byName: make(map[string]*Category),
		index:  make(map[string]string),
	}

	for _, f := range sorted {
		if f.PathName == "" {
			if _, ok := h.byName[f.Name]; !ok {
				h.order = append(h.order, f.Name)
			}
			h.byName[f.Name] = &Category{ID: f.ID, Name: f.Name}
			continue
		}

		parent, ok := h.byName[f.PathName]
		if !ok {
			logger.Warn("Parent category not found in the structure",
				zap.String("parent", f.PathName),
				zap.String("subcategory_id", f.ID))
			continue
		}
		parent.Subcategories = append(parent.Subcategories, Subcategory{
			ID:          f.ID,
			Name:        f.Name,
			Description: f.Description,
		})
	}

	for _, name := range h.order {
		c := h.byName[name]
		for _, sub := range c.Subcategories {
			h.index[sub.ID] = c.ID
		}
	}

	return h
}

// Categories returns the root categories in first-seen order.
func (h *Hierarchy) Categories() []Category {
	out := make([]Category, 0, len(h.order))
	for _, name := range h.order {
		out = append(out, *h.byName[name])
	}
	return out
}

// CategoryFor returns the root category id owning the subcategory.
func (h *Hierarchy) CategoryFor(subcategoryID string) (string, bool) {
	if h == nil {
		return "", false
	}
	id, ok := h.index[subcategoryID]
	return id, ok
}

// Desired renders the mirror state of the Category collection.
// The subcategory description is stored under "img".
func (h *Hierarchy) Desired() reconcile.Collection {
	out := make(reconcile.Collection, len(h.order))
	for _, name := range h.order {
		c := h.byName[name]
		subs := make(reconcile.Collection, len(c.Subcategories))
		for _, s := range c.Subcategories {
			subs[s.ID] = reconcile.Fields{
				"header": s.Name,
				"id":     s.ID,
				"img":    s.Description,
			}
		}
		out[c.ID] = reconcile.Fields{
			"id":          c.ID,
			"name":        c.Name,
			"subcategory": subs,
		}
	}
	return out
}
