// Package category mirrors the catalog folder tree into the Category collection.
//
// Catalog folders form a two-level tree: root folders have an empty pathName and
// second-level folders name their root through pathName. BuildHierarchy groups
// them and indexes every subcategory id to its root category id, which product
// sync uses to fill category_id without searching the tree per product.
//
// # Mirror Layout
//
//	Category/<id> = {id, name, subcategory: {<sid>: {header, id, img}}}
//
// The subcategory description is stored under "img". Subcategories missing from
// the catalog are removed from the mirror along with stale root categories.
//
// # Components
//
//   - Hierarchy: parsed folder tree plus the subcategory index.
//   - Adapter: exposes the tree to the reconcile engine.
//   - Service: builds the hierarchy and applies the reconcile plan.
package category
