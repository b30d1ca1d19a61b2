// Package audit keeps a copy of the raw catalog rows fetched in each cycle.
//
// After a cycle the orchestrator dumps categories, counterparties and products as
// indented JSON. The file sink overwrites <dir>/<name>.json; the storage sink
// uploads <prefix><name>.json to the configured bucket. Dumps are diagnostic only
// and a failed dump never fails the cycle.
package audit
