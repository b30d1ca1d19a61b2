package history

import "time"

// Run statuses.
const (
	StatusOK      = "ok"
	StatusPartial = "partial"
)

// SyncRun is one journaled sync cycle.
type SyncRun struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CycleID    string    `gorm:"size:36;uniqueIndex" json:"cycle_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	DurationMS int64     `json:"duration_ms"`
	DryRun     bool      `json:"dry_run"`
	Status     string    `gorm:"size:16;index" json:"status"`
	Creates    int       `json:"creates"`
	Sets       int       `json:"sets"`
	Deletes    int       `json:"deletes"`
	Skips      int       `json:"skips"`
	// Entities holds the per-entity reports as JSON.
	Entities string `gorm:"type:text" json:"entities"`
	// Errors holds the failed steps as JSON.
	Errors string `gorm:"type:text" json:"errors"`
}

// TableName overrides the table name used by GORM.
func (SyncRun) TableName() string {
	return "sync_runs"
}

// journalColumns are the columns Record writes.
var journalColumns = []string{
	"id", "cycle_id", "started_at", "finished_at", "duration_ms", "dry_run", "status",
	"creates", "sets", "deletes", "skips", "entities", "errors",
}
