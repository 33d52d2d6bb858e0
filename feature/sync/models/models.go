package models

import "time"

// Job statuses. Jobs are inserted as running and finish as completed or
// failed; pending exists for rows created ahead of execution.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// TriggeredManual marks jobs started through the trigger endpoint.
const TriggeredManual = "manual"

// SyncJob is the persisted record of one sync run.
type SyncJob struct {
	ID        uint `gorm:"primaryKey;column:id"`
	AccountID uint `gorm:"column:account_id;not null;index"`

	// Job details
	Status      string `gorm:"column:status;type:varchar(20);default:pending"`
	TriggeredBy string `gorm:"column:triggered_by;type:varchar(50)"`

	// Results
	TotalListingsChecked int `gorm:"column:total_listings_checked;default:0"`
	ItemsUpdated         int `gorm:"column:items_updated;default:0"`
	ItemsFailed          int `gorm:"column:items_failed;default:0"`
	ItemsOutOfStock      int `gorm:"column:items_out_of_stock;default:0"`

	// Timing
	StartedAt       *time.Time `gorm:"column:started_at"`
	CompletedAt     *time.Time `gorm:"column:completed_at"`
	DurationSeconds float64    `gorm:"column:duration_seconds"`

	// Logs
	ErrorMessage string `gorm:"column:error_message;type:text"`
	LogSummary   string `gorm:"column:log_summary;type:text"`

	// Metadata
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (SyncJob) TableName() string {
	return "sync_jobs"
}
