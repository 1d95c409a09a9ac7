package domain

import "time"

// FetchTrigger records what caused a refresh.
type FetchTrigger string

const (
	TriggerStartup   FetchTrigger = "startup"
	TriggerScheduled FetchTrigger = "scheduled"
	TriggerManual    FetchTrigger = "manual"
)

// FetchLog is the persisted record of one refresh of the spreadsheet. Events
// themselves are never stored; only this audit row survives a fetch.
type FetchLog struct {
	ID           uint         `gorm:"primaryKey"`
	Trigger      FetchTrigger `gorm:"type:varchar(20);not null;index"`
	Source       DataSource   `gorm:"type:varchar(20);not null"`
	DeliveryRows int          `gorm:"not null;column:delivery_rows"`
	CallRows     int          `gorm:"not null;column:call_rows"`
	RequestRows  int          `gorm:"not null;column:request_rows"`
	TotalEvents  int          `gorm:"not null;column:total_events"`
	DurationMs   int64        `gorm:"not null;column:duration_ms"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP;index"`
}

// TableName keeps the table name in sync with the goose migrations.
func (FetchLog) TableName() string {
	return "fetch_logs"
}
