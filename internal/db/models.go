// internal/db/models.go
package db

import "time"

// sync_runs — one row per marketplace per process run
type SyncRun struct {
	RunID        uint      `gorm:"primaryKey;column:run_id"`
	Marketplace  string    `gorm:"index"`
	Offers       int
	StocksPushed int
	PricesPushed int
	Status       int       `gorm:"index"` // 0=pending, 1=done, 2=error
	LastError    string    `gorm:"type:text"`
	StartedAt    time.Time `gorm:"autoCreateTime"`
	FinishedAt   *time.Time
}
