// internal/db/models.go
package db

import "time"

const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// run_records: jeden wiersz na uruchomienie demo
type RunRecord struct {
	RunID       string `gorm:"primaryKey;size:36"`
	DemoID      string `gorm:"index;size:128"`
	DisplayName string `gorm:"size:255"`
	Status      string `gorm:"index;size:16"` // ok / failed
	Error       string `gorm:"type:text"`
	DurationMs  int64
	StartedAt   time.Time `gorm:"index"`
}
