package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// UsageStats holds the lifetime counters of the app. There is one row.
type UsageStats struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	FilesProcessed int64     `json:"files_processed"`
	FilesFailed    int64     `json:"files_failed"`
	DataSaved      int64     `json:"data_saved"`
	Conversions    int64     `json:"conversions"`
	Compressions   int64     `json:"compressions"`
	Merges         int64     `json:"merges"`
	Splits         int64     `json:"splits"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// GetOrCreateUsageStats loads the stats row, creating it on first use
func GetOrCreateUsageStats(db *gorm.DB) (*UsageStats, error) {
	var stats UsageStats

	result := db.First(&stats, 1)
	if result.Error == nil {
		return &stats, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	stats = UsageStats{ID: 1}
	if err := db.Create(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// All lists every model for migrations
func All() []any {
	return []any{&UserPreferences{}, &UsageStats{}}
}
