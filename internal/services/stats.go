package services

import (
	"fileforge/internal/batch"
	domain "fileforge/internal/domain/fileops"
	"fileforge/internal/models"

	"gorm.io/gorm"
)

// StatsService persists lifetime usage counters
type StatsService struct {
	db *gorm.DB
}

// NewStatsService creates a new stats service
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// GetStats returns the lifetime counters
func (s *StatsService) GetStats() (*models.UsageStats, error) {
	return models.GetOrCreateUsageStats(s.db)
}

// RecordBatch adds the totals of one batch to the lifetime counters. Only
// positive savings count towards the saved data.
func (s *StatsService) RecordBatch(op domain.Operation, totals batch.Totals) (*models.UsageStats, error) {
	var stats *models.UsageStats
	err := s.db.Transaction(func(tx *gorm.DB) error {
		current, err := models.GetOrCreateUsageStats(tx)
		if err != nil {
			return err
		}

		current.FilesProcessed += int64(totals.Succeeded)
		current.FilesFailed += int64(totals.Failed)
		if saved := totals.DataSaved(); saved > 0 {
			current.DataSaved += saved
		}

		switch op {
		case domain.OperationConvert:
			current.Conversions++
		case domain.OperationCompress:
			current.Compressions++
		case domain.OperationMerge:
			current.Merges++
		case domain.OperationSplit:
			current.Splits++
		}

		stats = current
		return tx.Save(current).Error
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
