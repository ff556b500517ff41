package statistics

import (
	"fileforge/internal/batch"
	"fileforge/internal/domain/fileops"
)

// AppStats represents application usage statistics
type AppStats struct {
	TotalFilesProcessed   int64  `json:"total_files_processed"`
	TotalFilesFailed      int64  `json:"total_files_failed"`
	TotalDataSaved        int64  `json:"total_data_saved"`
	TotalDataSavedHuman   string `json:"total_data_saved_human"`
	SessionFilesProcessed int    `json:"session_files_processed"`
	SessionDataSaved      int64  `json:"session_data_saved"`
	SessionDataSavedHuman string `json:"session_data_saved_human"`
	Conversions           int64  `json:"conversions"`
	Compressions          int64  `json:"compressions"`
	Merges                int64  `json:"merges"`
	Splits                int64  `json:"splits"`
}

// Service defines the interface for statistics operations
type Service interface {
	RecordBatch(op fileops.Operation, totals batch.Totals)
	GetStats() *AppStats
	GetAppStatus() map[string]any
}
