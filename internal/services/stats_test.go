package services

import (
	"testing"

	"fileforge/internal/batch"
	domain "fileforge/internal/domain/fileops"
)

func TestStatsService_StartsEmpty(t *testing.T) {
	service := NewStatsService(setupTestDB(t))

	stats, err := service.GetStats()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if stats.FilesProcessed != 0 || stats.DataSaved != 0 {
		t.Errorf("Expected zero counters, got %+v", stats)
	}
}

func TestStatsService_RecordBatch(t *testing.T) {
	service := NewStatsService(setupTestDB(t))

	_, err := service.RecordBatch(domain.OperationCompress, batch.Totals{
		Succeeded:         2,
		Failed:            1,
		TotalOriginalSize: 1000,
		TotalNewSize:      600,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Growth does not reduce the saved total
	_, err = service.RecordBatch(domain.OperationConvert, batch.Totals{
		Succeeded:         1,
		TotalOriginalSize: 100,
		TotalNewSize:      300,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	stats, err := service.GetStats()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if stats.FilesProcessed != 3 {
		t.Errorf("Expected 3 files processed, got %d", stats.FilesProcessed)
	}
	if stats.FilesFailed != 1 {
		t.Errorf("Expected 1 failed file, got %d", stats.FilesFailed)
	}
	if stats.DataSaved != 400 {
		t.Errorf("Expected 400 bytes saved, got %d", stats.DataSaved)
	}
	if stats.Compressions != 1 || stats.Conversions != 1 || stats.Merges != 0 {
		t.Errorf("Unexpected per-operation counters %+v", stats)
	}
}
