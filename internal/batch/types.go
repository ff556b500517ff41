package batch

import (
	"context"

	domain "fileforge/internal/domain/fileops"
)

// WorkItem represents a single file to be processed
type WorkItem struct {
	ID    string
	Index int
	File  *domain.SourceFile
}

// ProcessorFunc processes one work item into its outcome record
type ProcessorFunc func(ctx context.Context, item WorkItem) domain.OutcomeRecord

// Totals aggregates the records of a batch
type Totals struct {
	Records           int     `json:"records"`
	Succeeded         int     `json:"succeeded"`
	Failed            int     `json:"failed"`
	TotalOriginalSize int64   `json:"total_original_size"`
	TotalNewSize      int64   `json:"total_new_size"`
	SavingsRatio      float64 `json:"savings_ratio"`
}

// DataSaved returns how many bytes the sized records saved. Negative when the
// outputs grew.
func (t Totals) DataSaved() int64 {
	return t.TotalOriginalSize - t.TotalNewSize
}
