package batch

import (
	"context"

	"fileforge/internal/common"
	domain "fileforge/internal/domain/fileops"
)

// Runner processes a batch one item at a time, strictly in input order. An
// item never starts before the previous one has produced its record.
type Runner struct {
	observer domain.Observer
}

// NewRunner creates a runner that reports each record to observer, which may
// be nil
func NewRunner(observer domain.Observer) *Runner {
	return &Runner{observer: observer}
}

// Run processes every file and returns one record per file, in input order
func (r *Runner) Run(ctx context.Context, files []*domain.SourceFile, processor ProcessorFunc) []domain.OutcomeRecord {
	records := make([]domain.OutcomeRecord, 0, len(files))
	for i, file := range files {
		item := WorkItem{
			ID:    common.GenerateUUID(),
			Index: i,
			File:  file,
		}

		record := processor(ctx, item)
		if record.ID == "" {
			record.ID = item.ID
		}
		records = append(records, record)

		r.notify(i, len(files), record)
	}
	return records
}

// Emit assigns IDs to records produced outside Run and reports them in order
func (r *Runner) Emit(records []domain.OutcomeRecord) []domain.OutcomeRecord {
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = common.GenerateUUID()
		}
		r.notify(i, len(records), records[i])
	}
	return records
}

func (r *Runner) notify(index, total int, record domain.OutcomeRecord) {
	if r.observer != nil {
		r.observer(index, total, record)
	}
}

// Summarize collects totals over records. Only successful records that carry
// sizes contribute to the size totals.
func Summarize(records []domain.OutcomeRecord) Totals {
	var totals Totals
	for _, record := range records {
		totals.Records++
		if !record.Success {
			totals.Failed++
			continue
		}
		totals.Succeeded++
		if record.OriginalSize > 0 || record.NewSize > 0 {
			totals.TotalOriginalSize += record.OriginalSize
			totals.TotalNewSize += record.NewSize
		}
	}

	if totals.TotalOriginalSize > 0 {
		totals.SavingsRatio = float64(totals.DataSaved()) / float64(totals.TotalOriginalSize) * 100
	}
	return totals
}
