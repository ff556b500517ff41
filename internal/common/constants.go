package common

const (
	CompletedProgressPercent = 100.0

	// Event names
	EventFileProgress  = "file:progress"
	EventFileCompleted = "file:completed"
	EventBatchProgress = "batch:progress"
	EventStatsUpdate   = "stats:update"

	// File statuses reported in progress events
	StatusCompleted = "completed"
	StatusError     = "error"
)
