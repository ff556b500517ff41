package fileops

// Quality is the lossy-encoding fidelity derived from a compression level.
// It is kept as the rational Level/9 so no float rounding leaks into the
// encoder settings.
type Quality struct {
	Level int
}

const MaxLevel = 9

// QualityFromLevel clamps level into [0, 9]
func QualityFromLevel(level int) Quality {
	if level < 0 {
		level = 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return Quality{Level: level}
}

// JPEG returns the encoder quality in [1, 100], rounding level*100/9 half up
func (q Quality) JPEG() int {
	v := (2*q.Level*100 + MaxLevel) / (2 * MaxLevel)
	if v < 1 {
		return 1
	}
	if v > 100 {
		return 100
	}
	return v
}

// BatchRequest is one call into the pipeline. Unset options fall back to
// the user's preferences.
type BatchRequest struct {
	Files        []*SourceFile
	Operation    string
	TargetFormat string
	Level        *int
	Parts        *int
}

// BatchResponse summarises a processed batch
type BatchResponse struct {
	BatchID           string          `json:"batch_id"`
	Success           bool            `json:"success"`
	Operation         string          `json:"operation"`
	Records           []OutcomeRecord `json:"records"`
	TotalFiles        int             `json:"total_files"`
	Succeeded         int             `json:"succeeded"`
	Failed            int             `json:"failed"`
	TotalOriginalSize int64           `json:"total_original_size"`
	TotalNewSize      int64           `json:"total_new_size"`
	SavingsRatio      float64         `json:"savings_ratio"`
	Error             string          `json:"error,omitempty"`
	ErrorKind         string          `json:"error_kind,omitempty"`
}

// FileProgressUpdate is emitted for every produced record
type FileProgressUpdate struct {
	BatchID  string  `json:"batch_id"`
	RecordID string  `json:"record_id"`
	Name     string  `json:"name"`
	Status   string  `json:"status"`
	Progress float64 `json:"progress"`
	Error    string  `json:"error,omitempty"`
}
