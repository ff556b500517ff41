package transport

// Transport layer types for Wails API

// FileUpload is a file the frontend read into memory
type FileUpload struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data []byte `json:"data"`
	Size int64  `json:"size"`
}

// ProcessRequest runs one operation over uploaded files and picked paths.
// Unset options fall back to the user's preferences.
type ProcessRequest struct {
	Operation string       `json:"operation"`
	Files     []FileUpload `json:"files"`
	Paths     []string     `json:"paths,omitempty"`
	Format    string       `json:"format,omitempty"`
	Level     *int         `json:"level,omitempty"`
	Parts     *int         `json:"parts,omitempty"`
}

type ProcessResponse struct {
	BatchID           string       `json:"batch_id"`
	Success           bool         `json:"success"`
	Operation         string       `json:"operation"`
	Files             []FileResult `json:"files"`
	TotalFiles        int          `json:"total_files"`
	Succeeded         int          `json:"succeeded"`
	Failed            int          `json:"failed"`
	TotalOriginalSize int64        `json:"total_original_size"`
	TotalNewSize      int64        `json:"total_new_size"`
	SavingsRatio      float64      `json:"savings_ratio"`
	AutoDownload      bool         `json:"auto_download"`
	DownloadPaths     []string     `json:"download_paths,omitempty"`
	Error             string       `json:"error,omitempty"`
	ErrorKind         string       `json:"error_kind,omitempty"`
}

type FileResult struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Success      bool   `json:"success"`
	Data         []byte `json:"data,omitempty"`
	OriginalSize int64  `json:"original_size,omitempty"`
	NewSize      int64  `json:"new_size,omitempty"`
	Error        string `json:"error,omitempty"`
	ErrorKind    string `json:"error_kind,omitempty"`
}

// SaveFile is one produced output the user wants on disk
type SaveFile struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

// SaveRequest writes outputs into Folder, or the preferred download folder
// when Folder is empty
type SaveRequest struct {
	Files  []SaveFile `json:"files"`
	Folder string     `json:"folder,omitempty"`
}

type SaveResponse struct {
	Success bool     `json:"success"`
	Paths   []string `json:"paths"`
	Error   string   `json:"error,omitempty"`
}

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

// Dialog interface for system dialogs
type DialogHandler interface {
	OpenFileDialog(operation string) ([]string, error)
	OpenDirectoryDialog() (string, error)
	ShowSaveDialog(filename string) (string, error)
	OpenFile(filePath string) error
}
