package transport

import (
	"context"
	"log/slog"

	"fileforge/internal/common"
	fileopsDomain "fileforge/internal/domain/fileops"
	preferencesDomain "fileforge/internal/domain/preferences"
	statisticsDomain "fileforge/internal/domain/statistics"
)

type WailsApp struct {
	ctx               context.Context
	fileOpsService    fileopsDomain.Service
	preferencesRepo   preferencesDomain.Repository
	statisticsService statisticsDomain.Service
	dialogsHandler    DialogHandler
	logger            *slog.Logger
}

func NewWailsApp(
	ctx context.Context,
	fileOpsService fileopsDomain.Service,
	preferencesRepo preferencesDomain.Repository,
	statisticsService statisticsDomain.Service,
	logger *slog.Logger,
) *WailsApp {
	return &WailsApp{
		ctx:               ctx,
		fileOpsService:    fileOpsService,
		preferencesRepo:   preferencesRepo,
		statisticsService: statisticsService,
		dialogsHandler:    NewDialogsHandler(ctx),
		logger:            logger,
	}
}

// ProcessFiles runs request.Operation over the uploaded files followed by
// the picked paths. Unreadable paths fail in their own record. With auto
// download enabled the successful outputs are written to the download
// folder as well.
func (a *WailsApp) ProcessFiles(request ProcessRequest) ProcessResponse {
	domainResponse := a.fileOpsService.Process(a.ctx, fileopsDomain.BatchRequest{
		Files:        sourceFiles(request),
		Operation:    request.Operation,
		TargetFormat: request.Format,
		Level:        request.Level,
		Parts:        request.Parts,
	})

	response := toProcessResponse(domainResponse)

	prefs, err := a.preferencesRepo.GetPreferences()
	if err != nil || !prefs.AutoDownloadEnabled {
		return response
	}

	response.AutoDownload = true
	saved := a.SaveResults(SaveRequest{Files: savable(response.Files)})
	response.DownloadPaths = saved.Paths
	if !saved.Success {
		a.logger.Warn("Auto download incomplete", "batch_id", response.BatchID, "error", saved.Error)
	}
	return response
}

func sourceFiles(request ProcessRequest) []*fileopsDomain.SourceFile {
	files := make([]*fileopsDomain.SourceFile, 0, len(request.Files)+len(request.Paths))
	for _, upload := range request.Files {
		files = append(files, fileopsDomain.NewSourceFile(upload.Name, upload.Type, upload.Data))
	}
	for _, path := range request.Paths {
		files = append(files, fileopsDomain.SourceFileFromPath(path))
	}
	return files
}

func toProcessResponse(domainResponse fileopsDomain.BatchResponse) ProcessResponse {
	transportFiles := make([]FileResult, len(domainResponse.Records))
	for i, record := range domainResponse.Records {
		transportFiles[i] = FileResult{
			ID:           record.ID,
			Name:         record.Name,
			Success:      record.Success,
			Data:         record.Data,
			OriginalSize: record.OriginalSize,
			NewSize:      record.NewSize,
			Error:        record.ErrorMessage,
			ErrorKind:    record.ErrorKind,
		}
	}

	return ProcessResponse{
		BatchID:           domainResponse.BatchID,
		Success:           domainResponse.Success,
		Operation:         domainResponse.Operation,
		Files:             transportFiles,
		TotalFiles:        domainResponse.TotalFiles,
		Succeeded:         domainResponse.Succeeded,
		Failed:            domainResponse.Failed,
		TotalOriginalSize: domainResponse.TotalOriginalSize,
		TotalNewSize:      domainResponse.TotalNewSize,
		SavingsRatio:      domainResponse.SavingsRatio,
		Error:             domainResponse.Error,
		ErrorKind:         domainResponse.ErrorKind,
	}
}

func savable(results []FileResult) []SaveFile {
	var files []SaveFile
	for _, result := range results {
		if result.Success {
			files = append(files, SaveFile{Name: result.Name, Data: result.Data})
		}
	}
	return files
}

// SaveResults writes every file of request without overwriting anything on
// disk. Writing stops at the first failure; paths written so far are kept.
func (a *WailsApp) SaveResults(request SaveRequest) SaveResponse {
	folder := request.Folder
	if folder == "" {
		var err error
		folder, err = a.preferencesRepo.GetDownloadFolder()
		if err != nil {
			return SaveResponse{Success: false, Paths: []string{}, Error: err.Error()}
		}
	}

	paths := make([]string, 0, len(request.Files))
	for _, file := range request.Files {
		path, err := common.WriteOutput(folder, file.Name, file.Data)
		if err != nil {
			a.logger.Error("Failed to save output", "name", file.Name, "folder", folder, "error", err)
			return SaveResponse{Success: false, Paths: paths, Error: err.Error()}
		}
		paths = append(paths, path)
	}

	a.logger.Info("Saved outputs", "count", len(paths), "folder", folder)
	return SaveResponse{Success: true, Paths: paths}
}

// SupportedConversions lists the target formats per source format
func (a *WailsApp) SupportedConversions() map[string][]string {
	conversions := a.fileOpsService.SupportedConversions()
	out := make(map[string][]string, len(conversions))
	for source, targets := range conversions {
		names := make([]string, len(targets))
		for i, target := range targets {
			names[i] = string(target)
		}
		out[string(source)] = names
	}
	return out
}

func (a *WailsApp) GetPreferences() (*preferencesDomain.UserPreferencesData, error) {
	return a.preferencesRepo.GetPreferences()
}

func (a *WailsApp) UpdatePreferences(data map[string]any) error {
	return a.preferencesRepo.UpdatePreferences(data)
}

func (a *WailsApp) OpenFileDialog(operation string) ([]string, error) {
	return a.dialogsHandler.OpenFileDialog(operation)
}

func (a *WailsApp) OpenDirectoryDialog() (string, error) {
	return a.dialogsHandler.OpenDirectoryDialog()
}

func (a *WailsApp) ShowSaveDialog(filename string) (string, error) {
	return a.dialogsHandler.ShowSaveDialog(filename)
}

func (a *WailsApp) OpenFile(filePath string) error {
	return a.dialogsHandler.OpenFile(filePath)
}

func (a *WailsApp) GetAppStatus() map[string]any {
	return a.statisticsService.GetAppStatus()
}

func (a *WailsApp) GetStats() *AppStats {
	domainStats := a.statisticsService.GetStats()
	return &AppStats{
		TotalFilesProcessed:   domainStats.TotalFilesProcessed,
		TotalFilesFailed:      domainStats.TotalFilesFailed,
		TotalDataSaved:        domainStats.TotalDataSaved,
		TotalDataSavedHuman:   domainStats.TotalDataSavedHuman,
		SessionFilesProcessed: domainStats.SessionFilesProcessed,
		SessionDataSaved:      domainStats.SessionDataSaved,
		SessionDataSavedHuman: domainStats.SessionDataSavedHuman,
		Conversions:           domainStats.Conversions,
		Compressions:          domainStats.Compressions,
		Merges:                domainStats.Merges,
		Splits:                domainStats.Splits,
	}
}
