package container

import (
	"context"
	"log/slog"
	"sync"

	"fileforge/internal/batch"
	"fileforge/internal/common"
	"fileforge/internal/config"
	domain "fileforge/internal/domain/fileops"
	preferencesDomain "fileforge/internal/domain/preferences"
	statisticsDomain "fileforge/internal/domain/statistics"
	"fileforge/internal/fileops"
	"fileforge/internal/services"

	"github.com/dustin/go-humanize"
)

// PreferencesRepositoryAdapter adapts services.PreferencesService to preferencesDomain.Repository
type PreferencesRepositoryAdapter struct {
	service *services.PreferencesService
}

func (a *PreferencesRepositoryAdapter) GetPreferences() (*preferencesDomain.UserPreferencesData, error) {
	return a.service.GetPreferences()
}

func (a *PreferencesRepositoryAdapter) UpdatePreferences(data map[string]any) error {
	return a.service.UpdatePreferences(data)
}

func (a *PreferencesRepositoryAdapter) GetDownloadFolder() (string, error) {
	return a.service.GetDownloadFolder()
}

// FileOpsServiceImpl implements the file operations domain service. Batches
// are serialised: a call made while another batch runs waits for it.
type FileOpsServiceImpl struct {
	mu         sync.Mutex
	dispatcher *fileops.Dispatcher
	prefsRepo  preferencesDomain.Repository
	stats      statisticsDomain.Service
	events     domain.EventSink
	config     *config.Config
	logger     *slog.Logger
}

func (s *FileOpsServiceImpl) Process(ctx context.Context, request domain.BatchRequest) domain.BatchResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	batchID := common.GenerateUUID()
	logger := s.logger.With("batch_id", batchID, "operation", request.Operation)

	op, err := domain.ParseOperation(request.Operation)
	if err != nil {
		logger.Error("Batch request validation failed", "error", err)
		return failedResponse(batchID, request.Operation, len(request.Files), err)
	}

	opts := s.resolveOptions(op, request)
	logger.Info("Processing batch", "files", len(request.Files), "format", opts.TargetFormat, "level", opts.Level, "parts", opts.Parts)

	dispatcher := s.dispatcher.WithObserver(s.observe(ctx, batchID))
	records, err := dispatcher.Process(ctx, request.Files, op, opts)
	if err != nil {
		logger.Error("Batch failed", "error", err)
		return failedResponse(batchID, op.String(), len(request.Files), err)
	}

	totals := batch.Summarize(records)
	s.stats.RecordBatch(op, totals)

	logger.Info("Batch finished",
		"records", totals.Records,
		"succeeded", totals.Succeeded,
		"failed", totals.Failed,
		"original_size", humanize.Bytes(uint64(totals.TotalOriginalSize)),
		"new_size", humanize.Bytes(uint64(totals.TotalNewSize)))

	return domain.BatchResponse{
		BatchID:           batchID,
		Success:           totals.Failed == 0,
		Operation:         op.String(),
		Records:           records,
		TotalFiles:        len(request.Files),
		Succeeded:         totals.Succeeded,
		Failed:            totals.Failed,
		TotalOriginalSize: totals.TotalOriginalSize,
		TotalNewSize:      totals.TotalNewSize,
		SavingsRatio:      totals.SavingsRatio,
	}
}

func (s *FileOpsServiceImpl) SupportedConversions() map[domain.Format][]domain.Format {
	return fileops.SupportedConversions()
}

// resolveOptions fills unset options from preferences, then from config
func (s *FileOpsServiceImpl) resolveOptions(op domain.Operation, request domain.BatchRequest) domain.Options {
	prefs, err := s.prefsRepo.GetPreferences()
	if err != nil {
		s.logger.Warn("Failed to load preferences, using defaults", "error", err)
	}

	var opts domain.Options
	switch op {
	case domain.OperationConvert:
		opts.TargetFormat = domain.Format(request.TargetFormat)
		if opts.TargetFormat == "" && prefs != nil {
			opts.TargetFormat = domain.Format(prefs.DefaultTargetFormat)
		}
	case domain.OperationCompress:
		switch {
		case request.Level != nil:
			opts.Level = *request.Level
		case prefs != nil:
			opts.Level = prefs.DefaultCompressionLevel
		default:
			opts.Level = domain.MaxLevel / 2
		}
	case domain.OperationSplit:
		switch {
		case request.Parts != nil:
			opts.Parts = *request.Parts
		case prefs != nil && prefs.DefaultSplitParts > 0:
			opts.Parts = prefs.DefaultSplitParts
		default:
			opts.Parts = s.config.Pipeline.DefaultSplitParts
		}
	}
	return opts
}

// observe turns every produced record into progress events
func (s *FileOpsServiceImpl) observe(ctx context.Context, batchID string) domain.Observer {
	return func(index, total int, record domain.OutcomeRecord) {
		update := domain.FileProgressUpdate{
			BatchID:  batchID,
			RecordID: record.ID,
			Name:     record.Name,
			Status:   common.StatusCompleted,
			Progress: common.CompletedProgressPercent,
		}
		if !record.Success {
			update.Status = common.StatusError
			update.Error = record.ErrorMessage
		}
		s.events.Emit(ctx, common.EventFileProgress, update)

		if record.Success {
			completed := record
			completed.Data = nil
			s.events.Emit(ctx, common.EventFileCompleted, completed)
		}

		s.events.Emit(ctx, common.EventBatchProgress, map[string]any{
			"batch_id": batchID,
			"percent":  float64(index+1) / float64(total) * 100,
			"current":  index + 1,
			"total":    total,
		})
	}
}

func failedResponse(batchID, operation string, files int, err error) domain.BatchResponse {
	return domain.BatchResponse{
		BatchID:    batchID,
		Success:    false,
		Operation:  operation,
		Records:    []domain.OutcomeRecord{},
		TotalFiles: files,
		Error:      err.Error(),
		ErrorKind:  domain.KindOf(err).String(),
	}
}

// StatisticsServiceImpl implements the statistics domain service. Lifetime
// counters live in the database, session counters in memory.
type StatisticsServiceImpl struct {
	mu      sync.Mutex
	service *services.StatsService
	session struct {
		files     int
		dataSaved int64
	}
	events domain.EventSink
	config *config.Config
	ctx    context.Context
}

func (s *StatisticsServiceImpl) RecordBatch(op domain.Operation, totals batch.Totals) {
	s.mu.Lock()
	s.session.files += totals.Succeeded
	if saved := totals.DataSaved(); saved > 0 {
		s.session.dataSaved += saved
	}
	s.mu.Unlock()

	if _, err := s.service.RecordBatch(op, totals); err != nil {
		s.config.Logger.Error("Failed to record usage statistics", "operation", op.String(), "error", err)
	}

	s.events.Emit(s.ctx, common.EventStatsUpdate, s.GetStats())
}

func (s *StatisticsServiceImpl) GetStats() *statisticsDomain.AppStats {
	s.mu.Lock()
	stats := &statisticsDomain.AppStats{
		SessionFilesProcessed: s.session.files,
		SessionDataSaved:      s.session.dataSaved,
		SessionDataSavedHuman: humanize.Bytes(uint64(s.session.dataSaved)),
	}
	s.mu.Unlock()

	lifetime, err := s.service.GetStats()
	if err != nil {
		s.config.Logger.Warn("Failed to load usage statistics", "error", err)
		return stats
	}

	stats.TotalFilesProcessed = lifetime.FilesProcessed
	stats.TotalFilesFailed = lifetime.FilesFailed
	stats.TotalDataSaved = lifetime.DataSaved
	stats.TotalDataSavedHuman = humanize.Bytes(uint64(lifetime.DataSaved))
	stats.Conversions = lifetime.Conversions
	stats.Compressions = lifetime.Compressions
	stats.Merges = lifetime.Merges
	stats.Splits = lifetime.Splits
	return stats
}

func (s *StatisticsServiceImpl) GetAppStatus() map[string]any {
	return map[string]any{
		"status":              "running",
		"framework":           "Wails",
		"app_name":            "FileForge",
		"working_directory":   s.config.WorkingDir,
		"database_path":       s.config.DatabasePath,
		"max_image_dimension": s.config.Pipeline.MaxImageDimension,
		"raster_dpi":          s.config.Pipeline.RasterDPI,
	}
}
