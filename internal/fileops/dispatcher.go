package fileops

import (
	"context"
	"errors"
	"log/slog"

	"fileforge/internal/batch"
	domain "fileforge/internal/domain/fileops"
)

// Settings tunes the transforms
type Settings struct {
	MaxImageDimension int
}

// Dispatcher is the single entry point of the pipeline. Convert and Compress
// isolate failures per file; Merge and Split fail as a whole.
type Dispatcher struct {
	converter  *Converter
	compressor *Compressor
	merger     *Merger
	splitter   *Splitter
	observer   domain.Observer
	logger     *slog.Logger
}

// NewDispatcher wires the four transforms over codec
func NewDispatcher(codec domain.Codec, settings Settings, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		converter:  NewConverter(codec, logger),
		compressor: NewCompressor(codec, settings.MaxImageDimension, logger),
		merger:     NewMerger(codec, logger),
		splitter:   NewSplitter(codec, logger),
		logger:     logger,
	}
}

// WithObserver returns a dispatcher reporting every record to observer
func (d *Dispatcher) WithObserver(observer domain.Observer) *Dispatcher {
	c := *d
	c.observer = observer
	return &c
}

// ProcessNamed parses the wire name of the operation and calls Process
func (d *Dispatcher) ProcessNamed(ctx context.Context, files []*domain.SourceFile, operation string, opts domain.Options) ([]domain.OutcomeRecord, error) {
	op, err := domain.ParseOperation(operation)
	if err != nil {
		return nil, err
	}
	return d.Process(ctx, files, op, opts)
}

// Process routes files to the transform selected by op. The returned error is
// only set when the whole call failed: an unknown operation, or a split that
// could not produce its parts.
func (d *Dispatcher) Process(ctx context.Context, files []*domain.SourceFile, op domain.Operation, opts domain.Options) ([]domain.OutcomeRecord, error) {
	runner := batch.NewRunner(d.observer)

	switch op {
	case domain.OperationConvert:
		target, _ := domain.ParseFormat(string(opts.TargetFormat))
		return runner.Run(ctx, files, d.convertOne(target)), nil
	case domain.OperationCompress:
		return runner.Run(ctx, files, d.compressOne(domain.QualityFromLevel(opts.Level))), nil
	case domain.OperationMerge:
		return runner.Emit([]domain.OutcomeRecord{d.merge(ctx, files)}), nil
	case domain.OperationSplit:
		records, err := d.split(ctx, files, opts.Parts)
		if err != nil {
			return nil, err
		}
		return runner.Emit(records), nil
	}

	d.logger.Error("Rejected batch", "operation", op.String(), "files", len(files))
	return nil, domain.NewOpError(domain.KindUnsupportedOperation, op.String(), "", nil)
}

func (d *Dispatcher) convertOne(target domain.Format) batch.ProcessorFunc {
	return func(ctx context.Context, item batch.WorkItem) domain.OutcomeRecord {
		data, err := d.converter.Convert(ctx, item.File, target)
		if err != nil {
			d.logger.Warn("Conversion failed", "file", item.File.Name, "target", target, "error", err)
			return domain.Failed(item.File.Name, err)
		}
		return domain.Succeeded(ConvertedName(item.File.Name, target), data)
	}
}

func (d *Dispatcher) compressOne(quality domain.Quality) batch.ProcessorFunc {
	return func(ctx context.Context, item batch.WorkItem) domain.OutcomeRecord {
		data, originalSize, newSize, err := d.compressor.Compress(ctx, item.File, quality)
		if err != nil {
			d.logger.Warn("Compression failed", "file", item.File.Name, "level", quality.Level, "error", err)
			return domain.Failed(item.File.Name, err)
		}
		return domain.Succeeded(CompressedName(item.File.Name), data).WithSizes(originalSize, newSize)
	}
}

// merge always yields exactly one record
func (d *Dispatcher) merge(ctx context.Context, files []*domain.SourceFile) domain.OutcomeRecord {
	data, err := d.merger.Merge(ctx, files)
	if err != nil {
		d.logger.Warn("Merge failed", "files", len(files), "error", err)
		return domain.Failed(MergeErrorName, err)
	}
	return domain.Succeeded(MergedDocumentName, data)
}

// split only looks at the first file
func (d *Dispatcher) split(ctx context.Context, files []*domain.SourceFile, parts int) ([]domain.OutcomeRecord, error) {
	if len(files) == 0 {
		return nil, domain.NewOpError(domain.KindInvalidOptions, "split", "", errors.New("no file to split"))
	}

	file := files[0]
	outputs, err := d.splitter.Split(ctx, file, parts)
	if err != nil {
		d.logger.Warn("Split failed", "file", file.Name, "parts", parts, "error", err)
		return nil, err
	}

	records := make([]domain.OutcomeRecord, len(outputs))
	for i, out := range outputs {
		records[i] = domain.Succeeded(SplitName(file.Name, i), out)
	}
	return records, nil
}
