package fileops

import (
	"context"
	"fmt"
	"log/slog"

	domain "fileforge/internal/domain/fileops"
)

// Splitter partitions a document into contiguous parts
type Splitter struct {
	codec  domain.Codec
	logger *slog.Logger
}

// NewSplitter creates a new splitter
func NewSplitter(codec domain.Codec, logger *slog.Logger) *Splitter {
	return &Splitter{
		codec:  codec,
		logger: logger,
	}
}

// Split returns exactly parts documents. Parts past the last page come back
// as empty documents rather than being dropped.
func (s *Splitter) Split(ctx context.Context, file *domain.SourceFile, parts int) ([][]byte, error) {
	if parts < 1 {
		return nil, domain.NewOpError(domain.KindInvalidOptions, "split", file.Name, fmt.Errorf("parts must be at least 1, got %d", parts))
	}
	if !file.IsDocument() {
		return nil, domain.NewOpError(domain.KindUnsupportedForSplit, "", file.Name, nil)
	}

	data, err := file.Open(ctx)
	if err != nil {
		return nil, err
	}

	src, err := s.codec.Documents.Load(ctx, data)
	if err != nil {
		return nil, domain.Classify(domain.KindDecodeFailure, file.Name, err)
	}

	ranges := Partition(src.PageCount(), parts)
	outputs := make([][]byte, 0, len(ranges))
	for i, pages := range ranges {
		part := s.codec.Documents.New(ctx)
		if err := s.codec.Documents.CopyPages(ctx, part, src, pages.Indices()); err != nil {
			return nil, domain.Classify(domain.KindDecodeFailure, file.Name, err)
		}

		out, err := s.codec.Documents.Save(ctx, part, domain.SaveOptions{})
		if err != nil {
			return nil, domain.Classify(domain.KindEncodeFailure, SplitName(file.Name, i), err)
		}

		s.logger.Debug("Split part ready", "file", file.Name, "part", i+1, "start", pages.Start, "end", pages.End)
		outputs = append(outputs, out)
	}

	return outputs, nil
}
