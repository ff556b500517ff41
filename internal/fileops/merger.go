package fileops

import (
	"context"
	"errors"
	"log/slog"

	domain "fileforge/internal/domain/fileops"
)

// Merger concatenates documents
type Merger struct {
	codec  domain.Codec
	logger *slog.Logger
}

// NewMerger creates a new merger
func NewMerger(codec domain.Codec, logger *slog.Logger) *Merger {
	return &Merger{
		codec:  codec,
		logger: logger,
	}
}

// Merge appends the pages of files, in input order and then page order, into
// one new document. Every input is type checked before anything is loaded.
func (m *Merger) Merge(ctx context.Context, files []*domain.SourceFile) ([]byte, error) {
	if len(files) == 0 {
		return nil, domain.NewOpError(domain.KindInvalidOptions, "merge", "", errors.New("no files to merge"))
	}

	for _, file := range files {
		if !file.IsDocument() {
			return nil, domain.NewOpError(domain.KindAllFilesMustBeDocuments, "", file.Name, nil)
		}
	}

	merged := m.codec.Documents.New(ctx)
	for _, file := range files {
		data, err := file.Open(ctx)
		if err != nil {
			return nil, err
		}

		src, err := m.codec.Documents.Load(ctx, data)
		if err != nil {
			return nil, domain.Classify(domain.KindDecodeFailure, file.Name, err)
		}

		pages := PageRange{Start: 0, End: src.PageCount()}
		if err := m.codec.Documents.CopyPages(ctx, merged, src, pages.Indices()); err != nil {
			return nil, domain.Classify(domain.KindDecodeFailure, file.Name, err)
		}

		m.logger.Debug("Appended document", "file", file.Name, "pages", pages.Len())
	}

	out, err := m.codec.Documents.Save(ctx, merged, domain.SaveOptions{})
	if err != nil {
		return nil, domain.Classify(domain.KindEncodeFailure, MergedDocumentName, err)
	}
	return out, nil
}
