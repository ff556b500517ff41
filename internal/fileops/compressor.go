package fileops

import (
	"context"
	"log/slog"

	domain "fileforge/internal/domain/fileops"
)

// DefaultMaxImageDimension caps the longer edge of recompressed images
const DefaultMaxImageDimension = 2000

// Compressor re-encodes images and the images inside documents at reduced
// fidelity
type Compressor struct {
	codec        domain.Codec
	maxDimension int
	logger       *slog.Logger
}

// NewCompressor creates a new compressor. A non-positive maxDimension falls
// back to DefaultMaxImageDimension.
func NewCompressor(codec domain.Codec, maxDimension int, logger *slog.Logger) *Compressor {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxImageDimension
	}
	return &Compressor{
		codec:        codec,
		maxDimension: maxDimension,
		logger:       logger,
	}
}

// Compress recompresses file at quality and reports both sizes. The output
// may be larger than the input; that is reported as is.
func (c *Compressor) Compress(ctx context.Context, file *domain.SourceFile, quality domain.Quality) ([]byte, int64, int64, error) {
	var compress func(context.Context, *domain.SourceFile, []byte, domain.Quality) ([]byte, error)
	switch {
	case file.IsImage():
		compress = c.compressImage
	case file.IsDocument():
		compress = c.compressDocument
	default:
		return nil, 0, 0, domain.NewOpError(domain.KindUnsupportedFileType, file.MimeType, file.Name, nil)
	}

	data, err := file.Open(ctx)
	if err != nil {
		return nil, 0, 0, err
	}

	out, err := compress(ctx, file, data, quality)
	if err != nil {
		return nil, 0, 0, err
	}

	originalSize, newSize := int64(len(data)), int64(len(out))
	c.logger.Debug("Compressed file",
		"file", file.Name,
		"level", quality.Level,
		"original_size", originalSize,
		"new_size", newSize)

	return out, originalSize, newSize, nil
}

func (c *Compressor) compressImage(ctx context.Context, file *domain.SourceFile, data []byte, quality domain.Quality) ([]byte, error) {
	img, format, err := c.codec.Images.Decode(ctx, data)
	if err != nil {
		return nil, domain.Classify(domain.KindDecodeFailure, file.Name, err)
	}
	if !format.IsImage() {
		return nil, domain.NewOpError(domain.KindUnsupportedFileType, string(format), file.Name, nil)
	}

	bounds := img.Bounds()
	width, height := FitWithin(bounds.Dx(), bounds.Dy(), c.maxDimension)
	if width != bounds.Dx() || height != bounds.Dy() {
		img = c.codec.Images.Resize(img, width, height)
	}

	out, err := c.codec.Images.Encode(ctx, img, format, quality)
	if err != nil {
		return nil, domain.Classify(domain.KindEncodeFailure, file.Name, err)
	}
	return out, nil
}

// compressDocument swaps every embedded image for a JPEG re-encoded at
// quality. Replacement happens in place, so each image keeps the position and
// size it is drawn at.
func (c *Compressor) compressDocument(ctx context.Context, file *domain.SourceFile, data []byte, quality domain.Quality) ([]byte, error) {
	doc, err := c.codec.Documents.Load(ctx, data)
	if err != nil {
		return nil, domain.Classify(domain.KindDecodeFailure, file.Name, err)
	}

	images, err := c.codec.Documents.Images(ctx, doc)
	if err != nil {
		return nil, domain.Classify(domain.KindDecodeFailure, file.Name, err)
	}

	for _, embedded := range images {
		encoded, err := c.codec.Images.Encode(ctx, embedded.Image, domain.FormatJPG, quality)
		if err != nil {
			return nil, domain.Classify(domain.KindEncodeFailure, file.Name, err)
		}

		bounds := embedded.Image.Bounds()
		if err := c.codec.Documents.ReplaceImage(ctx, doc, embedded.ID, encoded, bounds.Dx(), bounds.Dy()); err != nil {
			return nil, domain.Classify(domain.KindEncodeFailure, file.Name, err)
		}
	}

	out, err := c.codec.Documents.Save(ctx, doc, domain.SaveOptions{Compact: true})
	if err != nil {
		return nil, domain.Classify(domain.KindEncodeFailure, file.Name, err)
	}
	return out, nil
}
