package fileops

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"strings"

	domain "fileforge/internal/domain/fileops"
)

var supportedConversions = map[domain.Format][]domain.Format{
	domain.FormatPDF: {domain.FormatJPG, domain.FormatPNG},
	domain.FormatJPG: {domain.FormatPNG, domain.FormatPDF},
	domain.FormatPNG: {domain.FormatJPG, domain.FormatPDF},
	domain.FormatTXT: {domain.FormatPDF},
}

// SupportedConversions returns a copy of the source to target table
func SupportedConversions() map[domain.Format][]domain.Format {
	table := make(map[domain.Format][]domain.Format, len(supportedConversions))
	for source, targets := range supportedConversions {
		table[source] = append([]domain.Format(nil), targets...)
	}
	return table
}

// CanConvert reports whether source to target is in the support table
func CanConvert(source, target domain.Format) bool {
	for _, t := range supportedConversions[source] {
		if t == target {
			return true
		}
	}
	return false
}

// Converter turns one file into another format
type Converter struct {
	codec  domain.Codec
	logger *slog.Logger
}

// NewConverter creates a new converter
func NewConverter(codec domain.Codec, logger *slog.Logger) *Converter {
	return &Converter{
		codec:  codec,
		logger: logger,
	}
}

// Convert returns file's content in the target format. Converting to the
// file's own format returns the input bytes untouched.
func (c *Converter) Convert(ctx context.Context, file *domain.SourceFile, target domain.Format) ([]byte, error) {
	source, _ := file.Format()
	pair := fmt.Sprintf("%s to %s", source, target)

	if _, known := domain.ParseFormat(string(target)); !known {
		return nil, domain.NewOpError(domain.KindUnsupportedConversion, pair, file.Name, nil)
	}

	if source != target && !CanConvert(source, target) {
		return nil, domain.NewOpError(domain.KindUnsupportedConversion, pair, file.Name, nil)
	}

	data, err := file.Open(ctx)
	if err != nil {
		return nil, err
	}

	if source == target {
		return data, nil
	}

	c.logger.Debug("Converting file", "file", file.Name, "from", source, "to", target)

	switch {
	case source == domain.FormatTXT:
		return c.textToDocument(ctx, file, data)
	case source.IsImage() && target == domain.FormatPDF:
		return c.imageToDocument(ctx, file, data)
	case source == domain.FormatPDF:
		return c.documentToImage(ctx, file, data, target)
	default:
		return c.imageToImage(ctx, file, data, target)
	}
}

func (c *Converter) textToDocument(ctx context.Context, file *domain.SourceFile, data []byte) ([]byte, error) {
	text := strings.ToValidUTF8(string(data), "?")
	out, err := c.codec.Pages.TextPage(ctx, text)
	if err != nil {
		return nil, domain.Classify(domain.KindEncodeFailure, file.Name, err)
	}
	return out, nil
}

func (c *Converter) imageToDocument(ctx context.Context, file *domain.SourceFile, data []byte) ([]byte, error) {
	img, _, err := c.codec.Images.Decode(ctx, data)
	if err != nil {
		return nil, domain.Classify(domain.KindDecodeFailure, file.Name, err)
	}

	out, err := c.codec.Pages.ImagePage(ctx, img)
	if err != nil {
		return nil, domain.Classify(domain.KindEncodeFailure, file.Name, err)
	}
	return out, nil
}

// documentToImage renders the first page only; one image per input file.
func (c *Converter) documentToImage(ctx context.Context, file *domain.SourceFile, data []byte, target domain.Format) ([]byte, error) {
	img, err := c.codec.Raster.RenderPage(ctx, data, 0)
	if err != nil {
		return nil, domain.Classify(domain.KindDecodeFailure, file.Name, err)
	}
	return c.encode(ctx, file, img, target)
}

func (c *Converter) imageToImage(ctx context.Context, file *domain.SourceFile, data []byte, target domain.Format) ([]byte, error) {
	img, _, err := c.codec.Images.Decode(ctx, data)
	if err != nil {
		return nil, domain.Classify(domain.KindDecodeFailure, file.Name, err)
	}
	return c.encode(ctx, file, img, target)
}

func (c *Converter) encode(ctx context.Context, file *domain.SourceFile, img image.Image, target domain.Format) ([]byte, error) {
	out, err := c.codec.Images.Encode(ctx, img, target, domain.QualityFromLevel(domain.MaxLevel))
	if err != nil {
		return nil, domain.Classify(domain.KindEncodeFailure, file.Name, err)
	}
	return out, nil
}
