package codec

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/gen2brain/go-fitz"
)

// DefaultRasterDPI renders pages at one pixel per point
const DefaultRasterDPI = 72

// Rasterizer implements domain.Rasterizer with MuPDF
type Rasterizer struct {
	dpi    float64
	logger *slog.Logger
}

// NewRasterizer creates a rasterizer rendering at dpi
func NewRasterizer(dpi float64, logger *slog.Logger) *Rasterizer {
	if dpi <= 0 {
		dpi = DefaultRasterDPI
	}
	return &Rasterizer{dpi: dpi, logger: logger}
}

// RenderPage renders the zero-based page of the document in data
func (r *Rasterizer) RenderPage(_ context.Context, data []byte, page int) (image.Image, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer doc.Close()

	if n := doc.NumPage(); page < 0 || page >= n {
		return nil, fmt.Errorf("page %d out of range, document has %d pages", page, n)
	}

	img, err := doc.ImageDPI(page, r.dpi)
	if err != nil {
		return nil, fmt.Errorf("rendering page %d: %w", page, err)
	}

	r.logger.Debug("Rendered page", "page", page, "dpi", r.dpi, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return img, nil
}
