// Package codec provides the document, image, page and raster adapters the
// file pipeline runs on.
package codec

import (
	"log/slog"

	domain "fileforge/internal/domain/fileops"
)

// Settings tunes the adapters
type Settings struct {
	TextFontSize float64
	TextMargin   float64
	RasterDPI    float64
}

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() Settings {
	return Settings{
		TextFontSize: DefaultTextFontSize,
		TextMargin:   DefaultTextMargin,
		RasterDPI:    DefaultRasterDPI,
	}
}

// New bundles the production adapters
func New(settings Settings, logger *slog.Logger) domain.Codec {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "codec")

	return domain.Codec{
		Documents: NewDocumentCodec(logger),
		Images:    NewImageCodec(logger),
		Pages:     NewPageBuilder(settings.TextFontSize, settings.TextMargin, logger),
		Raster:    NewRasterizer(settings.RasterDPI, logger),
	}
}
