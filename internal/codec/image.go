package codec

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log/slog"

	domain "fileforge/internal/domain/fileops"

	xdraw "golang.org/x/image/draw"
)

// ImageCodec implements domain.ImageCodec for JPEG and PNG
type ImageCodec struct {
	logger *slog.Logger
}

// NewImageCodec creates a new image codec
func NewImageCodec(logger *slog.Logger) *ImageCodec {
	return &ImageCodec{logger: logger}
}

// Decode decodes a JPEG or PNG image and reports which of the two it was
func (c *ImageCodec) Decode(_ context.Context, data []byte) (image.Image, domain.Format, error) {
	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decoding image: %w", err)
	}

	format, ok := domain.ParseFormat(name)
	if !ok {
		return nil, "", fmt.Errorf("unsupported image codec %q", name)
	}
	return img, format, nil
}

// Encode encodes img in format. JPEG honours quality; PNG stays lossless and
// only trades encoding effort.
func (c *ImageCodec) Encode(_ context.Context, img image.Image, format domain.Format, quality domain.Quality) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case domain.FormatJPG:
		if err := jpeg.Encode(&buf, flatten(img), &jpeg.Options{Quality: quality.JPEG()}); err != nil {
			return nil, fmt.Errorf("encoding jpeg: %w", err)
		}
	case domain.FormatPNG:
		encoder := png.Encoder{CompressionLevel: pngCompression(quality)}
		if err := encoder.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encoding png: %w", err)
		}
	default:
		return nil, fmt.Errorf("cannot encode images as %q", format)
	}

	c.logger.Debug("Encoded image",
		"format", format,
		"quality", quality.Level,
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy(),
		"bytes", buf.Len())

	return buf.Bytes(), nil
}

// Resize resamples img to width x height with a Catmull-Rom kernel
func (c *ImageCodec) Resize(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// flatten composites translucent images onto white, since JPEG has no alpha
func flatten(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}

	bounds := img.Bounds()
	dst := image.NewRGBA(bounds)
	xdraw.Draw(dst, bounds, image.White, image.Point{}, xdraw.Src)
	xdraw.Draw(dst, bounds, img, bounds.Min, xdraw.Over)
	return dst
}

func pngCompression(quality domain.Quality) png.CompressionLevel {
	switch {
	case quality.Level >= 7:
		return png.BestSpeed
	case quality.Level >= 4:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}
