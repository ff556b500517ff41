package codec

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"strings"

	"github.com/go-pdf/fpdf"
	xdraw "golang.org/x/image/draw"
)

const (
	DefaultTextFontSize = 12
	DefaultTextMargin   = 50
	producer            = "fileforge"
)

// PageBuilder implements domain.PageBuilder with fpdf
type PageBuilder struct {
	fontSize float64
	margin   float64
	logger   *slog.Logger
}

// NewPageBuilder creates a page builder. A non-positive font size or a
// negative margin falls back to the defaults; a zero margin draws from the
// page edge.
func NewPageBuilder(fontSize, margin float64, logger *slog.Logger) *PageBuilder {
	if fontSize <= 0 {
		fontSize = DefaultTextFontSize
	}
	if margin < 0 {
		margin = DefaultTextMargin
	}
	return &PageBuilder{fontSize: fontSize, margin: margin, logger: logger}
}

// TextPage draws text on a single A4 page from the top-left margin. Lines are
// not wrapped and nothing flows onto a second page: whatever does not fit is
// clipped.
func (b *PageBuilder) TextPage(_ context.Context, text string) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetCreator(producer, true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", b.fontSize)

	translate := pdf.UnicodeTranslatorFromDescriptor("")
	_, pageHeight := pdf.GetPageSize()
	lineHeight := b.fontSize * 1.2

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\t", "    ")

	lines := strings.Split(text, "\n")
	drawn := 0
	for i, line := range lines {
		y := b.margin + b.fontSize + float64(i)*lineHeight
		if y > pageHeight {
			break
		}
		if line != "" {
			pdf.Text(b.margin, y, translate(line))
		}
		drawn++
	}

	if drawn < len(lines) {
		b.logger.Debug("Clipped text page", "lines", len(lines), "drawn", drawn)
	}
	return output(pdf)
}

// ImagePage places img on a page of exactly its pixel size, in points
func (b *PageBuilder) ImagePage(_ context.Context, img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	width, height := float64(bounds.Dx()), float64(bounds.Dy())

	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetCreator(producer, true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// fpdf only reads 8-bit PNG, so normalise whatever the decoder produced
	flat := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(flat, flat.Bounds(), img, bounds.Min, xdraw.Src)

	var encoded bytes.Buffer
	if err := png.Encode(&encoded, flat); err != nil {
		return nil, fmt.Errorf("encoding page image: %w", err)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("page", opts, &encoded)
	pdf.ImageOptions("page", 0, 0, width, height, false, opts, 0, "")

	return output(pdf)
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	return buf.Bytes(), nil
}
