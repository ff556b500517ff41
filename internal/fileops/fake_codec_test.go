package fileops

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"strconv"
	"strings"

	domain "fileforge/internal/domain/fileops"
)

// The fake codec works on readable byte strings. A document is
// "PDF|page|page|...", an image is "IMG:format:width:height:level". Page
// tokens of the form "img:WxH" are embedded images.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeDocument struct {
	pages []string
}

func (d *fakeDocument) PageCount() int { return len(d.pages) }

func pdfBytes(pages ...string) []byte {
	return []byte(strings.Join(append([]string{"PDF"}, pages...), "|"))
}

func numberedPDF(prefix string, n int) []byte {
	pages := make([]string, n)
	for i := range pages {
		pages[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return pdfBytes(pages...)
}

func imageBytes(format domain.Format, width, height int) []byte {
	return []byte(fmt.Sprintf("IMG:%s:%d:%d:%d", format, width, height, domain.MaxLevel))
}

func parsePDF(data []byte) ([]string, error) {
	parts := strings.Split(string(data), "|")
	if parts[0] != "PDF" {
		return nil, errors.New("not a document")
	}
	return parts[1:], nil
}

type fakeImage struct {
	image.Rectangle
	format domain.Format
}

func parseImage(data []byte) (fakeImage, error) {
	parts := strings.Split(string(data), ":")
	if len(parts) != 5 || parts[0] != "IMG" {
		return fakeImage{}, errors.New("not an image")
	}
	w, errW := strconv.Atoi(parts[2])
	h, errH := strconv.Atoi(parts[3])
	if errW != nil || errH != nil {
		return fakeImage{}, errors.New("bad image size")
	}
	return fakeImage{Rectangle: image.Rect(0, 0, w, h), format: domain.Format(parts[1])}, nil
}

type fakeDocuments struct {
	failSave bool
}

func (f *fakeDocuments) Load(_ context.Context, data []byte) (domain.Document, error) {
	pages, err := parsePDF(data)
	if err != nil {
		return nil, err
	}
	return &fakeDocument{pages: pages}, nil
}

func (f *fakeDocuments) New(context.Context) domain.Document {
	return &fakeDocument{}
}

func (f *fakeDocuments) CopyPages(_ context.Context, dst, src domain.Document, indices []int) error {
	to, from := dst.(*fakeDocument), src.(*fakeDocument)
	for _, i := range indices {
		if i < 0 || i >= len(from.pages) {
			return fmt.Errorf("page %d out of range", i)
		}
		to.pages = append(to.pages, from.pages[i])
	}
	return nil
}

func (f *fakeDocuments) Save(_ context.Context, doc domain.Document, _ domain.SaveOptions) ([]byte, error) {
	if f.failSave {
		return nil, errors.New("disk full")
	}
	return pdfBytes(doc.(*fakeDocument).pages...), nil
}

func (f *fakeDocuments) Images(_ context.Context, doc domain.Document) ([]domain.EmbeddedImage, error) {
	var images []domain.EmbeddedImage
	for i, page := range doc.(*fakeDocument).pages {
		var w, h int
		if _, err := fmt.Sscanf(page, "img:%dx%d", &w, &h); err == nil {
			images = append(images, domain.EmbeddedImage{ID: i, Image: image.NewRGBA(image.Rect(0, 0, w, h))})
		}
	}
	return images, nil
}

func (f *fakeDocuments) ReplaceImage(_ context.Context, doc domain.Document, id int, jpegData []byte, width, height int) error {
	d := doc.(*fakeDocument)
	d.pages[id] = fmt.Sprintf("jpeg %dx%d %s", width, height, jpegData)
	return nil
}

type fakeImages struct {
	failEncode bool
	resized    int
}

func (f *fakeImages) Decode(_ context.Context, data []byte) (image.Image, domain.Format, error) {
	img, err := parseImage(data)
	if err != nil {
		return nil, "", err
	}
	return image.NewRGBA(img.Rectangle), img.format, nil
}

func (f *fakeImages) Encode(_ context.Context, img image.Image, format domain.Format, quality domain.Quality) ([]byte, error) {
	if f.failEncode {
		return nil, errors.New("encoder exploded")
	}
	b := img.Bounds()
	return []byte(fmt.Sprintf("IMG:%s:%d:%d:%d", format, b.Dx(), b.Dy(), quality.Level)), nil
}

func (f *fakeImages) Resize(_ image.Image, width, height int) image.Image {
	f.resized++
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

type fakePages struct{}

func (fakePages) TextPage(_ context.Context, text string) ([]byte, error) {
	return pdfBytes("text:" + text), nil
}

func (fakePages) ImagePage(_ context.Context, img image.Image) ([]byte, error) {
	b := img.Bounds()
	return pdfBytes(fmt.Sprintf("image:%dx%d", b.Dx(), b.Dy())), nil
}

type fakeRaster struct{}

func (fakeRaster) RenderPage(_ context.Context, data []byte, page int) (image.Image, error) {
	pages, err := parsePDF(data)
	if err != nil {
		return nil, err
	}
	if page >= len(pages) {
		return nil, errors.New("no such page")
	}
	return image.NewRGBA(image.Rect(0, 0, 10, 20)), nil
}

type fakeCodec struct {
	documents *fakeDocuments
	images    *fakeImages
}

func newFakeCodec() fakeCodec {
	return fakeCodec{documents: &fakeDocuments{}, images: &fakeImages{}}
}

func (f fakeCodec) codec() domain.Codec {
	return domain.Codec{
		Documents: f.documents,
		Images:    f.images,
		Pages:     fakePages{},
		Raster:    fakeRaster{},
	}
}

func pdfFile(name string, data []byte) *domain.SourceFile {
	return domain.NewSourceFile(name, domain.MimePDF, data)
}

func imageFile(name string, format domain.Format, width, height int) *domain.SourceFile {
	return domain.NewSourceFile(name, format.MimeType(), imageBytes(format, width, height))
}

func failingFile(name, mimeType string) *domain.SourceFile {
	return domain.NewSourceFileFunc(name, mimeType, func(context.Context) ([]byte, error) {
		return nil, errors.New("permission denied")
	})
}
