package fileops

import (
	"context"
	"image"
)

// Document is an in-memory paginated document. Page order is the only
// structure the pipeline relies on.
type Document interface {
	PageCount() int
}

// EmbeddedImage is a raster image drawn somewhere in a Document. ID is
// opaque to the pipeline and only handed back to ReplaceImage.
type EmbeddedImage struct {
	ID    int
	Image image.Image
}

// SaveOptions controls how a document is serialised
type SaveOptions struct {
	// Compact consolidates objects into object streams
	Compact bool
}

// DocumentCodec creates, loads, edits and saves paginated documents
type DocumentCodec interface {
	Load(ctx context.Context, data []byte) (Document, error)
	New(ctx context.Context) Document
	CopyPages(ctx context.Context, dst, src Document, indices []int) error
	Save(ctx context.Context, doc Document, opts SaveOptions) ([]byte, error)
	Images(ctx context.Context, doc Document) ([]EmbeddedImage, error)
	ReplaceImage(ctx context.Context, doc Document, id int, jpegData []byte, width, height int) error
}

// ImageCodec decodes, resamples and encodes raster images
type ImageCodec interface {
	Decode(ctx context.Context, data []byte) (image.Image, Format, error)
	Encode(ctx context.Context, img image.Image, format Format, quality Quality) ([]byte, error)
	Resize(img image.Image, width, height int) image.Image
}

// PageBuilder lays out new single-page documents
type PageBuilder interface {
	TextPage(ctx context.Context, text string) ([]byte, error)
	ImagePage(ctx context.Context, img image.Image) ([]byte, error)
}

// Rasterizer renders a document page to pixels at native resolution
type Rasterizer interface {
	RenderPage(ctx context.Context, data []byte, page int) (image.Image, error)
}

// Codec bundles the capabilities the pipeline needs
type Codec struct {
	Documents DocumentCodec
	Images    ImageCodec
	Pages     PageBuilder
	Raster    Rasterizer
}

// Observer is told about every record as the dispatcher produces it
type Observer func(index, total int, record OutcomeRecord)

// EventSink delivers progress events to the UI collaborator
type EventSink interface {
	Emit(ctx context.Context, name string, payload any)
}

// Service is the domain entry point used by the transport layer
type Service interface {
	Process(ctx context.Context, request BatchRequest) BatchResponse
	SupportedConversions() map[Format][]Format
}
