package codec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"log/slog"
	"slices"

	domain "fileforge/internal/domain/fileops"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/filter"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

var errForeignDocument = errors.New("document was not created by this codec")

// pdfDocument is either a parsed file or a list of pages borrowed from parsed
// files. Only the latter can receive pages.
type pdfDocument struct {
	ctx   *model.Context
	pages []pageRef
}

type pageRef struct {
	src  *pdfDocument
	page int // 1-based, as pdfcpu counts
}

func (d *pdfDocument) PageCount() int {
	if d.ctx != nil {
		return d.ctx.PageCount
	}
	return len(d.pages)
}

// DocumentCodec implements domain.DocumentCodec on top of pdfcpu
type DocumentCodec struct {
	logger *slog.Logger
}

// NewDocumentCodec creates a new document codec
func NewDocumentCodec(logger *slog.Logger) *DocumentCodec {
	return &DocumentCodec{logger: logger}
}

func (c *DocumentCodec) configuration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Load parses data into a document
func (c *DocumentCodec) Load(_ context.Context, data []byte) (domain.Document, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), c.configuration())
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return &pdfDocument{ctx: ctx}, nil
}

// New returns an empty document that pages can be copied into
func (c *DocumentCodec) New(context.Context) domain.Document {
	return &pdfDocument{}
}

// CopyPages appends the pages of src at the zero-based indices to dst
func (c *DocumentCodec) CopyPages(_ context.Context, dst, src domain.Document, indices []int) error {
	to, err := asPDF(dst)
	if err != nil {
		return err
	}
	from, err := asPDF(src)
	if err != nil {
		return err
	}
	if to.ctx != nil {
		return errors.New("cannot copy pages into a parsed document")
	}

	for _, i := range indices {
		if i < 0 || i >= from.PageCount() {
			return fmt.Errorf("page index %d out of range [0, %d)", i, from.PageCount())
		}
		if from.ctx != nil {
			to.pages = append(to.pages, pageRef{src: from, page: i + 1})
		} else {
			to.pages = append(to.pages, from.pages[i])
		}
	}
	return nil
}

// Save serialises doc. A composed document is written as one extract per run
// of consecutive pages from the same source, then merged.
func (c *DocumentCodec) Save(_ context.Context, doc domain.Document, opts domain.SaveOptions) ([]byte, error) {
	d, err := asPDF(doc)
	if err != nil {
		return nil, err
	}
	if d.ctx != nil {
		return c.write(d.ctx, opts)
	}
	if len(d.pages) == 0 {
		return emptyDocument(), nil
	}

	var chunks []io.ReadSeeker
	for _, run := range pageRuns(d.pages) {
		extracted, err := pdfcpu.ExtractPages(run.src.ctx, run.pages, false)
		if err != nil {
			return nil, fmt.Errorf("extracting pages %v: %w", run.pages, err)
		}
		out, err := c.write(extracted, opts)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, bytes.NewReader(out))
	}

	if len(chunks) == 1 {
		return io.ReadAll(chunks[0])
	}

	conf := c.configuration()
	conf.WriteObjectStream = opts.Compact
	conf.WriteXRefStream = opts.Compact

	var buf bytes.Buffer
	if err := api.MergeRaw(chunks, &buf, false, conf); err != nil {
		return nil, fmt.Errorf("merging %d runs: %w", len(chunks), err)
	}

	c.logger.Debug("Composed document", "pages", len(d.pages), "runs", len(chunks), "bytes", buf.Len())
	return buf.Bytes(), nil
}

func (c *DocumentCodec) write(ctx *model.Context, opts domain.SaveOptions) ([]byte, error) {
	if ctx.Configuration == nil {
		ctx.Configuration = c.configuration()
	}
	if opts.Compact {
		if err := api.OptimizeContext(ctx); err != nil {
			return nil, fmt.Errorf("optimizing document: %w", err)
		}
		ctx.Configuration.WriteObjectStream = true
		ctx.Configuration.WriteXRefStream = true
	}

	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return nil, fmt.Errorf("writing document: %w", err)
	}
	return buf.Bytes(), nil
}

type pageRun struct {
	src   *pdfDocument
	pages []int
}

func pageRuns(refs []pageRef) []pageRun {
	var runs []pageRun
	for _, ref := range refs {
		if n := len(runs); n > 0 && runs[n-1].src == ref.src {
			runs[n-1].pages = append(runs[n-1].pages, ref.page)
			continue
		}
		runs = append(runs, pageRun{src: ref.src, pages: []int{ref.page}})
	}
	return runs
}

// Images returns the raster images of a parsed document that can be decoded:
// JPEG streams and 8-bit Flate streams in DeviceGray or DeviceRGB. Masks and
// anything else are left out.
func (c *DocumentCodec) Images(_ context.Context, doc domain.Document) ([]domain.EmbeddedImage, error) {
	d, err := asPDF(doc)
	if err != nil {
		return nil, err
	}
	if d.ctx == nil {
		return nil, nil
	}

	table := d.ctx.XRefTable.Table
	masks := map[int]bool{}
	var candidates []int
	for objNr, entry := range table {
		sd, ok := imageStream(entry)
		if !ok {
			continue
		}
		for _, key := range []string{"SMask", "Mask"} {
			if ref, ok := sd.Dict[key].(types.IndirectRef); ok {
				masks[ref.ObjectNumber.Value()] = true
			}
		}
		if mask := sd.BooleanEntry("ImageMask"); mask != nil && *mask {
			continue
		}
		candidates = append(candidates, objNr)
	}
	slices.Sort(candidates)

	var images []domain.EmbeddedImage
	for _, objNr := range candidates {
		if masks[objNr] {
			continue
		}
		sd, _ := imageStream(table[objNr])
		img, err := decodeImageStream(&sd)
		if err != nil {
			c.logger.Debug("Skipping embedded image", "object", objNr, "error", err)
			continue
		}
		images = append(images, domain.EmbeddedImage{ID: objNr, Image: img})
	}
	return images, nil
}

// ReplaceImage swaps the stream of image object id for a baseline JPEG
func (c *DocumentCodec) ReplaceImage(_ context.Context, doc domain.Document, id int, jpegData []byte, width, height int) error {
	d, err := asPDF(doc)
	if err != nil {
		return err
	}
	if d.ctx == nil {
		return errors.New("cannot replace images in a composed document")
	}

	entry := d.ctx.XRefTable.Table[id]
	sd, ok := imageStream(entry)
	if !ok {
		return fmt.Errorf("object %d is not an image", id)
	}

	config, err := jpeg.DecodeConfig(bytes.NewReader(jpegData))
	if err != nil {
		return fmt.Errorf("replacement for object %d is not a JPEG: %w", id, err)
	}
	colorSpace := "DeviceRGB"
	if config.ColorModel == color.GrayModel {
		colorSpace = "DeviceGray"
	}

	length := int64(len(jpegData))
	sd.Raw = jpegData
	sd.Content = nil
	sd.StreamLength = &length
	sd.StreamLengthObjNr = nil
	sd.FilterPipeline = []types.PDFFilter{{Name: filter.DCT}}
	sd.Update("Filter", types.Name(filter.DCT))
	sd.Update("Length", types.Integer(length))
	sd.Update("Width", types.Integer(width))
	sd.Update("Height", types.Integer(height))
	sd.Update("BitsPerComponent", types.Integer(8))
	sd.Update("ColorSpace", types.Name(colorSpace))
	sd.Delete("DecodeParms")
	sd.Delete("Decode")

	entry.Object = sd
	return nil
}

func imageStream(entry *model.XRefTableEntry) (types.StreamDict, bool) {
	if entry == nil || entry.Free || entry.Object == nil {
		return types.StreamDict{}, false
	}
	sd, ok := entry.Object.(types.StreamDict)
	if !ok {
		return types.StreamDict{}, false
	}
	if subtype := sd.Subtype(); subtype == nil || *subtype != "Image" {
		return types.StreamDict{}, false
	}
	return sd, sd.Raw != nil
}

func decodeImageStream(sd *types.StreamDict) (image.Image, error) {
	if len(sd.FilterPipeline) != 1 {
		return nil, fmt.Errorf("unsupported filter pipeline of length %d", len(sd.FilterPipeline))
	}

	switch name := sd.FilterPipeline[0].Name; name {
	case filter.DCT:
		return jpeg.Decode(bytes.NewReader(sd.Raw))
	case filter.Flate:
		return decodeFlateImage(sd)
	default:
		return nil, fmt.Errorf("unsupported filter %s", name)
	}
}

func decodeFlateImage(sd *types.StreamDict) (image.Image, error) {
	width, height, bpc := sd.IntEntry("Width"), sd.IntEntry("Height"), sd.IntEntry("BitsPerComponent")
	colorSpace := sd.NameEntry("ColorSpace")
	if width == nil || height == nil || bpc == nil || colorSpace == nil {
		return nil, errors.New("incomplete image dictionary")
	}
	if *bpc != 8 {
		return nil, fmt.Errorf("unsupported bits per component %d", *bpc)
	}

	if err := sd.Decode(); err != nil {
		return nil, fmt.Errorf("inflating image: %w", err)
	}

	w, h := *width, *height
	rect := image.Rect(0, 0, w, h)
	switch *colorSpace {
	case "DeviceGray":
		if len(sd.Content) < w*h {
			return nil, errors.New("short image data")
		}
		img := image.NewGray(rect)
		copy(img.Pix, sd.Content[:w*h])
		return img, nil
	case "DeviceRGB":
		if len(sd.Content) < w*h*3 {
			return nil, errors.New("short image data")
		}
		img := image.NewRGBA(rect)
		for i := 0; i < w*h; i++ {
			img.Pix[i*4] = sd.Content[i*3]
			img.Pix[i*4+1] = sd.Content[i*3+1]
			img.Pix[i*4+2] = sd.Content[i*3+2]
			img.Pix[i*4+3] = 0xff
		}
		return img, nil
	default:
		return nil, fmt.Errorf("unsupported color space %s", *colorSpace)
	}
}

func asPDF(doc domain.Document) (*pdfDocument, error) {
	d, ok := doc.(*pdfDocument)
	if !ok || d == nil {
		return nil, errForeignDocument
	}
	return d, nil
}
