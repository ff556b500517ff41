package fileops

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Operation selects which pipeline a batch runs through
type Operation int

const (
	OperationUnknown Operation = iota
	OperationConvert
	OperationCompress
	OperationMerge
	OperationSplit
)

var operationNames = map[Operation]string{
	OperationConvert:  "converter",
	OperationCompress: "compress",
	OperationMerge:    "merge",
	OperationSplit:    "split",
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return "unknown"
}

// ParseOperation maps the wire name sent by the frontend to an Operation.
// "convert" is accepted as an alias of "converter".
func ParseOperation(name string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "converter", "convert":
		return OperationConvert, nil
	case "compress":
		return OperationCompress, nil
	case "merge":
		return OperationMerge, nil
	case "split":
		return OperationSplit, nil
	}
	return OperationUnknown, NewOpError(KindUnsupportedOperation, name, "", nil)
}

// Format is a file format known to the pipeline
type Format string

const (
	FormatPDF Format = "pdf"
	FormatJPG Format = "jpg"
	FormatPNG Format = "png"
	FormatTXT Format = "txt"
)

// ParseFormat normalises a format or extension name. The second return is
// false for formats the pipeline does not know.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "pdf":
		return FormatPDF, true
	case "jpg", "jpeg":
		return FormatJPG, true
	case "png":
		return FormatPNG, true
	case "txt":
		return FormatTXT, true
	}
	return Format(strings.ToLower(s)), false
}

// FormatOf derives a file's format from the last extension of its name
func FormatOf(name string) (Format, bool) {
	return ParseFormat(filepath.Ext(name))
}

// IsImage reports whether f is a raster image format
func (f Format) IsImage() bool {
	return f == FormatJPG || f == FormatPNG
}

// MimeType returns the MIME type of the format
func (f Format) MimeType() string {
	switch f {
	case FormatPDF:
		return MimePDF
	case FormatJPG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatTXT:
		return "text/plain"
	}
	return "application/octet-stream"
}

const MimePDF = "application/pdf"

// Options carries the operation-specific parameters of a batch
type Options struct {
	TargetFormat Format `json:"format,omitempty"`
	Level        int    `json:"level,omitempty"`
	Parts        int    `json:"parts,omitempty"`
}

// SourceFile is a read-only handle on user-supplied content.
// Content is materialised on first Open and cached.
type SourceFile struct {
	Name     string
	MimeType string
	Size     int64

	load func(ctx context.Context) ([]byte, error)

	once sync.Once
	data []byte
	err  error
}

// NewSourceFile wraps in-memory content
func NewSourceFile(name, mimeType string, data []byte) *SourceFile {
	return &SourceFile{
		Name:     name,
		MimeType: mimeType,
		Size:     int64(len(data)),
		load: func(context.Context) ([]byte, error) {
			return data, nil
		},
	}
}

// NewSourceFileFunc creates a handle whose content is produced by load on
// first Open. Size stays unknown until then.
func NewSourceFileFunc(name, mimeType string, load func(ctx context.Context) ([]byte, error)) *SourceFile {
	return &SourceFile{
		Name:     name,
		MimeType: mimeType,
		load:     load,
	}
}

// SourceFileFromPath creates a handle that reads path on first Open, so a
// missing or unreadable path surfaces as that file's ReadFailure. The MIME
// type is derived from the extension.
func SourceFileFromPath(path string) *SourceFile {
	name := filepath.Base(path)
	mime := ""
	if f, ok := FormatOf(name); ok {
		mime = f.MimeType()
	}

	return NewSourceFileFunc(name, mime, func(context.Context) ([]byte, error) {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory", path)
		}
		return os.ReadFile(path)
	})
}

// Open returns the file content. Failures are reported as ReadFailure.
func (f *SourceFile) Open(ctx context.Context) ([]byte, error) {
	f.once.Do(func() {
		if f.load == nil {
			f.err = fmt.Errorf("no content source")
			return
		}
		f.data, f.err = f.load(ctx)
		if f.err == nil {
			f.Size = int64(len(f.data))
		}
	})
	if f.err != nil {
		return nil, NewOpError(KindReadFailure, "", f.Name, f.err)
	}
	return f.data, nil
}

// Format derives the file's format from its name
func (f *SourceFile) Format() (Format, bool) {
	return FormatOf(f.Name)
}

// IsDocument reports whether the file is a PDF. The MIME type decides; the
// extension is only consulted when no MIME type was supplied.
func (f *SourceFile) IsDocument() bool {
	if f.MimeType != "" {
		return strings.EqualFold(f.MimeType, MimePDF)
	}
	format, _ := f.Format()
	return format == FormatPDF
}

// IsImage reports whether the file is a raster image, by MIME type first
func (f *SourceFile) IsImage() bool {
	if f.MimeType != "" {
		return strings.HasPrefix(strings.ToLower(f.MimeType), "image/")
	}
	format, _ := f.Format()
	return format.IsImage()
}

// OutcomeRecord is the result of one logical unit of work
type OutcomeRecord struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Success      bool   `json:"success"`
	Data         []byte `json:"data,omitempty"`
	OriginalSize int64  `json:"original_size,omitempty"`
	NewSize      int64  `json:"new_size,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
	ErrorKind    string `json:"error_kind,omitempty"`

	Err error `json:"-"`
}

// Succeeded builds a success record
func Succeeded(name string, data []byte) OutcomeRecord {
	if data == nil {
		data = []byte{}
	}
	return OutcomeRecord{Name: name, Success: true, Data: data}
}

// Failed builds a failure record. err must be non-nil.
func Failed(name string, err error) OutcomeRecord {
	return OutcomeRecord{
		Name:         name,
		Success:      false,
		ErrorMessage: err.Error(),
		ErrorKind:    KindOf(err).String(),
		Err:          err,
	}
}

// WithSizes attaches before/after sizes to a success record
func (r OutcomeRecord) WithSizes(originalSize, newSize int64) OutcomeRecord {
	r.OriginalSize = originalSize
	r.NewSize = newSize
	return r
}
