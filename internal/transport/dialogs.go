package transport

import (
	"context"
	"path/filepath"

	domain "fileforge/internal/domain/fileops"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

var (
	pdfFilter   = wailsruntime.FileFilter{DisplayName: "PDF Files (*.pdf)", Pattern: "*.pdf"}
	imageFilter = wailsruntime.FileFilter{DisplayName: "Images (*.jpg, *.jpeg, *.png)", Pattern: "*.jpg;*.jpeg;*.png"}
	textFilter  = wailsruntime.FileFilter{DisplayName: "Text Files (*.txt)", Pattern: "*.txt"}
)

type dialogsHandler struct {
	ctx context.Context
}

func NewDialogsHandler(ctx context.Context) DialogHandler {
	return &dialogsHandler{
		ctx: ctx,
	}
}

// filtersFor lists the file types an operation accepts
func filtersFor(operation string) []wailsruntime.FileFilter {
	op, err := domain.ParseOperation(operation)
	if err != nil {
		return []wailsruntime.FileFilter{pdfFilter, imageFilter, textFilter}
	}

	switch op {
	case domain.OperationCompress:
		return []wailsruntime.FileFilter{pdfFilter, imageFilter}
	case domain.OperationMerge, domain.OperationSplit:
		return []wailsruntime.FileFilter{pdfFilter}
	default:
		return []wailsruntime.FileFilter{pdfFilter, imageFilter, textFilter}
	}
}

func dialogTitle(operation string) string {
	switch op, _ := domain.ParseOperation(operation); op {
	case domain.OperationConvert:
		return "Select files to convert"
	case domain.OperationCompress:
		return "Select files to compress"
	case domain.OperationMerge:
		return "Select PDF files to merge"
	case domain.OperationSplit:
		return "Select a PDF file to split"
	}
	return "Select files"
}

func (h *dialogsHandler) OpenFileDialog(operation string) ([]string, error) {
	options := wailsruntime.OpenDialogOptions{
		Title:   dialogTitle(operation),
		Filters: filtersFor(operation),
	}

	if op, _ := domain.ParseOperation(operation); op == domain.OperationSplit {
		selection, err := wailsruntime.OpenFileDialog(h.ctx, options)
		if err != nil || selection == "" {
			return nil, err
		}
		return []string{selection}, nil
	}

	selection, err := wailsruntime.OpenMultipleFilesDialog(h.ctx, options)
	if err != nil {
		return nil, err
	}

	return selection, nil
}

func (h *dialogsHandler) OpenDirectoryDialog() (string, error) {
	selection, err := wailsruntime.OpenDirectoryDialog(h.ctx, wailsruntime.OpenDialogOptions{
		Title: "Select download folder",
	})

	if err != nil {
		return "", err
	}

	return selection, nil
}

func (h *dialogsHandler) ShowSaveDialog(filename string) (string, error) {
	options := wailsruntime.SaveDialogOptions{
		Title:           "Save file",
		DefaultFilename: filename,
	}
	if format, ok := domain.FormatOf(filename); ok {
		options.Filters = filtersForFormat(format)
	}

	selection, err := wailsruntime.SaveFileDialog(h.ctx, options)
	if err != nil {
		return "", err
	}

	return selection, nil
}

func filtersForFormat(format domain.Format) []wailsruntime.FileFilter {
	switch {
	case format == domain.FormatPDF:
		return []wailsruntime.FileFilter{pdfFilter}
	case format.IsImage():
		return []wailsruntime.FileFilter{imageFilter}
	case format == domain.FormatTXT:
		return []wailsruntime.FileFilter{textFilter}
	}
	return nil
}

func (h *dialogsHandler) OpenFile(filePath string) error {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return err
	}
	wailsruntime.BrowserOpenURL(h.ctx, "file://"+filepath.ToSlash(abs))
	return nil
}
