package fileops

import (
	"context"
	"testing"

	domain "fileforge/internal/domain/fileops"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher() *Dispatcher {
	return NewDispatcher(newFakeCodec().codec(), Settings{}, discardLogger())
}

func TestDispatchConvertReport(t *testing.T) {
	files := []*domain.SourceFile{domain.NewSourceFile("report.txt", "text/plain", []byte("quarterly"))}

	records, err := newTestDispatcher().ProcessNamed(context.Background(), files, "converter", domain.Options{TargetFormat: "pdf"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Success)
	assert.Equal(t, "report.pdf", records[0].Name)
	assert.NotEmpty(t, records[0].ID)
}

func TestDispatchConvertIsolatesFailures(t *testing.T) {
	files := []*domain.SourceFile{
		imageFile("a.png", domain.FormatPNG, 4, 4),
		domain.NewSourceFile("b.txt", "text/plain", []byte("x")),
		imageFile("c.jpg", domain.FormatJPG, 4, 4),
	}

	records, err := newTestDispatcher().Process(context.Background(), files, domain.OperationConvert, domain.Options{TargetFormat: "JPEG"})
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.True(t, records[0].Success)
	assert.Equal(t, "a.jpg", records[0].Name)

	assert.False(t, records[1].Success)
	assert.Equal(t, "b.txt", records[1].Name)
	assert.Equal(t, "unsupported_conversion", records[1].ErrorKind)
	assert.ErrorIs(t, records[1].Err, domain.ErrUnsupportedConversion)

	assert.True(t, records[2].Success)
	assert.Equal(t, "c.jpg", records[2].Name)
}

func TestDispatchCompress(t *testing.T) {
	files := []*domain.SourceFile{
		imageFile("photo.jpg", domain.FormatJPG, 10, 10),
		domain.NewSourceFile("notes.txt", "text/plain", []byte("x")),
	}

	records, err := newTestDispatcher().ProcessNamed(context.Background(), files, "compress", domain.Options{Level: 42})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.True(t, records[0].Success)
	assert.Equal(t, "compressed_photo.jpg", records[0].Name)
	assert.Equal(t, "IMG:jpg:10:10:9", string(records[0].Data), "level is clamped to 9")
	assert.Equal(t, int64(len(records[0].Data)), records[0].NewSize)
	assert.Positive(t, records[0].OriginalSize)

	assert.False(t, records[1].Success)
	assert.ErrorIs(t, records[1].Err, domain.ErrUnsupportedFileType)
}

func TestDispatchMergeYieldsOneRecord(t *testing.T) {
	d := newTestDispatcher()

	records, err := d.ProcessNamed(context.Background(), []*domain.SourceFile{
		pdfFile("a.pdf", numberedPDF("a", 1)),
		pdfFile("b.pdf", numberedPDF("b", 2)),
	}, "merge", domain.Options{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Success)
	assert.Equal(t, MergedDocumentName, records[0].Name)
	assert.Equal(t, "PDF|a0|b0|b1", string(records[0].Data))
}

func TestDispatchMergeNonDocument(t *testing.T) {
	files := []*domain.SourceFile{domain.NewSourceFile("nonPdf.docx", "", []byte("doc"))}

	records, err := newTestDispatcher().ProcessNamed(context.Background(), files, "merge", domain.Options{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Success)
	assert.Equal(t, MergeErrorName, records[0].Name)
	assert.Equal(t, "all_files_must_be_documents", records[0].ErrorKind)
}

func TestDispatchSplitUsesFirstFileOnly(t *testing.T) {
	files := []*domain.SourceFile{
		pdfFile("fileA.pdf", numberedPDF("a", 7)),
		pdfFile("fileB.pdf", numberedPDF("b", 4)),
	}

	records, err := newTestDispatcher().ProcessNamed(context.Background(), files, "split", domain.Options{Parts: 3})
	require.NoError(t, err)
	require.Len(t, records, 3)

	names := []string{"split_1_fileA.pdf", "split_2_fileA.pdf", "split_3_fileA.pdf"}
	data := []string{"PDF|a0|a1|a2", "PDF|a3|a4|a5", "PDF|a6"}
	for i, record := range records {
		assert.True(t, record.Success)
		assert.Equal(t, names[i], record.Name)
		assert.Equal(t, data[i], string(record.Data))
	}
}

func TestDispatchSplitFailsWholeCall(t *testing.T) {
	ctx := context.Background()
	d := newTestDispatcher()

	records, err := d.ProcessNamed(ctx, []*domain.SourceFile{imageFile("a.png", domain.FormatPNG, 1, 1)}, "split", domain.Options{Parts: 2})
	assert.ErrorIs(t, err, domain.ErrUnsupportedForSplit)
	assert.Nil(t, records)

	records, err = d.ProcessNamed(ctx, nil, "split", domain.Options{Parts: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidOptions)
	assert.Nil(t, records)
}

func TestDispatchUnknownOperation(t *testing.T) {
	d := newTestDispatcher()

	_, err := d.ProcessNamed(context.Background(), nil, "rotate", domain.Options{})
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)

	_, err = d.Process(context.Background(), nil, domain.OperationUnknown, domain.Options{})
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)
}

func TestDispatchObserverSeesRecordsInOrder(t *testing.T) {
	var seen []string
	d := newTestDispatcher().WithObserver(func(index, total int, record domain.OutcomeRecord) {
		assert.Equal(t, 3, total)
		assert.Equal(t, len(seen), index)
		seen = append(seen, record.Name)
	})

	files := []*domain.SourceFile{
		imageFile("1.png", domain.FormatPNG, 1, 1),
		imageFile("2.png", domain.FormatPNG, 1, 1),
		imageFile("3.png", domain.FormatPNG, 1, 1),
	}
	_, err := d.Process(context.Background(), files, domain.OperationConvert, domain.Options{TargetFormat: domain.FormatPDF})
	require.NoError(t, err)
	assert.Equal(t, []string{"1.pdf", "2.pdf", "3.pdf"}, seen)
}
