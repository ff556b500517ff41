package fileops

import (
	"context"
	"testing"

	domain "fileforge/internal/domain/fileops"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressImageReportsActualSizes(t *testing.T) {
	ctx := context.Background()
	compressor := NewCompressor(newFakeCodec().codec(), 0, discardLogger())

	for _, level := range []int{0, 9} {
		file := imageFile("photo.jpg", domain.FormatJPG, 100, 50)
		input, err := file.Open(ctx)
		require.NoError(t, err)

		out, originalSize, newSize, err := compressor.Compress(ctx, file, domain.QualityFromLevel(level))
		require.NoError(t, err)
		assert.Equal(t, int64(len(input)), originalSize)
		assert.Equal(t, int64(len(out)), newSize)
	}
}

func TestCompressImageKeepsFormat(t *testing.T) {
	compressor := NewCompressor(newFakeCodec().codec(), 0, discardLogger())

	out, _, _, err := compressor.Compress(context.Background(), imageFile("a.png", domain.FormatPNG, 10, 10), domain.QualityFromLevel(3))
	require.NoError(t, err)
	assert.Equal(t, "IMG:png:10:10:3", string(out))
}

func TestCompressImageDownscalesLargeImages(t *testing.T) {
	fake := newFakeCodec()
	compressor := NewCompressor(fake.codec(), 2000, discardLogger())

	out, _, _, err := compressor.Compress(context.Background(), imageFile("big.jpg", domain.FormatJPG, 4000, 1000), domain.QualityFromLevel(5))
	require.NoError(t, err)
	assert.Equal(t, "IMG:jpg:2000:500:5", string(out))
	assert.Equal(t, 1, fake.images.resized)
}

func TestCompressImageWithinLimitIsNotResized(t *testing.T) {
	fake := newFakeCodec()
	compressor := NewCompressor(fake.codec(), 2000, discardLogger())

	_, _, _, err := compressor.Compress(context.Background(), imageFile("a.jpg", domain.FormatJPG, 2000, 2000), domain.QualityFromLevel(5))
	require.NoError(t, err)
	assert.Zero(t, fake.images.resized)
}

func TestCompressDocumentReplacesEmbeddedImages(t *testing.T) {
	compressor := NewCompressor(newFakeCodec().codec(), 0, discardLogger())
	file := pdfFile("scan.pdf", pdfBytes("text", "img:40x30", "img:8x8"))

	out, _, newSize, err := compressor.Compress(context.Background(), file, domain.QualityFromLevel(4))
	require.NoError(t, err)
	assert.Equal(t, "PDF|text|jpeg 40x30 IMG:jpg:40:30:4|jpeg 8x8 IMG:jpg:8:8:4", string(out))
	assert.Equal(t, int64(len(out)), newSize)
}

func TestCompressUnsupportedFileType(t *testing.T) {
	compressor := NewCompressor(newFakeCodec().codec(), 0, discardLogger())
	file := domain.NewSourceFile("notes.txt", "text/plain", []byte("x"))

	_, _, _, err := compressor.Compress(context.Background(), file, domain.QualityFromLevel(5))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestCompressFailureKinds(t *testing.T) {
	ctx := context.Background()

	t.Run("unreadable", func(t *testing.T) {
		compressor := NewCompressor(newFakeCodec().codec(), 0, discardLogger())
		_, _, _, err := compressor.Compress(ctx, failingFile("a.pdf", domain.MimePDF), domain.QualityFromLevel(5))
		assert.ErrorIs(t, err, domain.ErrReadFailure)
	})

	t.Run("corrupt document", func(t *testing.T) {
		compressor := NewCompressor(newFakeCodec().codec(), 0, discardLogger())
		_, _, _, err := compressor.Compress(ctx, pdfFile("a.pdf", []byte("junk")), domain.QualityFromLevel(5))
		assert.ErrorIs(t, err, domain.ErrDecodeFailure)
	})

	t.Run("save fails", func(t *testing.T) {
		fake := newFakeCodec()
		fake.documents.failSave = true
		compressor := NewCompressor(fake.codec(), 0, discardLogger())
		_, _, _, err := compressor.Compress(ctx, pdfFile("a.pdf", pdfBytes("p")), domain.QualityFromLevel(5))
		assert.ErrorIs(t, err, domain.ErrEncodeFailure)
	})
}
