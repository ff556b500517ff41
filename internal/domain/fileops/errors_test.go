package fileops

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *OpError
		want string
	}{
		{"bare", NewOpError(KindAllFilesMustBeDocuments, "", "", nil), "all files must be PDFs"},
		{"with op", NewOpError(KindUnsupportedConversion, "txt to png", "", nil), "unsupported conversion: txt to png"},
		{"with file", NewOpError(KindUnsupportedForSplit, "", "a.png", nil), "only PDF files can be split (a.png)"},
		{"with cause", NewOpError(KindReadFailure, "", "a.pdf", errors.New("permission denied")), "file reading failed (a.pdf): permission denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestOpErrorMatchesSentinelByKind(t *testing.T) {
	err := fmt.Errorf("batch: %w", NewOpError(KindDecodeFailure, "", "x.pdf", errors.New("eof")))

	assert.ErrorIs(t, err, ErrDecodeFailure)
	assert.NotErrorIs(t, err, ErrEncodeFailure)
	assert.Equal(t, KindDecodeFailure, KindOf(err))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, "unknown", KindOf(nil).String())
}

func TestClassifyKeepsExistingKind(t *testing.T) {
	read := NewOpError(KindReadFailure, "", "a", nil)

	assert.Same(t, read, Classify(KindDecodeFailure, "a", read))
	assert.Equal(t, KindDecodeFailure, KindOf(Classify(KindDecodeFailure, "a", errors.New("bad"))))
	assert.NoError(t, Classify(KindDecodeFailure, "a", nil))
}

func TestErrorKindNames(t *testing.T) {
	assert.Equal(t, "unsupported_conversion", KindUnsupportedConversion.String())
	assert.Equal(t, "all_files_must_be_documents", KindAllFilesMustBeDocuments.String())
	assert.Equal(t, "unknown", ErrorKind(99).String())
}
