package fileops

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures so callers can branch on them
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindReadFailure
	KindDecodeFailure
	KindEncodeFailure
	KindUnsupportedConversion
	KindUnsupportedFileType
	KindUnsupportedOperation
	KindAllFilesMustBeDocuments
	KindUnsupportedForSplit
	KindInvalidOptions
)

var kindNames = map[ErrorKind]string{
	KindUnknown:                 "unknown",
	KindReadFailure:             "read_failure",
	KindDecodeFailure:           "decode_failure",
	KindEncodeFailure:           "encode_failure",
	KindUnsupportedConversion:   "unsupported_conversion",
	KindUnsupportedFileType:     "unsupported_file_type",
	KindUnsupportedOperation:    "unsupported_operation",
	KindAllFilesMustBeDocuments: "all_files_must_be_documents",
	KindUnsupportedForSplit:     "unsupported_for_split",
	KindInvalidOptions:          "invalid_options",
}

var kindMessages = map[ErrorKind]string{
	KindUnknown:                 "operation failed",
	KindReadFailure:             "file reading failed",
	KindDecodeFailure:           "file could not be decoded",
	KindEncodeFailure:           "output could not be encoded",
	KindUnsupportedConversion:   "unsupported conversion",
	KindUnsupportedFileType:     "unsupported file type for compression",
	KindUnsupportedOperation:    "unsupported operation",
	KindAllFilesMustBeDocuments: "all files must be PDFs",
	KindUnsupportedForSplit:     "only PDF files can be split",
	KindInvalidOptions:          "invalid options",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// Sentinel errors, one per kind, for use with errors.Is
var (
	ErrReadFailure             = &OpError{Kind: KindReadFailure}
	ErrDecodeFailure           = &OpError{Kind: KindDecodeFailure}
	ErrEncodeFailure           = &OpError{Kind: KindEncodeFailure}
	ErrUnsupportedConversion   = &OpError{Kind: KindUnsupportedConversion}
	ErrUnsupportedFileType     = &OpError{Kind: KindUnsupportedFileType}
	ErrUnsupportedOperation    = &OpError{Kind: KindUnsupportedOperation}
	ErrAllFilesMustBeDocuments = &OpError{Kind: KindAllFilesMustBeDocuments}
	ErrUnsupportedForSplit     = &OpError{Kind: KindUnsupportedForSplit}
	ErrInvalidOptions          = &OpError{Kind: KindInvalidOptions}
)

// OpError represents a pipeline failure of a given kind
type OpError struct {
	Kind ErrorKind
	Op   string
	File string
	Err  error
}

func (e *OpError) Error() string {
	msg := kindMessages[e.Kind]
	if msg == "" {
		msg = kindMessages[KindUnknown]
	}
	if e.Op != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Op)
	}
	if e.File != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.File)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Is matches any *OpError of the same kind, so the sentinels work with errors.Is
func (e *OpError) Is(target error) bool {
	t, ok := target.(*OpError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewOpError creates a new pipeline error
func NewOpError(kind ErrorKind, op, file string, err error) *OpError {
	return &OpError{
		Kind: kind,
		Op:   op,
		File: file,
		Err:  err,
	}
}

// KindOf returns the kind of the outermost OpError in err's chain
func KindOf(err error) ErrorKind {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	return KindUnknown
}

// Classify wraps err as kind unless it already carries a kind
func Classify(kind ErrorKind, file string, err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != KindUnknown {
		return err
	}
	return NewOpError(kind, "", file, err)
}
