package fileops

import (
	"fmt"
	"strings"

	domain "fileforge/internal/domain/fileops"
)

const (
	MergedDocumentName = "merged_document.pdf"
	MergeErrorName     = "merge_error"
	compressedPrefix   = "compressed_"
)

// ConvertedName keeps everything before the first dot and appends the target
// extension, so "report.final.txt" becomes "report.pdf".
func ConvertedName(name string, target domain.Format) string {
	base, _, _ := strings.Cut(name, ".")
	return fmt.Sprintf("%s.%s", base, target)
}

func CompressedName(name string) string {
	return compressedPrefix + name
}

// SplitName builds the name of part index (zero based) of name
func SplitName(name string, index int) string {
	return fmt.Sprintf("split_%d_%s", index+1, name)
}
