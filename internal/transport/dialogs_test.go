package transport

import (
	"context"
	"testing"

	domain "fileforge/internal/domain/fileops"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

func TestNewDialogsHandler(t *testing.T) {
	ctx := context.Background()
	handler := NewDialogsHandler(ctx)

	if handler == nil {
		t.Fatal("Expected DialogHandler instance, got nil")
	}

	// Verify it implements the interface
	var _ DialogHandler = handler
}

func patterns(filters []wailsruntime.FileFilter) []string {
	out := make([]string, len(filters))
	for i, f := range filters {
		out[i] = f.Pattern
	}
	return out
}

func TestFiltersFor(t *testing.T) {
	tests := []struct {
		operation string
		want      []string
	}{
		{"converter", []string{"*.pdf", "*.jpg;*.jpeg;*.png", "*.txt"}},
		{"compress", []string{"*.pdf", "*.jpg;*.jpeg;*.png"}},
		{"merge", []string{"*.pdf"}},
		{"split", []string{"*.pdf"}},
		{"rotate", []string{"*.pdf", "*.jpg;*.jpeg;*.png", "*.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.operation, func(t *testing.T) {
			got := patterns(filtersFor(tt.operation))
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Filter %d: expected %s, got %s", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestFiltersForFormat(t *testing.T) {
	if got := patterns(filtersForFormat(domain.FormatJPG)); len(got) != 1 || got[0] != imageFilter.Pattern {
		t.Errorf("Expected image filter, got %v", got)
	}
	if got := filtersForFormat(domain.Format("docx")); got != nil {
		t.Errorf("Expected no filter for unknown formats, got %v", got)
	}
}

func TestDialogTitle(t *testing.T) {
	if got := dialogTitle("split"); got != "Select a PDF file to split" {
		t.Errorf("Unexpected title %q", got)
	}
	if got := dialogTitle("bogus"); got != "Select files" {
		t.Errorf("Unexpected fallback title %q", got)
	}
}
