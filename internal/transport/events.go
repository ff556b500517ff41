package transport

import (
	"context"

	domain "fileforge/internal/domain/fileops"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

type wailsEventSink struct{}

// NewEventSink returns a sink that forwards events to the webview. ctx passed
// to Emit must be the context Wails handed to OnStartup.
func NewEventSink() domain.EventSink {
	return wailsEventSink{}
}

func (wailsEventSink) Emit(ctx context.Context, name string, payload any) {
	wailsruntime.EventsEmit(ctx, name, payload)
}
