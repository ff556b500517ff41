package application

import (
	"context"
	"errors"
	"testing"
)

func TestApp_NotReady(t *testing.T) {
	app := NewApp()

	resp := app.ProcessFiles(ProcessRequest{Operation: "merge"})
	if resp.Success {
		t.Error("Expected failure before startup")
	}
	if resp.Error != ErrNotReady.Error() {
		t.Errorf("Expected %q, got %q", ErrNotReady.Error(), resp.Error)
	}

	if _, err := app.GetPreferences(); !errors.Is(err, ErrNotReady) {
		t.Errorf("Expected ErrNotReady, got %v", err)
	}

	if status := app.GetAppStatus(); status["status"] != "error" {
		t.Errorf("Expected error status, got %v", status)
	}

	if stats := app.GetStats(); stats == nil {
		t.Error("Expected empty stats, got nil")
	}
}

func TestApp_StartupErrorIsReported(t *testing.T) {
	cause := errors.New("disk full")
	app := &App{startupErr: NewStartupError("database", cause)}

	err := app.UpdatePreferences(map[string]any{})
	if !errors.Is(err, cause) {
		t.Errorf("Expected wrapped cause, got %v", err)
	}
	if err.Error() != "startup database failed: disk full" {
		t.Errorf("Unexpected message %q", err.Error())
	}

	resp := app.SaveResults(SaveRequest{})
	if resp.Success || resp.Error == "" {
		t.Errorf("Expected failed save, got %+v", resp)
	}
}

func TestApp_OnShutdownWithoutDatabase(t *testing.T) {
	app := NewApp()
	app.OnShutdown(context.Background())
}
