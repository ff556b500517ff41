package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	// File operation constants
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644

	maxNameAttempts = 1000
)

// GenerateUUID generates a new UUID string
func GenerateUUID() string {
	return uuid.New().String()
}

// createUnique exclusively creates a file in dir for name. Taken names get a
// " (n)" suffix before the extension; a file appearing between attempts is
// never truncated.
func createUnique(dir, name string) (*os.File, error) {
	name = filepath.Base(name)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := filepath.Join(dir, name)
	for i := 1; i <= maxNameAttempts; i++ {
		f, err := os.OpenFile(candidate, os.O_WRONLY|os.O_CREATE|os.O_EXCL, DefaultFilePermissions)
		if err == nil {
			return f, nil
		}
		if !os.IsExist(err) {
			return nil, err
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
	}
	return nil, fmt.Errorf("no free name for %s in %s", name, dir)
}

// WriteOutput writes data to a new file named name inside dir, creating dir
// when needed. Existing files are never overwritten; the written path is
// returned.
func WriteOutput(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := createUnique(dir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	path := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
