package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	domain "fileforge/internal/domain/fileops"
	"fileforge/internal/models"

	"gorm.io/gorm"
)

// PreferencesService handles user preferences operations
type PreferencesService struct {
	db *gorm.DB
}

// NewPreferencesService creates a new preferences service
func NewPreferencesService(db *gorm.DB) *PreferencesService {
	return &PreferencesService{db: db}
}

// GetPreferences gets the current user preferences
func (s *PreferencesService) GetPreferences() (*models.UserPreferencesData, error) {
	prefs, err := models.GetOrCreatePreferences(s.db)
	if err != nil {
		return nil, err
	}

	prefsData := prefs.GetPreferences()
	return &prefsData, nil
}

// UpdatePreferences applies the known keys of data. Numbers arrive as
// float64, the way the frontend's JSON decodes. Invalid values are rejected
// and nothing is saved.
func (s *PreferencesService) UpdatePreferences(data map[string]any) error {
	prefs, err := models.GetOrCreatePreferences(s.db)
	if err != nil {
		return err
	}

	currentPrefs := prefs.GetPreferences()

	if val, ok := data["default_download_folder"]; ok {
		if folder, ok := val.(string); ok {
			currentPrefs.DefaultDownloadFolder = folder
		}
	}

	if val, ok := data["default_target_format"]; ok {
		if name, ok := val.(string); ok {
			format, known := domain.ParseFormat(name)
			if !known {
				return fmt.Errorf("unknown target format %q", name)
			}
			currentPrefs.DefaultTargetFormat = string(format)
		}
	}

	if val, ok := data["default_compression_level"]; ok {
		if level, ok := val.(float64); ok {
			currentPrefs.DefaultCompressionLevel = domain.QualityFromLevel(int(level)).Level
		}
	}

	if val, ok := data["default_split_parts"]; ok {
		if parts, ok := val.(float64); ok {
			if parts < 1 {
				return fmt.Errorf("default split parts must be at least 1, got %v", parts)
			}
			currentPrefs.DefaultSplitParts = int(parts)
		}
	}

	if val, ok := data["auto_download_enabled"]; ok {
		if enabled, ok := val.(bool); ok {
			currentPrefs.AutoDownloadEnabled = enabled
		}
	}

	if err := prefs.SetPreferences(currentPrefs); err != nil {
		return err
	}

	return s.db.Save(prefs).Error
}

// GetDownloadFolder returns the preferred download folder, falling back to
// ~/Downloads
func (s *PreferencesService) GetDownloadFolder() (string, error) {
	prefs, err := s.GetPreferences()
	if err != nil {
		return "", err
	}

	if folder := strings.TrimSpace(prefs.DefaultDownloadFolder); folder != "" {
		return folder, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, "Downloads"), nil
}
