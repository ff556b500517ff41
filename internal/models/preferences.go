package models

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// UserPreferences represents user preferences in the database
type UserPreferences struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PreferencesJSON string    `gorm:"type:text" json:"preferences_json"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UserPreferencesData represents the structured preferences data
type UserPreferencesData struct {
	DefaultDownloadFolder   string `json:"default_download_folder"`
	DefaultTargetFormat     string `json:"default_target_format"`
	DefaultCompressionLevel int    `json:"default_compression_level"`
	DefaultSplitParts       int    `json:"default_split_parts"`
	AutoDownloadEnabled     bool   `json:"auto_download_enabled"`
}

// DefaultPreferences returns default preference values
func DefaultPreferences() UserPreferencesData {
	return UserPreferencesData{
		DefaultDownloadFolder:   "",
		DefaultTargetFormat:     "pdf",
		DefaultCompressionLevel: 5,
		DefaultSplitParts:       2,
		AutoDownloadEnabled:     false,
	}
}

// GetPreferences parses and returns the preferences data. Keys missing from
// the stored blob keep their defaults.
func (up *UserPreferences) GetPreferences() UserPreferencesData {
	prefs := DefaultPreferences()
	if up.PreferencesJSON == "" {
		return prefs
	}

	if err := json.Unmarshal([]byte(up.PreferencesJSON), &prefs); err != nil {
		return DefaultPreferences()
	}

	return prefs
}

// SetPreferences sets the preferences data
func (up *UserPreferences) SetPreferences(prefs UserPreferencesData) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	up.PreferencesJSON = string(data)
	return nil
}

// GetOrCreatePreferences gets or creates the global preferences instance
func GetOrCreatePreferences(db *gorm.DB) (*UserPreferences, error) {
	var prefs UserPreferences

	result := db.First(&prefs, 1)
	if result.Error == nil {
		return &prefs, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	prefs = UserPreferences{ID: 1}
	if err := prefs.SetPreferences(DefaultPreferences()); err != nil {
		return nil, err
	}
	if err := db.Create(&prefs).Error; err != nil {
		return nil, err
	}

	return &prefs, nil
}
