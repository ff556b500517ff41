package preferences

import "fileforge/internal/models"

type UserPreferencesData = models.UserPreferencesData

type Repository interface {
	GetPreferences() (*UserPreferencesData, error)
	UpdatePreferences(data map[string]any) error
	GetDownloadFolder() (string, error)
}
