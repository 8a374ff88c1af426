package driving

import "github.com/skintelect/skintelect/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Validate checks if current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Keys lists the recognised setting keys.
	Keys() []string

	// GetValue returns a single setting formatted for display.
	GetValue(key string) (string, error)

	// SetValue parses value for key and persists it.
	SetValue(key, value string) error
}
