package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skintelect/skintelect/internal/core/domain"
)

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty input returns default",
			input:      "",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice within range",
			input:      "3",
			maxVal:     5,
			defaultVal: 1,
			expected:   3,
		},
		{
			name:       "Choice below minimum returns default",
			input:      "0",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Choice above maximum returns default",
			input:      "6",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Invalid input returns default",
			input:      "abc",
			maxVal:     5,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Maximum value is valid",
			input:      "5",
			maxVal:     5,
			defaultVal: 1,
			expected:   5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b ,"))
	assert.Nil(t, splitList(" , "))
}

func TestSettingsList(t *testing.T) {
	setupServices(t)

	out, err := execute(t, "", "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "server.addr")
	assert.Contains(t, out, ":8080")
	assert.Contains(t, out, "catalog.path")
	assert.Contains(t, out, "(not set)")
	assert.NotContains(t, out, "Warning:")
}

func TestSettingsGetSet(t *testing.T) {
	setupServices(t)

	out, err := execute(t, "", "settings", "set", "affiliate.default_country", "gb")
	require.NoError(t, err)
	assert.Equal(t, "affiliate.default_country = GB\n", out)

	out, err = execute(t, "", "settings", "get", "affiliate.default_country")
	require.NoError(t, err)
	assert.Equal(t, "GB\n", out)
}

func TestSettingsSet_Invalid(t *testing.T) {
	setupServices(t)

	_, err := execute(t, "", "settings", "set", "ratelimit.api", "lots")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = execute(t, "", "settings", "get", "no.such.key")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsList_ShowsValidationWarning(t *testing.T) {
	setupServices(t)
	_, err := execute(t, "", "settings", "set", "catalog.watch", "true")
	require.NoError(t, err)

	out, err := execute(t, "", "settings", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Warning: catalog.watch requires catalog.path")
}

func TestSettingsWizard(t *testing.T) {
	setupServices(t)
	// memory storage, default address, two origins, country de
	stdin := "2\n\nhttps://a.example, https://b.example\nde\n"

	out, err := execute(t, stdin, "settings", "wizard")
	require.NoError(t, err)
	assert.Contains(t, out, "All settings are valid and saved.")

	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.StorageDriverMemory, settings.Storage.Driver)
	assert.Equal(t, ":8080", settings.Server.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, settings.Server.CORSOrigins)
	assert.Equal(t, "DE", settings.DefaultCountry)
}

func TestSettingsWizard_KeepsDefaults(t *testing.T) {
	setupServices(t)

	_, err := execute(t, "", "settings", "wizard")
	require.NoError(t, err)

	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.StorageDriverSQLite, settings.Storage.Driver)
	assert.Equal(t, "US", settings.DefaultCountry)
}
