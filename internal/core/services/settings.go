package services

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/skintelect/skintelect/internal/core/domain"
	"github.com/skintelect/skintelect/internal/core/ports/driven"
	"github.com/skintelect/skintelect/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStorageDriver     = "storage.driver"
	keyStoragePath       = "storage.path"
	keyServerAddr        = "server.addr"
	keyServerCORS        = "server.cors_origins"
	keyServerHeaderTO    = "server.read_header_timeout_seconds"
	keyLimitAPI          = "ratelimit.api"
	keyLimitSearch       = "ratelimit.search"
	keyLimitAnalysis     = "ratelimit.analysis"
	keyLimitAffiliate    = "ratelimit.affiliate"
	keyCatalogPath       = "catalog.path"
	keyCatalogWatch      = "catalog.watch"
	keySuggestionTTL     = "cache.suggestion_ttl_seconds"
	keyDefaultCountry    = "affiliate.default_country"
	defaultDatabaseFile  = "catalog.db"
	settingKindString    = "string"
	settingKindInt       = "int"
	settingKindBool      = "bool"
	settingKindStringSet = "strings"
)

// settingKinds maps every recognised key to its value type.
var settingKinds = map[string]string{
	keyStorageDriver:  settingKindString,
	keyStoragePath:    settingKindString,
	keyServerAddr:     settingKindString,
	keyServerCORS:     settingKindStringSet,
	keyServerHeaderTO: settingKindInt,
	keyLimitAPI:       settingKindInt,
	keyLimitSearch:    settingKindInt,
	keyLimitAnalysis:  settingKindInt,
	keyLimitAffiliate: settingKindInt,
	keyCatalogPath:    settingKindString,
	keyCatalogWatch:   settingKindBool,
	keySuggestionTTL:  settingKindInt,
	keyDefaultCountry: settingKindString,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	dataDir     string
}

// NewSettingsService creates a new settings service.
// dataDir is where the default SQLite database lives.
func NewSettingsService(configStore driven.ConfigStore, dataDir string) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		dataDir:     dataDir,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := s.GetDefaults()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			Driver: s.getDriver(defaults.Storage.Driver),
			Path:   s.getString(keyStoragePath, defaults.Storage.Path),
		},
		Server: domain.ServerSettings{
			Addr:                     s.getString(keyServerAddr, defaults.Server.Addr),
			CORSOrigins:              s.getStrings(keyServerCORS, defaults.Server.CORSOrigins),
			ReadHeaderTimeoutSeconds: s.getInt(keyServerHeaderTO, defaults.Server.ReadHeaderTimeoutSeconds),
		},
		RateLimit: domain.RateLimitSettings{
			API:       s.getInt(keyLimitAPI, defaults.RateLimit.API),
			Search:    s.getInt(keyLimitSearch, defaults.RateLimit.Search),
			Analysis:  s.getInt(keyLimitAnalysis, defaults.RateLimit.Analysis),
			Affiliate: s.getInt(keyLimitAffiliate, defaults.RateLimit.Affiliate),
		},
		Catalog: domain.CatalogSettings{
			Path:  s.configStore.GetString(keyCatalogPath), // empty selects the embedded dataset
			Watch: s.getBool(keyCatalogWatch, defaults.Catalog.Watch),
		},
		SuggestionTTLSeconds: s.getInt(keySuggestionTTL, defaults.SuggestionTTLSeconds),
		DefaultCountry:       s.getString(keyDefaultCountry, defaults.DefaultCountry),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyStorageDriver, settings.Storage.Driver.String()},
		{keyStoragePath, settings.Storage.Path},
		{keyServerAddr, settings.Server.Addr},
		{keyServerCORS, settings.Server.CORSOrigins},
		{keyServerHeaderTO, settings.Server.ReadHeaderTimeoutSeconds},
		{keyLimitAPI, settings.RateLimit.API},
		{keyLimitSearch, settings.RateLimit.Search},
		{keyLimitAnalysis, settings.RateLimit.Analysis},
		{keyLimitAffiliate, settings.RateLimit.Affiliate},
		{keyCatalogPath, settings.Catalog.Path},
		{keyCatalogWatch, settings.Catalog.Watch},
		{keySuggestionTTL, settings.SuggestionTTLSeconds},
		{keyDefaultCountry, settings.DefaultCountry},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Storage.Driver.IsValid() {
		return fmt.Errorf("invalid storage driver: %s", settings.Storage.Driver)
	}
	if settings.Storage.Driver == domain.StorageDriverSQLite && settings.Storage.Path == "" {
		return fmt.Errorf("storage path required for %s", settings.Storage.Driver.Description())
	}
	if settings.Server.Addr == "" {
		return fmt.Errorf("server address is required")
	}

	limits := map[string]int{
		keyLimitAPI:       settings.RateLimit.API,
		keyLimitSearch:    settings.RateLimit.Search,
		keyLimitAnalysis:  settings.RateLimit.Analysis,
		keyLimitAffiliate: settings.RateLimit.Affiliate,
	}
	for key, v := range limits {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", key, v)
		}
	}

	if len(settings.DefaultCountry) != 2 {
		return fmt.Errorf("default country must be a 2-letter code, got %q", settings.DefaultCountry)
	}
	if settings.Catalog.Watch && settings.Catalog.Path == "" {
		return fmt.Errorf("catalog.watch requires catalog.path")
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	defaults := domain.DefaultAppSettings()
	if s.dataDir != "" {
		defaults.Storage.Path = filepath.Join(s.dataDir, defaultDatabaseFile)
	}
	return defaults
}

// Keys lists the recognised setting keys, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetValue returns the effective value of key, formatted for display.
func (s *SettingsService) GetValue(key string) (string, error) {
	if _, ok := settingKinds[key]; !ok {
		return "", fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}
	settings, err := s.Get()
	if err != nil {
		return "", err
	}

	switch key {
	case keyStorageDriver:
		return settings.Storage.Driver.String(), nil
	case keyStoragePath:
		return settings.Storage.Path, nil
	case keyServerAddr:
		return settings.Server.Addr, nil
	case keyServerCORS:
		return strings.Join(settings.Server.CORSOrigins, ","), nil
	case keyServerHeaderTO:
		return strconv.Itoa(settings.Server.ReadHeaderTimeoutSeconds), nil
	case keyLimitAPI:
		return strconv.Itoa(settings.RateLimit.API), nil
	case keyLimitSearch:
		return strconv.Itoa(settings.RateLimit.Search), nil
	case keyLimitAnalysis:
		return strconv.Itoa(settings.RateLimit.Analysis), nil
	case keyLimitAffiliate:
		return strconv.Itoa(settings.RateLimit.Affiliate), nil
	case keyCatalogPath:
		return settings.Catalog.Path, nil
	case keyCatalogWatch:
		return strconv.FormatBool(settings.Catalog.Watch), nil
	case keySuggestionTTL:
		return strconv.Itoa(settings.SuggestionTTLSeconds), nil
	default:
		return settings.DefaultCountry, nil
	}
}

// SetValue parses value according to the key's type and persists it.
func (s *SettingsService) SetValue(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	var parsed any
	switch kind {
	case settingKindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s expects an integer: %w", key, domain.ErrInvalidInput)
		}
		parsed = n
	case settingKindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects true or false: %w", key, domain.ErrInvalidInput)
		}
		parsed = b
	case settingKindStringSet:
		parts := strings.Split(value, ",")
		items := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				items = append(items, p)
			}
		}
		parsed = items
	default:
		if key == keyStorageDriver && !domain.StorageDriver(value).IsValid() {
			return fmt.Errorf("invalid storage driver %q: %w", value, domain.ErrInvalidInput)
		}
		if key == keyDefaultCountry {
			value = strings.ToUpper(value)
		}
		parsed = value
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getStrings(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDriver(defaultVal domain.StorageDriver) domain.StorageDriver {
	val := s.configStore.GetString(keyStorageDriver)
	if val == "" {
		return defaultVal
	}
	driver := domain.StorageDriver(val)
	if !driver.IsValid() {
		return defaultVal
	}
	return driver
}
