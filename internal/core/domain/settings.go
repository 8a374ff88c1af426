package domain

const unknownDescription = "Unknown"

// StorageDriver selects the catalog backend.
type StorageDriver string

// Available storage drivers.
const (
	// StorageDriverSQLite persists the catalog in a local SQLite file.
	StorageDriverSQLite StorageDriver = "sqlite"

	// StorageDriverMemory keeps the catalog in process memory.
	StorageDriverMemory StorageDriver = "memory"
)

// IsValid returns true if the storage driver is recognised.
func (d StorageDriver) IsValid() bool {
	return d == StorageDriverSQLite || d == StorageDriverMemory
}

// String returns the string representation.
func (d StorageDriver) String() string {
	return string(d)
}

// Description returns a human-readable description of the driver.
func (d StorageDriver) Description() string {
	switch d {
	case StorageDriverSQLite:
		return "SQLite (persistent, on disk)"
	case StorageDriverMemory:
		return "Memory (reseeded on every start)"
	default:
		return unknownDescription
	}
}

// StorageSettings holds catalog storage configuration.
type StorageSettings struct {
	Driver StorageDriver

	// Path is the SQLite database file. Ignored for the memory driver.
	Path string
}

// ServerSettings holds HTTP API configuration.
type ServerSettings struct {
	Addr                     string
	CORSOrigins              []string
	ReadHeaderTimeoutSeconds int
}

// RateLimitSettings holds per-bucket request budgets, in requests per minute.
type RateLimitSettings struct {
	API       int
	Search    int
	Analysis  int
	Affiliate int
}

// CatalogSettings controls where reference data is loaded from.
type CatalogSettings struct {
	// Path is an external dataset file. Empty uses the embedded dataset.
	Path string

	// Watch reloads Path when it changes.
	Watch bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	Storage   StorageSettings
	Server    ServerSettings
	RateLimit RateLimitSettings
	Catalog   CatalogSettings

	// SuggestionTTLSeconds is how long search suggestions are cached.
	SuggestionTTLSeconds int

	// DefaultCountry is used for offer lookups without an explicit country.
	DefaultCountry string
}

// DefaultAppSettings returns settings with sensible defaults.
// Storage.Path is left empty; the settings service fills it from the config directory.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Driver: StorageDriverSQLite,
		},
		Server: ServerSettings{
			Addr:                     ":8080",
			CORSOrigins:              []string{"*"},
			ReadHeaderTimeoutSeconds: 10,
		},
		RateLimit: RateLimitSettings{
			API:       60,
			Search:    100,
			Analysis:  10,
			Affiliate: 30,
		},
		SuggestionTTLSeconds: 60,
		DefaultCountry:       "US",
	}
}

// AllStorageDrivers returns all available storage drivers.
func AllStorageDrivers() []StorageDriver {
	return []StorageDriver{StorageDriverSQLite, StorageDriverMemory}
}
