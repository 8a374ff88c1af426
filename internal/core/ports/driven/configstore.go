package driven

// ConfigStore is a flat key/value view of the settings file. Keys are dotted
// paths such as "server.addr". Typed getters return the zero value when a key
// is missing or holds something that cannot be converted.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetStringSlice(key string) []string

	// Keys lists stored keys in sorted order.
	Keys() []string

	// Set writes a value. File-backed stores persist it immediately.
	Set(key string, value any) error

	Save() error
	Load() error

	// Path is where the settings live, for display.
	Path() string
}
