package domain

import "time"

// Database connectivity states reported by a health check.
const (
	DatabaseConnected    = "connected"
	DatabaseDisconnected = "disconnected"
)

// Health is the service health report.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
	Version   string    `json:"version"`
}

// IsHealthy reports whether the database is reachable.
func (h Health) IsHealthy() bool {
	return h.Database == DatabaseConnected
}
