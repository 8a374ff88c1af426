package services

import (
	"context"
	"time"

	"github.com/skintelect/skintelect/internal/core/domain"
	"github.com/skintelect/skintelect/internal/core/ports/driven"
	"github.com/skintelect/skintelect/internal/core/ports/driving"
	"github.com/skintelect/skintelect/internal/logger"
)

// Ensure HealthService implements the interface.
var _ driving.HealthService = (*HealthService)(nil)

const pingTimeout = 2 * time.Second

// HealthService reports service health.
type HealthService struct {
	pinger  driven.Pinger
	version string
	now     func() time.Time
}

// NewHealthService creates a health service.
// A nil pinger always reports the database as disconnected.
func NewHealthService(pinger driven.Pinger, version string) *HealthService {
	return &HealthService{pinger: pinger, version: version, now: time.Now}
}

// Check pings storage and reports the result.
func (s *HealthService) Check(ctx context.Context) domain.Health {
	h := domain.Health{
		Status:    "ok",
		Timestamp: s.now().UTC(),
		Database:  domain.DatabaseDisconnected,
		Version:   s.version,
	}
	if s.pinger == nil {
		return h
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.pinger.Ping(ctx); err != nil {
		logger.Warn("database ping failed: %v", err)
		return h
	}
	h.Database = domain.DatabaseConnected
	return h
}
