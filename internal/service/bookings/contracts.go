package bookings

import (
	"context"
	"time"

	"github.com/bookathing/bookathing/internal/domain"
)

// ResourceCatalog supplies resource definitions for validation.
type ResourceCatalog interface {
	Resource(id string) (*domain.Resource, error)
	Resources() []*domain.Resource
}

// Mirror receives best-effort copies of committed bookings. Save failures are
// logged and never surface to callers.
type Mirror interface {
	Save(ctx context.Context, booking *domain.Booking) error
}

// TimeProvider supplies the current time (swappable in tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface used by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time source.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
