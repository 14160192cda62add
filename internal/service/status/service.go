package status

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bookathing/bookathing/internal/domain"
)

// ResourceCatalog supplies resource definitions.
type ResourceCatalog interface {
	Resource(id string) (*domain.Resource, error)
}

// BookingSource answers whether a booking is active on a resource right now.
type BookingSource interface {
	ActiveAt(ctx context.Context, resourceID string, t time.Time) (*domain.Booking, bool)
}

// TimeProvider supplies the current time (swappable in tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface used by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// RealTimeProvider is the production time source.
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time { return time.Now() }

// CurrentBooking is the booking occupying the resource right now.
type CurrentBooking struct {
	ID       string
	UserName string
	EndTime  time.Time
}

// Result is a derived occupancy snapshot for one resource.
type Result struct {
	Status         domain.ResourceStatus
	CurrentBooking *CurrentBooking // set only when Status is in_use from a live booking
	LastUpdated    time.Time
}

// Service derives live resource occupancy. An active booking always wins over
// the manually set status; the manual map only answers when the resource is
// idle. Resources with status tracking disabled report not_tracked.
type Service struct {
	catalog      ResourceCatalog
	bookings     BookingSource
	timeProvider TimeProvider
	logger       Logger

	mu     sync.RWMutex
	manual map[string]domain.ResourceStatus
}

// NewService creates a status monitor.
func NewService(catalog ResourceCatalog, bookings BookingSource, logger Logger) *Service {
	return &Service{
		catalog:      catalog,
		bookings:     bookings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		manual:       map[string]domain.ResourceStatus{},
	}
}

// WithTimeProvider overrides the time source. Intended for tests.
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Compute derives the live status of a resource.
func (s *Service) Compute(ctx context.Context, resourceID string) (*Result, error) {
	resource, err := s.catalog.Resource(resourceID)
	if err != nil {
		s.logger.Warn("Compute: resource id=%s not found", resourceID)
		return nil, ErrResourceNotFound
	}

	now := s.timeProvider.Now()

	if !resource.ShowStatus {
		return &Result{Status: domain.ResourceNotTracked, LastUpdated: now}, nil
	}

	if booking, ok := s.bookings.ActiveAt(ctx, resourceID, now); ok {
		return &Result{
			Status: domain.ResourceInUse,
			CurrentBooking: &CurrentBooking{
				ID:       booking.ID,
				UserName: booking.UserName,
				EndTime:  booking.EndTime,
			},
			LastUpdated: now,
		}, nil
	}

	s.mu.RLock()
	manual, ok := s.manual[resourceID]
	s.mu.RUnlock()
	if !ok {
		manual = domain.ResourceAvailable
	}

	return &Result{Status: manual, LastUpdated: now}, nil
}

// SetStatus stores a manual status override for a resource. The override is
// consulted only while no booking is active.
func (s *Service) SetStatus(ctx context.Context, resourceID string, status domain.ResourceStatus) error {
	if _, err := s.catalog.Resource(resourceID); err != nil {
		s.logger.Warn("SetStatus: resource id=%s not found", resourceID)
		return ErrResourceNotFound
	}

	if !domain.IsSettableResourceStatus(status) {
		s.logger.Warn("SetStatus: invalid status=%s for resource id=%s", status, resourceID)
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	s.manual[resourceID] = status
	s.mu.Unlock()

	s.logger.Info("SetStatus: resource id=%s manual status=%s", resourceID, status)
	return nil
}
