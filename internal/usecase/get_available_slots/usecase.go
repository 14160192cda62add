package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/bookathing/bookathing/internal/domain"
)

// UseCase computes the bookable slot sequence for a resource on one calendar
// day. It reads the catalog and a snapshot of the booking collection; it never
// mutates either.
type UseCase struct {
	catalog      ResourceCatalog
	bookings     BookingSource
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the use case.
func NewUseCase(catalog ResourceCatalog, bookings BookingSource, logger Logger) *UseCase {
	return &UseCase{
		catalog:      catalog,
		bookings:     bookings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider overrides the time source. Intended for tests.
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute computes the slots for the requested day.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: resource=%s, date=%s, timezone=%s",
		req.ResourceID, req.Date.Format(domain.DateFormat), req.Timezone)

	// 1. Validate input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Resolve the timezone
	loc, err := resolveLocation(req.Timezone)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: unknown timezone %q", req.Timezone)
		return nil, err
	}

	// 3. Resolve the resource
	resource, err := uc.catalog.Resource(req.ResourceID)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: resource id=%s not found", req.ResourceID)
		return nil, ErrResourceNotFound
	}

	slotDuration := uc.catalog.SlotDurationFor(req.ResourceID)

	// 4. Anchor the day: local midnight of the requested date in the zone
	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	response := &Response{
		ResourceID:          resource.ID,
		ResourceName:        resource.Name,
		Date:                req.Date,
		Timezone:            loc.String(),
		SlotDurationMinutes: slotDuration,
		Slots:               []domain.Slot{},
	}

	// 5. Resolve the weekday schedule with global fallback.
	// A missing or disabled entry means closed that day, a normal outcome.
	weekday := domain.WeekdayName(dayStart.Weekday())
	schedule, ok := uc.catalog.WorkingHoursFor(req.ResourceID, weekday)
	if !ok || !schedule.Enabled {
		uc.logger.Info("GetAvailableSlots: resource=%s closed on %s", req.ResourceID, weekday)
		return response, nil
	}

	// 6. Snapshot the day's bookings
	bookings, err := uc.bookings.ListForResource(ctx, req.ResourceID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	// 7. Generate the slot sequence
	slots, err := generateSlots(schedule, slotDuration, dayStart, uc.timeProvider.Now(), bookings)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for resource=%s, date=%s",
		len(slots), req.ResourceID, req.Date.Format(domain.DateFormat))

	response.Slots = slots
	return response, nil
}

func resolveLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	return loc, nil
}
