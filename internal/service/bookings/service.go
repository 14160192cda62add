package bookings

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bookathing/bookathing/internal/domain"
	"github.com/bookathing/bookathing/pkg/metrics"
)

// Service owns the in-memory booking collection. It validates and commits new
// bookings, applies status transitions and answers filtered queries.
//
// Every validate-then-commit sequence runs under a per-resource mutex so two
// concurrent creates for the same resource cannot both pass the conflict check
// before either commits. The collection map itself is guarded by a separate
// RWMutex so queries never block behind another resource's critical section.
type Service struct {
	catalog      ResourceCatalog
	mirror       Mirror
	timeProvider TimeProvider
	logger       Logger
	metrics      *metrics.Metrics // optional, nil when metrics are disabled

	mirrorTimeout time.Duration

	mu       sync.RWMutex
	bookings map[string]*domain.Booking

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

// NewService creates a booking service. mirror and collector may be nil.
func NewService(catalog ResourceCatalog, mirror Mirror, collector *metrics.Metrics, logger Logger) *Service {
	return &Service{
		catalog:       catalog,
		mirror:        mirror,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
		metrics:       collector,
		mirrorTimeout: 5 * time.Second,
		bookings:      map[string]*domain.Booking{},
		locks:         map[string]*sync.Mutex{},
	}
}

// WithTimeProvider overrides the time source. Intended for tests.
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// WithMirrorTimeout overrides the per-write deadline for mirror notifications.
func (s *Service) WithMirrorTimeout(d time.Duration) *Service {
	if d > 0 {
		s.mirrorTimeout = d
	}
	return s
}

// Create validates and commits a new booking.
//
// Validation order: resource existence, input validity, conflict, capacity;
// the first failure short-circuits. On success the initial status is pending
// when the resource requires confirmation, confirmed otherwise.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*domain.Booking, error) {
	s.logger.Info("Create: resource=%s, user=%s, start=%s, end=%s",
		req.ResourceID, req.UserName, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))

	// 1. Resource must exist
	resource, err := s.catalog.Resource(req.ResourceID)
	if err != nil {
		s.logger.Warn("Create: resource id=%s not found", req.ResourceID)
		s.countDenied(req.ResourceID, "not_found")
		return nil, ErrResourceNotFound
	}

	// 2. Input validity
	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		s.countDenied(req.ResourceID, "invalid_input")
		return nil, err
	}

	// Critical section: conflict check + capacity check + commit must be
	// atomic per resource. Released on every exit path via defer.
	lock := s.resourceLock(req.ResourceID)
	lock.Lock()
	defer lock.Unlock()

	existing := s.snapshotForResource(req.ResourceID)

	// 3. Conflict against non-cancelled bookings, half-open intervals
	for _, b := range existing {
		if b.IsActive() && b.Overlaps(req.StartTime, req.EndTime) {
			s.logger.Warn("Create: conflict on resource=%s with booking id=%s", req.ResourceID, b.ID)
			s.countDenied(req.ResourceID, "conflict")
			return nil, fmt.Errorf("%w: overlaps booking %s", ErrSlotConflict, b.ID)
		}
	}

	// 4. Per-user daily cap, counted on the client's calendar day
	if resource.MaxBookingsPerDay != nil {
		count := s.countUserBookingsOnDay(existing, req)
		if count >= *resource.MaxBookingsPerDay {
			s.logger.Warn("Create: capacity exceeded for user=%s on resource=%s (%d/%d)",
				req.UserName, req.ResourceID, count, *resource.MaxBookingsPerDay)
			s.countDenied(req.ResourceID, "capacity")
			return nil, fmt.Errorf("%w: maximum %d bookings per day", ErrCapacityExceeded, *resource.MaxBookingsPerDay)
		}
	}

	status := domain.StatusConfirmed
	if resource.RequiresConfirmation {
		status = domain.StatusPending
	}

	booking := &domain.Booking{
		ID:         uuid.NewString(),
		ResourceID: req.ResourceID,
		StartTime:  req.StartTime.UTC(),
		EndTime:    req.EndTime.UTC(),
		UserName:   req.UserName,
		UserEmail:  req.UserEmail,
		UserPhone:  req.UserPhone,
		Notes:      req.Notes,
		Status:     status,
		CreatedAt:  s.timeProvider.Now().UTC(),
	}

	s.mu.Lock()
	s.bookings[booking.ID] = booking
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.BookingsCreated.WithLabelValues(req.ResourceID).Inc()
	}
	s.logger.Info("Create: booking id=%s committed with status=%s", booking.ID, booking.Status)

	s.notifyMirror(booking)
	return clone(booking), nil
}

// Cancel marks a booking cancelled and stamps CancelledAt. Cancelling an
// already-cancelled booking is a no-op returning the unchanged booking.
func (s *Service) Cancel(ctx context.Context, id string) (*domain.Booking, error) {
	s.logger.Info("Cancel: booking id=%s", id)

	resourceID, err := s.resourceIDOf(id)
	if err != nil {
		s.logger.Warn("Cancel: booking id=%s not found", id)
		return nil, err
	}

	lock := s.resourceLock(resourceID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	booking, ok := s.bookings[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrBookingNotFound
	}

	if booking.IsCancelled() {
		result := clone(booking)
		s.mu.Unlock()
		s.logger.Info("Cancel: booking id=%s already cancelled, no-op", id)
		return result, nil
	}

	now := s.timeProvider.Now().UTC()
	booking.Status = domain.StatusCancelled
	booking.CancelledAt = &now
	result := clone(booking)
	s.mu.Unlock()

	s.logger.Info("Cancel: booking id=%s cancelled", id)
	s.notifyMirror(result)
	return result, nil
}

// SetStatus applies a status unconditionally and stamps UpdatedAt.
// No transition graph is enforced: any of the four states may follow any other.
func (s *Service) SetStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	s.logger.Info("SetStatus: booking id=%s, status=%s", id, status)

	if !domain.IsValidBookingStatus(status) {
		s.logger.Warn("SetStatus: invalid status=%s for booking id=%s", status, id)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	resourceID, err := s.resourceIDOf(id)
	if err != nil {
		s.logger.Warn("SetStatus: booking id=%s not found", id)
		return nil, err
	}

	lock := s.resourceLock(resourceID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	booking, ok := s.bookings[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrBookingNotFound
	}

	now := s.timeProvider.Now().UTC()
	booking.Status = status
	booking.UpdatedAt = &now
	result := clone(booking)
	s.mu.Unlock()

	s.logger.Info("SetStatus: booking id=%s updated to status=%s", id, status)
	s.notifyMirror(result)
	return result, nil
}

// Load inserts previously committed bookings into the collection, bypassing
// validation: each one already passed the conflict and capacity checks when it
// was first committed. Used to restore state from the mirror on startup, before
// the server accepts requests. Bookings whose id is already present are
// skipped, so replaying the same rows twice is harmless. Returns the number of
// bookings inserted.
func (s *Service) Load(bookings []*domain.Booking) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	loaded := 0
	for _, b := range bookings {
		if _, exists := s.bookings[b.ID]; exists {
			continue
		}
		s.bookings[b.ID] = clone(b)
		loaded++
	}
	return loaded
}

// Get returns the booking with the given id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return clone(booking), nil
}

// List returns bookings matching the filter, ascending by start time.
func (s *Service) List(ctx context.Context, filter *domain.BookingsFilter) ([]*domain.Booking, error) {
	s.mu.RLock()
	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if matches(b, filter) {
			result = append(result, clone(b))
		}
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

// ListForResource returns the non-cancelled bookings of a resource whose start
// time falls inside [from, to). Used by the availability calculator.
func (s *Service) ListForResource(ctx context.Context, resourceID string, from, to time.Time) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.ResourceID != resourceID || !b.IsActive() {
			continue
		}
		if b.StartTime.Before(from) || !b.StartTime.Before(to) {
			continue
		}
		result = append(result, clone(b))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

// ActiveAt returns the non-cancelled booking of a resource whose interval
// contains the instant t, if any.
func (s *Service) ActiveAt(ctx context.Context, resourceID string, t time.Time) (*domain.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if b.ResourceID == resourceID && b.IsActive() && b.Contains(t) {
			return clone(b), true
		}
	}
	return nil, false
}

// Stats summarizes booking activity. Day and week windows are resolved in the
// given location; the week starts on Sunday.
func (s *Service) Stats(ctx context.Context, loc *time.Location) (*Stats, error) {
	if loc == nil {
		loc = time.UTC
	}
	now := s.timeProvider.Now().In(loc)

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)
	weekStart := dayStart.AddDate(0, 0, -int(now.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 7)

	stats := &Stats{ActiveResources: len(s.catalog.Resources())}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if b.Status == domain.StatusPending {
			stats.PendingApprovals++
		}
		if !b.IsActive() {
			continue
		}
		stats.TotalBookings++
		if !b.StartTime.Before(dayStart) && b.StartTime.Before(dayEnd) {
			stats.TodayBookings++
		}
		if !b.StartTime.Before(weekStart) && b.StartTime.Before(weekEnd) {
			stats.WeekBookings++
		}
	}
	return stats, nil
}

// resourceLock returns the mutex serializing mutations for one resource,
// creating it on first use.
func (s *Service) resourceLock(resourceID string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	lock, ok := s.locks[resourceID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[resourceID] = lock
	}
	return lock
}

func (s *Service) resourceIDOf(bookingID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	booking, ok := s.bookings[bookingID]
	if !ok {
		return "", ErrBookingNotFound
	}
	return booking.ResourceID, nil
}

func (s *Service) snapshotForResource(resourceID string) []*domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.ResourceID == resourceID {
			result = append(result, b)
		}
	}
	return result
}

// countUserBookingsOnDay counts the user's non-cancelled bookings on the
// calendar day of the new booking, resolved in the request's timezone.
func (s *Service) countUserBookingsOnDay(existing []*domain.Booking, req *CreateRequest) int {
	loc := time.UTC
	if req.Timezone != "" {
		parsed, err := time.LoadLocation(req.Timezone)
		if err != nil {
			s.logger.Warn("Create: unknown timezone %q, counting daily cap in UTC", req.Timezone)
		} else {
			loc = parsed
		}
	}

	y, m, d := req.StartTime.In(loc).Date()

	count := 0
	for _, b := range existing {
		if !b.IsActive() || b.UserName != req.UserName {
			continue
		}
		by, bm, bd := b.StartTime.In(loc).Date()
		if y == by && m == bm && d == bd {
			count++
		}
	}
	return count
}

// notifyMirror fires a best-effort asynchronous write to the external mirror.
// A failed or slow mirror can only produce a log line; the in-memory commit
// it follows has already succeeded.
func (s *Service) notifyMirror(booking *domain.Booking) {
	if s.mirror == nil {
		return
	}

	copied := clone(booking)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.mirrorTimeout)
		defer cancel()

		if err := s.mirror.Save(ctx, copied); err != nil {
			s.logger.Warn("mirror: failed to save booking id=%s: %v", copied.ID, err)
			s.countMirror("error")
			return
		}
		s.countMirror("ok")
	}()
}

func (s *Service) countDenied(resourceID, reason string) {
	if s.metrics != nil {
		s.metrics.BookingsDenied.WithLabelValues(resourceID, reason).Inc()
	}
}

func (s *Service) countMirror(outcome string) {
	if s.metrics != nil {
		s.metrics.MirrorWrites.WithLabelValues(outcome).Inc()
	}
}

func validateCreateRequest(req *CreateRequest) error {
	if req.UserName == "" {
		return fmt.Errorf("%w: userName is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}
	if !req.StartTime.Before(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

func matches(b *domain.Booking, filter *domain.BookingsFilter) bool {
	if filter == nil {
		return true
	}
	if filter.ResourceID != nil && b.ResourceID != *filter.ResourceID {
		return false
	}
	if filter.StartDate != nil && b.StartTime.Before(*filter.StartDate) {
		return false
	}
	if filter.EndDate != nil && b.StartTime.After(*filter.EndDate) {
		return false
	}
	if filter.Status != nil && b.Status != *filter.Status {
		return false
	}
	if filter.UserName != nil &&
		!strings.Contains(strings.ToLower(b.UserName), strings.ToLower(*filter.UserName)) {
		return false
	}
	return true
}

func clone(b *domain.Booking) *domain.Booking {
	copied := *b
	return &copied
}
