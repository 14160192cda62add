package bookings

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookathing/bookathing/internal/domain"
	"github.com/bookathing/bookathing/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type fakeCatalog struct {
	resources map[string]*domain.Resource
}

func (c *fakeCatalog) Resource(id string) (*domain.Resource, error) {
	r, ok := c.resources[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return r, nil
}

func (c *fakeCatalog) Resources() []*domain.Resource {
	result := make([]*domain.Resource, 0, len(c.resources))
	for _, r := range c.resources {
		result = append(result, r)
	}
	return result
}

type recordingMirror struct {
	mu    sync.Mutex
	saved []*domain.Booking
	err   error
	done  chan struct{}
}

func (m *recordingMirror) Save(_ context.Context, b *domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, b)
	if m.done != nil {
		close(m.done)
		m.done = nil
	}
	return m.err
}

var testDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // a Monday

func newTestService(resources ...*domain.Resource) *Service {
	cat := &fakeCatalog{resources: map[string]*domain.Resource{}}
	if len(resources) == 0 {
		resources = []*domain.Resource{{ID: "w1", Name: "Workshop Bay 1", SlotDurationMinutes: 30}}
	}
	for _, r := range resources {
		cat.resources[r.ID] = r
	}
	return NewService(cat, nil, nil, nopLogger{}).
		WithTimeProvider(&fixedTime{now: testDay.Add(8 * time.Hour)})
}

func createReq(user string, startHour, startMin, endHour, endMin int) *CreateRequest {
	return &CreateRequest{
		ResourceID: "w1",
		StartTime:  testDay.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
		EndTime:    testDay.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
		UserName:   user,
	}
}

func TestCreate_Confirmed(t *testing.T) {
	svc := newTestService()

	b, err := svc.Create(context.Background(), createReq("Alice", 10, 0, 10, 30))
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Equal(t, "w1", b.ResourceID)
	assert.Equal(t, testDay.Add(8*time.Hour), b.CreatedAt)
}

func TestCreate_PendingWhenConfirmationRequired(t *testing.T) {
	svc := newTestService(&domain.Resource{ID: "w1", RequiresConfirmation: true, SlotDurationMinutes: 30})

	b, err := svc.Create(context.Background(), createReq("Alice", 10, 0, 10, 30))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, b.Status)
}

func TestCreate_UnknownResource(t *testing.T) {
	svc := newTestService()

	req := createReq("Alice", 10, 0, 10, 30)
	req.ResourceID = "ghost"
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestCreate_InvalidInput(t *testing.T) {
	svc := newTestService()

	// start >= end
	_, err := svc.Create(context.Background(), createReq("Alice", 10, 30, 10, 0))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), createReq("Alice", 10, 0, 10, 0))
	assert.ErrorIs(t, err, ErrInvalidInput)

	// missing user name
	_, err = svc.Create(context.Background(), createReq("", 10, 0, 10, 30))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_TouchingIntervalsBothSucceed(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), createReq("Alice", 10, 0, 10, 30))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), createReq("Bob", 10, 30, 11, 0))
	require.NoError(t, err)
}

func TestCreate_OverlapRejectedEitherOrder(t *testing.T) {
	svc := newTestService()
	_, err := svc.Create(context.Background(), createReq("Alice", 10, 0, 10, 30))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), createReq("Bob", 10, 15, 10, 45))
	assert.ErrorIs(t, err, ErrSlotConflict)

	svc = newTestService()
	_, err = svc.Create(context.Background(), createReq("Bob", 10, 15, 10, 45))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), createReq("Alice", 10, 0, 10, 30))
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestCreate_CancelledBookingDoesNotConflict(t *testing.T) {
	svc := newTestService()

	b, err := svc.Create(context.Background(), createReq("Alice", 10, 0, 10, 30))
	require.NoError(t, err)
	_, err = svc.Cancel(context.Background(), b.ID)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), createReq("Bob", 10, 0, 10, 30))
	assert.NoError(t, err)
}

func TestCreate_CapacityPerUserPerDay(t *testing.T) {
	svc := newTestService(&domain.Resource{
		ID:                  "w1",
		SlotDurationMinutes: 30,
		MaxBookingsPerDay:   ptr.Ptr(1),
	})

	_, err := svc.Create(context.Background(), createReq("Alice", 10, 0, 10, 30))
	require.NoError(t, err)

	// Second non-overlapping booking, same user, same day
	_, err = svc.Create(context.Background(), createReq("Alice", 14, 0, 14, 30))
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	// A different user still fits
	_, err = svc.Create(context.Background(), createReq("Bob", 15, 0, 15, 30))
	assert.NoError(t, err)

	// The same user on another day still fits
	nextDay := createReq("Alice", 10, 0, 10, 30)
	nextDay.StartTime = nextDay.StartTime.AddDate(0, 0, 1)
	nextDay.EndTime = nextDay.EndTime.AddDate(0, 0, 1)
	_, err = svc.Create(context.Background(), nextDay)
	assert.NoError(t, err)
}

func TestCreate_ValidationOrderConflictBeforeCapacity(t *testing.T) {
	svc := newTestService(&domain.Resource{
		ID:                  "w1",
		SlotDurationMinutes: 30,
		MaxBookingsPerDay:   ptr.Ptr(1),
	})

	_, err := svc.Create(context.Background(), createReq("Alice", 10, 0, 10, 30))
	require.NoError(t, err)

	// Overlapping and over capacity: the conflict must win.
	_, err = svc.Create(context.Background(), createReq("Alice", 10, 0, 10, 30))
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestCancel_StampsCancelledAtOnce(t *testing.T) {
	svc := newTestService()

	b, err := svc.Create(context.Background(), createReq("Alice", 10, 0, 10, 30))
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)
	firstStamp := *cancelled.CancelledAt

	// Second cancel is a no-op returning the unchanged booking.
	again, err := svc.Cancel(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, again.Status)
	require.NotNil(t, again.CancelledAt)
	assert.Equal(t, firstStamp, *again.CancelledAt)
}

func TestCancel_NotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.Cancel(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestSetStatus_InvalidValue(t *testing.T) {
	svc := newTestService()

	b, err := svc.Create(context.Background(), createReq("Alice", 10, 0, 10, 30))
	require.NoError(t, err)

	_, err = svc.SetStatus(context.Background(), b.ID, "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSetStatus_NotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.SetStatus(context.Background(), "ghost", domain.StatusConfirmed)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

// The status model is deliberately permissive: any state may follow any other.
// This test documents that behavior so that introducing a transition graph is
// a conscious change, not an accident.
func TestSetStatus_AllowsAnyTransition(t *testing.T) {
	svc := newTestService()

	b, err := svc.Create(context.Background(), createReq("Alice", 10, 0, 10, 30))
	require.NoError(t, err)

	updated, err := svc.SetStatus(context.Background(), b.ID, domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)
	assert.NotNil(t, updated.UpdatedAt)

	// completed back to pending is allowed
	updated, err = svc.SetStatus(context.Background(), b.ID, domain.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, updated.Status)

	// cancelled via SetStatus, then back
	updated, err = svc.SetStatus(context.Background(), b.ID, domain.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, updated.Status)

	updated, err = svc.SetStatus(context.Background(), b.ID, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)
}

func TestGet(t *testing.T) {
	svc := newTestService()

	b, err := svc.Create(context.Background(), createReq("Alice", 10, 0, 10, 30))
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = svc.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestList_FiltersAndOrdering(t *testing.T) {
	svc := newTestService(
		&domain.Resource{ID: "w1", SlotDurationMinutes: 30},
		&domain.Resource{ID: "w2", SlotDurationMinutes: 30},
	)

	later, err := svc.Create(context.Background(), createReq("Alice Smith", 14, 0, 14, 30))
	require.NoError(t, err)
	earlier, err := svc.Create(context.Background(), createReq("Bob Jones", 10, 0, 10, 30))
	require.NoError(t, err)

	otherResource := createReq("Alice Smith", 10, 0, 10, 30)
	otherResource.ResourceID = "w2"
	_, err = svc.Create(context.Background(), otherResource)
	require.NoError(t, err)

	// No filter: everything, ascending by start time
	all, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, !all[0].StartTime.After(all[1].StartTime))
	assert.True(t, !all[1].StartTime.After(all[2].StartTime))

	// Resource filter
	w1Only, err := svc.List(context.Background(), &domain.BookingsFilter{ResourceID: ptr.Ptr("w1")})
	require.NoError(t, err)
	require.Len(t, w1Only, 2)
	assert.Equal(t, earlier.ID, w1Only[0].ID)
	assert.Equal(t, later.ID, w1Only[1].ID)

	// Case-insensitive substring on user name
	alice, err := svc.List(context.Background(), &domain.BookingsFilter{UserName: ptr.Ptr("alice")})
	require.NoError(t, err)
	assert.Len(t, alice, 2)

	// Conjunction of filters
	combined, err := svc.List(context.Background(), &domain.BookingsFilter{
		ResourceID: ptr.Ptr("w1"),
		UserName:   ptr.Ptr("ALICE"),
	})
	require.NoError(t, err)
	require.Len(t, combined, 1)
	assert.Equal(t, later.ID, combined[0].ID)

	// Date window on start times
	windowed, err := svc.List(context.Background(), &domain.BookingsFilter{
		StartDate: ptr.Ptr(testDay.Add(12 * time.Hour)),
	})
	require.NoError(t, err)
	require.Len(t, windowed, 1)
	assert.Equal(t, later.ID, windowed[0].ID)

	// Status filter after a cancel
	_, err = svc.Cancel(context.Background(), earlier.ID)
	require.NoError(t, err)
	cancelled, err := svc.List(context.Background(), &domain.BookingsFilter{
		Status: ptr.Ptr(domain.StatusCancelled),
	})
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, earlier.ID, cancelled[0].ID)
}

func TestActiveAt(t *testing.T) {
	svc := newTestService()

	b, err := svc.Create(context.Background(), createReq("Alice", 10, 0, 11, 0))
	require.NoError(t, err)

	active, ok := svc.ActiveAt(context.Background(), "w1", testDay.Add(10*time.Hour+30*time.Minute))
	require.True(t, ok)
	assert.Equal(t, b.ID, active.ID)

	// End boundary is exclusive
	_, ok = svc.ActiveAt(context.Background(), "w1", testDay.Add(11*time.Hour))
	assert.False(t, ok)

	_, err = svc.Cancel(context.Background(), b.ID)
	require.NoError(t, err)
	_, ok = svc.ActiveAt(context.Background(), "w1", testDay.Add(10*time.Hour+30*time.Minute))
	assert.False(t, ok)
}

func TestStats(t *testing.T) {
	svc := newTestService(&domain.Resource{ID: "w1", RequiresConfirmation: true, SlotDurationMinutes: 30})

	_, err := svc.Create(context.Background(), createReq("Alice", 10, 0, 10, 30))
	require.NoError(t, err)

	nextWeek := createReq("Bob", 10, 0, 10, 30)
	nextWeek.StartTime = nextWeek.StartTime.AddDate(0, 0, 14)
	nextWeek.EndTime = nextWeek.EndTime.AddDate(0, 0, 14)
	_, err = svc.Create(context.Background(), nextWeek)
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background(), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TodayBookings)
	assert.Equal(t, 1, stats.WeekBookings)
	assert.Equal(t, 2, stats.TotalBookings)
	assert.Equal(t, 2, stats.PendingApprovals)
	assert.Equal(t, 1, stats.ActiveResources)
}

func TestLoad_RestoredBookingsOccupySlots(t *testing.T) {
	svc := newTestService()

	restored := []*domain.Booking{
		{
			ID:         "restored-1",
			ResourceID: "w1",
			StartTime:  testDay.Add(10 * time.Hour),
			EndTime:    testDay.Add(10*time.Hour + 30*time.Minute),
			UserName:   "Alice",
			Status:     domain.StatusConfirmed,
			CreatedAt:  testDay,
		},
		{
			ID:         "restored-2",
			ResourceID: "w1",
			StartTime:  testDay.Add(11 * time.Hour),
			EndTime:    testDay.Add(11*time.Hour + 30*time.Minute),
			UserName:   "Bob",
			Status:     domain.StatusCancelled,
			CreatedAt:  testDay,
		},
	}
	assert.Equal(t, 2, svc.Load(restored))

	// Replaying the same rows is a no-op
	assert.Equal(t, 0, svc.Load(restored))

	got, err := svc.Get(context.Background(), "restored-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.UserName)

	// The restored active booking occupies its slot again
	_, err = svc.Create(context.Background(), createReq("Carol", 10, 0, 10, 30))
	assert.ErrorIs(t, err, ErrSlotConflict)

	// The restored cancelled booking does not
	_, err = svc.Create(context.Background(), createReq("Carol", 11, 0, 11, 30))
	assert.NoError(t, err)
}

// Two concurrent creates racing for the same slot must serialize on the
// resource lock so exactly one commits.
func TestCreate_ConcurrentSameSlot(t *testing.T) {
	svc := newTestService()

	const attempts = 32
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(context.Background(), createReq("Racer", 10, 0, 10, 30))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrSlotConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
}

func TestMirror_ReceivesCommit(t *testing.T) {
	mirror := &recordingMirror{done: make(chan struct{})}
	done := mirror.done

	cat := &fakeCatalog{resources: map[string]*domain.Resource{
		"w1": {ID: "w1", SlotDurationMinutes: 30},
	}}
	svc := NewService(cat, mirror, nil, nopLogger{}).
		WithTimeProvider(&fixedTime{now: testDay.Add(8 * time.Hour)})

	b, err := svc.Create(context.Background(), createReq("Alice", 10, 0, 10, 30))
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("mirror was never notified")
	}

	mirror.mu.Lock()
	defer mirror.mu.Unlock()
	require.Len(t, mirror.saved, 1)
	assert.Equal(t, b.ID, mirror.saved[0].ID)
}

// A failing mirror can only produce a log line; the commit it follows has
// already succeeded and must stay visible.
func TestMirror_FailureDoesNotAffectCommit(t *testing.T) {
	mirror := &recordingMirror{err: errors.New("mirror down"), done: make(chan struct{})}
	done := mirror.done

	cat := &fakeCatalog{resources: map[string]*domain.Resource{
		"w1": {ID: "w1", SlotDurationMinutes: 30},
	}}
	svc := NewService(cat, mirror, nil, nopLogger{}).
		WithTimeProvider(&fixedTime{now: testDay.Add(8 * time.Hour)})

	b, err := svc.Create(context.Background(), createReq("Alice", 10, 0, 10, 30))
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("mirror was never notified")
	}

	got, err := svc.Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
}
