package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookathing/bookathing/internal/domain"
	"github.com/bookathing/bookathing/internal/service/bookings"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	booking *domain.Booking
	err     error
	gotReq  *bookings.CreateRequest
}

func (s *stubService) Create(_ context.Context, req *bookings.CreateRequest) (*domain.Booking, error) {
	s.gotReq = req
	return s.booking, s.err
}

const validBody = `{
	"resourceId": "w1",
	"startTime": "2026-03-02T10:00:00Z",
	"endTime": "2026-03-02T10:30:00Z",
	"userName": "Alice"
}`

func doRequest(t *testing.T, svc *stubService, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(svc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	svc := &stubService{booking: &domain.Booking{
		ID:         "b1",
		ResourceID: "w1",
		StartTime:  time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC),
		UserName:   "Alice",
		Status:     domain.StatusConfirmed,
	}}

	rec := doRequest(t, svc, validBody)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.gotReq)
	assert.Equal(t, "w1", svc.gotReq.ResourceID)
	assert.Equal(t, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), svc.gotReq.StartTime)

	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "booking confirmed", resp.Message)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, "b1", resp.Booking.ID)
}

func TestHandle_PendingMessage(t *testing.T) {
	svc := &stubService{booking: &domain.Booking{
		ID:     "b1",
		Status: domain.StatusPending,
	}}

	rec := doRequest(t, svc, validBody)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "booking request submitted for approval", resp.Message)
}

func TestHandle_MalformedBody(t *testing.T) {
	rec := doRequest(t, &stubService{}, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_MissingFields(t *testing.T) {
	rec := doRequest(t, &stubService{}, `{"resourceId": "w1", "userName": "Alice"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_BadTimeFormat(t *testing.T) {
	rec := doRequest(t, &stubService{}, `{
		"resourceId": "w1",
		"startTime": "tomorrow at ten",
		"endTime": "2026-03-02T10:30:00Z",
		"userName": "Alice"
	}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ServiceErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"resource not found", bookings.ErrResourceNotFound, http.StatusNotFound},
		{"invalid input", bookings.ErrInvalidInput, http.StatusBadRequest},
		{"slot conflict", bookings.ErrSlotConflict, http.StatusConflict},
		{"capacity exceeded", bookings.ErrCapacityExceeded, http.StatusBadRequest},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, &stubService{err: tc.err}, validBody)
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}
