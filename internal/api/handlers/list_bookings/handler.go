package list_bookings

import (
	"net/http"
	"time"

	"github.com/bookathing/bookathing/internal/api/handlers"
	"github.com/bookathing/bookathing/internal/domain"
)

const (
	msgInvalidStartDate = "invalid startDate, expected YYYY-MM-DD or RFC 3339"
	msgInvalidEndDate   = "invalid endDate, expected YYYY-MM-DD or RFC 3339"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/bookings
// Query params (all optional, combined by conjunction): resourceId, startDate,
// endDate, status, userName (case-insensitive substring).
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := &domain.BookingsFilter{}

	if v := query.Get("resourceId"); v != "" {
		filter.ResourceID = &v
	}
	if v := query.Get("status"); v != "" {
		status := domain.BookingStatus(v)
		filter.Status = &status
	}
	if v := query.Get("userName"); v != "" {
		filter.UserName = &v
	}

	if v := query.Get("startDate"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			h.logger.Warn("GET /bookings - invalid startDate %q: %v", v, err)
			handlers.RespondBadRequest(w, msgInvalidStartDate)
			return
		}
		filter.StartDate = &t
	}
	if v := query.Get("endDate"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			h.logger.Warn("GET /bookings - invalid endDate %q: %v", v, err)
			handlers.RespondBadRequest(w, msgInvalidEndDate)
			return
		}
		filter.EndDate = &t
	}

	result, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /bookings - failed to list bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := make([]*handlers.BookingJSON, 0, len(result))
	for _, b := range result {
		response = append(response, handlers.BookingToJSON(b))
	}
	handlers.RespondJSON(w, http.StatusOK, response)
}

func parseDateParam(v string) (time.Time, error) {
	if t, err := time.Parse(domain.DateFormat, v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}
