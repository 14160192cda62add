package get_stats

import (
	"net/http"
	"time"

	"github.com/bookathing/bookathing/internal/api/handlers"
)

const msgInvalidTimezone = "invalid timezone"

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

type statsResponse struct {
	TodayBookings    int `json:"todayBookings"`
	WeekBookings     int `json:"weekBookings"`
	TotalBookings    int `json:"totalBookings"`
	ActiveResources  int `json:"activeResources"`
	PendingApprovals int `json:"pendingApprovals"`
}

// Handle GET /api/stats
// Query params: timezone (optional, default UTC) for the day and week windows.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	loc := time.UTC
	if name := r.URL.Query().Get("timezone"); name != "" {
		parsed, err := time.LoadLocation(name)
		if err != nil {
			h.logger.Warn("GET /stats - invalid timezone %q: %v", name, err)
			handlers.RespondBadRequest(w, msgInvalidTimezone)
			return
		}
		loc = parsed
	}

	stats, err := h.service.Stats(r.Context(), loc)
	if err != nil {
		h.logger.Error("GET /stats - failed to compute stats: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &statsResponse{
		TodayBookings:    stats.TodayBookings,
		WeekBookings:     stats.WeekBookings,
		TotalBookings:    stats.TotalBookings,
		ActiveResources:  stats.ActiveResources,
		PendingApprovals: stats.PendingApprovals,
	})
}
