package get_resource_status

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/bookathing/bookathing/internal/api/handlers"
	"github.com/bookathing/bookathing/internal/service/status"
)

const msgResourceNotFound = "resource not found"

type Handler struct {
	service StatusService
	logger  Logger
}

func NewHandler(service StatusService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

type currentBookingJSON struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
	EndTime  string `json:"endTime"`
}

type statusResponse struct {
	Status         string              `json:"status"`
	CurrentBooking *currentBookingJSON `json:"currentBooking"`
	LastUpdated    string              `json:"lastUpdated"`
}

// Handle GET /api/resources/{resourceId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID := mux.Vars(r)["resourceId"]

	result, err := h.service.Compute(r.Context(), resourceID)
	if err != nil {
		if errors.Is(err, status.ErrResourceNotFound) {
			h.logger.Warn("GET /resources/{id}/status - resource not found: resource_id=%s", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)
			return
		}
		h.logger.Error("GET /resources/{id}/status - failed to compute status: resource_id=%s, error=%v", resourceID, err)
		handlers.RespondInternalError(w)
		return
	}

	response := &statusResponse{
		Status:      string(result.Status),
		LastUpdated: result.LastUpdated.UTC().Format(time.RFC3339),
	}
	if result.CurrentBooking != nil {
		response.CurrentBooking = &currentBookingJSON{
			ID:       result.CurrentBooking.ID,
			UserName: result.CurrentBooking.UserName,
			EndTime:  result.CurrentBooking.EndTime.Format(time.RFC3339),
		}
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
