package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bookathing/bookathing/internal/api/handlers"
	"github.com/bookathing/bookathing/internal/service/bookings"
)

const (
	msgBookingNotFound = "booking not found"
	msgCancelled       = "booking cancelled"
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

type cancelResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Booking *handlers.BookingJSON `json:"booking"`
}

// Handle DELETE /api/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	booking, err := h.service.Cancel(r.Context(), bookingID)
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			h.logger.Warn("DELETE /bookings/{id} - booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)
			return
		}
		h.logger.Error("DELETE /bookings/{id} - failed to cancel: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /bookings/{id} - booking cancelled: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, &cancelResponse{
		Success: true,
		Message: msgCancelled,
		Booking: handlers.BookingToJSON(booking),
	})
}
