package create_booking

import (
	"errors"
	"net/http"

	"github.com/bookathing/bookathing/internal/api/handlers"
	"github.com/bookathing/bookathing/internal/domain"
	"github.com/bookathing/bookathing/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidTimes       = "invalid startTime or endTime, expected RFC 3339"
	msgMissingFields      = "missing required fields: resourceId, startTime, endTime, userName"
	msgResourceNotFound   = "resource not found"
	msgSlotConflict       = "time slot already booked"
	msgPendingApproval    = "booking request submitted for approval"
	msgConfirmed          = "booking confirmed"
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

// Handle POST /api/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.ResourceID == "" || req.StartTime == "" || req.EndTime == "" || req.UserName == "" {
		h.logger.Warn("POST /bookings - missing required fields")
		handlers.RespondBadRequest(w, msgMissingFields)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - failed to parse times: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimes)
		return
	}

	booking, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrResourceNotFound):
			h.logger.Warn("POST /bookings - resource not found: resource_id=%s", req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings - invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, bookings.ErrSlotConflict):
			h.logger.Warn("POST /bookings - conflict: resource_id=%s, user=%s", req.ResourceID, req.UserName)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, bookings.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - capacity exceeded: resource_id=%s, user=%s", req.ResourceID, req.UserName)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - failed to create booking: resource_id=%s, error=%v", req.ResourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	message := msgConfirmed
	if booking.Status == domain.StatusPending {
		message = msgPendingApproval
	}

	h.logger.Info("POST /bookings - booking created: booking_id=%s, resource_id=%s", booking.ID, booking.ResourceID)
	handlers.RespondJSON(w, http.StatusCreated, &CreateBookingResponse{
		Success: true,
		Booking: handlers.BookingToJSON(booking),
		Message: message,
	})
}
