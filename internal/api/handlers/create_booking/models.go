package create_booking

import (
	"fmt"
	"time"

	"github.com/bookathing/bookathing/internal/api/handlers"
	"github.com/bookathing/bookathing/internal/service/bookings"
)

// CreateBookingRequest is the HTTP request model.
// startTime and endTime are RFC 3339 instants; timezone is the client's IANA
// zone, used to bucket the per-day booking cap.
type CreateBookingRequest struct {
	ResourceID string  `json:"resourceId"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	UserName   string  `json:"userName"`
	UserEmail  *string `json:"userEmail,omitempty"`
	UserPhone  *string `json:"userPhone,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	Timezone   string  `json:"timezone,omitempty"`
}

// CreateBookingResponse is the HTTP response model.
type CreateBookingResponse struct {
	Success bool                  `json:"success"`
	Booking *handlers.BookingJSON `json:"booking"`
	Message string                `json:"message"`
}

// ToServiceRequest parses the time fields and builds the service request.
func (r *CreateBookingRequest) ToServiceRequest() (*bookings.CreateRequest, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid startTime: %w", err)
	}
	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid endTime: %w", err)
	}

	return &bookings.CreateRequest{
		ResourceID: r.ResourceID,
		StartTime:  start,
		EndTime:    end,
		UserName:   r.UserName,
		UserEmail:  r.UserEmail,
		UserPhone:  r.UserPhone,
		Notes:      r.Notes,
		Timezone:   r.Timezone,
	}, nil
}
