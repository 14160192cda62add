// Package handlers holds the JSON helpers shared by the per-operation
// handler packages.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bookathing/bookathing/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// DecodeJSON decodes the request body into dst, rejecting unknown fields.
func DecodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

// RespondJSON writes a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// RespondError writes a JSON error body with the given status code.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, errorResponse{Error: message})
}

// RespondBadRequest writes a 400 with the given message.
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondNotFound writes a 404 with the given message.
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondInternalError writes a generic 500.
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, "internal server error")
}

// BookingJSON is the wire shape of a booking, shared by the booking handlers.
type BookingJSON struct {
	ID          string  `json:"id"`
	ResourceID  string  `json:"resourceId"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	UserName    string  `json:"userName"`
	UserEmail   *string `json:"userEmail,omitempty"`
	UserPhone   *string `json:"userPhone,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
	CancelledAt *string `json:"cancelledAt,omitempty"`
	UpdatedAt   *string `json:"updatedAt,omitempty"`
}

// BookingToJSON converts a domain booking to its wire shape.
func BookingToJSON(b *domain.Booking) *BookingJSON {
	out := &BookingJSON{
		ID:         b.ID,
		ResourceID: b.ResourceID,
		StartTime:  b.StartTime.Format(time.RFC3339),
		EndTime:    b.EndTime.Format(time.RFC3339),
		UserName:   b.UserName,
		UserEmail:  b.UserEmail,
		UserPhone:  b.UserPhone,
		Notes:      b.Notes,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	}
	if b.CancelledAt != nil {
		s := b.CancelledAt.Format(time.RFC3339)
		out.CancelledAt = &s
	}
	if b.UpdatedAt != nil {
		s := b.UpdatedAt.Format(time.RFC3339)
		out.UpdatedAt = &s
	}
	return out
}
