package update_booking_status

import (
	"context"

	"github.com/bookathing/bookathing/internal/domain"
)

type BookingService interface {
	SetStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
