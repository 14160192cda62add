package get_booking

import (
	"context"

	"github.com/bookathing/bookathing/internal/domain"
)

type BookingService interface {
	Get(ctx context.Context, id string) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
