package get_stats

import (
	"context"
	"time"

	"github.com/bookathing/bookathing/internal/service/bookings"
)

type BookingService interface {
	Stats(ctx context.Context, loc *time.Location) (*bookings.Stats, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
