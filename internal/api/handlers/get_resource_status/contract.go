package get_resource_status

import (
	"context"

	"github.com/bookathing/bookathing/internal/service/status"
)

type StatusService interface {
	Compute(ctx context.Context, resourceID string) (*status.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
