package update_resource_status

import (
	"context"

	"github.com/bookathing/bookathing/internal/domain"
)

type StatusService interface {
	SetStatus(ctx context.Context, resourceID string, status domain.ResourceStatus) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
