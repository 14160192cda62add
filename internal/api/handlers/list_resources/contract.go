package list_resources

import "github.com/bookathing/bookathing/internal/domain"

type ResourceCatalog interface {
	Resources() []*domain.Resource
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
