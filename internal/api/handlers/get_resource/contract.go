package get_resource

import "github.com/bookathing/bookathing/internal/domain"

type ResourceCatalog interface {
	Resource(id string) (*domain.Resource, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
