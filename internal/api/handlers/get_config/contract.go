package get_config

import (
	"github.com/bookathing/bookathing/internal/catalog"
	"github.com/bookathing/bookathing/internal/domain"
)

type ResourceCatalog interface {
	Business() catalog.BusinessInfo
	DefaultWorkingHours() domain.WorkingHours
	DefaultSlotDuration() int
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
