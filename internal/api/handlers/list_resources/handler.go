package list_resources

import (
	"net/http"

	"github.com/bookathing/bookathing/internal/api/handlers"
)

type Handler struct {
	catalog ResourceCatalog
	logger  Logger
}

func NewHandler(catalog ResourceCatalog, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/resources
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resources := h.catalog.Resources()

	response := make([]*ResourceJSON, 0, len(resources))
	for _, res := range resources {
		response = append(response, FromDomainResource(res))
	}
	handlers.RespondJSON(w, http.StatusOK, response)
}
