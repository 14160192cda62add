package get_resource

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bookathing/bookathing/internal/api/handlers"
	"github.com/bookathing/bookathing/internal/api/handlers/list_resources"
)

const msgResourceNotFound = "resource not found"

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

// Handle GET /api/resources/{resourceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID := mux.Vars(r)["resourceId"]

	resource, err := h.catalog.Resource(resourceID)
	if err != nil {
		h.logger.Warn("GET /resources/{id} - resource not found: resource_id=%s", resourceID)
		handlers.RespondNotFound(w, msgResourceNotFound)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list_resources.FromDomainResource(resource))
}
