package update_resource_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bookathing/bookathing/internal/api/handlers"
	"github.com/bookathing/bookathing/internal/domain"
	"github.com/bookathing/bookathing/internal/service/status"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidStatus      = "invalid status"
	msgResourceNotFound   = "resource not found"
)

type Handler struct {
	service StatusService
	logger  Logger
}

func NewHandler(service StatusService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type updateStatusResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

// Handle PUT /api/resources/{resourceId}/status
// Intended for external integrations (sensors, admin tooling) to set the
// manual occupancy override.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID := mux.Vars(r)["resourceId"]

	var req updateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /resources/{id}/status - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err := h.service.SetStatus(r.Context(), resourceID, domain.ResourceStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, status.ErrInvalidStatus):
			h.logger.Warn("PUT /resources/{id}/status - invalid status %q: resource_id=%s", req.Status, resourceID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, status.ErrResourceNotFound):
			h.logger.Warn("PUT /resources/{id}/status - resource not found: resource_id=%s", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		default:
			h.logger.Error("PUT /resources/{id}/status - failed to set status: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /resources/{id}/status - status set: resource_id=%s, status=%s", resourceID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, &updateStatusResponse{
		Success: true,
		Status:  req.Status,
	})
}
