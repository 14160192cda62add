package get_config

import (
	"net/http"

	"github.com/bookathing/bookathing/internal/api/handlers"
	listResources "github.com/bookathing/bookathing/internal/api/handlers/list_resources"
)

type Handler struct {
	appName string
	version string
	catalog ResourceCatalog
	logger  Logger
}

func NewHandler(appName, version string, catalog ResourceCatalog, logger Logger) *Handler {
	return &Handler{
		appName: appName,
		version: version,
		catalog: catalog,
		logger:  logger,
	}
}

type appJSON struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type businessJSON struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

type defaultsJSON struct {
	SlotDuration int                                      `json:"slotDuration"`
	WorkingHours map[string]listResources.DayScheduleJSON `json:"workingHours,omitempty"`
}

type configResponse struct {
	App      appJSON      `json:"app"`
	Business businessJSON `json:"business"`
	Defaults defaultsJSON `json:"defaults"`
}

// Handle GET /api/config
// Serves the display metadata the booking UI needs before it talks to any
// other endpoint: business contact block and the global slot defaults.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	business := h.catalog.Business()

	defaults := defaultsJSON{SlotDuration: h.catalog.DefaultSlotDuration()}
	hours := h.catalog.DefaultWorkingHours()
	if len(hours) > 0 {
		defaults.WorkingHours = map[string]listResources.DayScheduleJSON{}
		for day, sched := range hours {
			defaults.WorkingHours[day] = listResources.DayScheduleJSON{
				Enabled: sched.Enabled,
				Start:   sched.Start.String(),
				End:     sched.End.String(),
			}
		}
	}

	handlers.RespondJSON(w, http.StatusOK, &configResponse{
		App:      appJSON{Name: h.appName, Version: h.version},
		Business: businessJSON{
			Name:     business.Name,
			Email:    business.Email,
			Phone:    business.Phone,
			Timezone: business.Timezone,
		},
		Defaults: defaults,
	})
}
