package list_resources

import "github.com/bookathing/bookathing/internal/domain"

// DayScheduleJSON is the wire shape of one weekday schedule.
type DayScheduleJSON struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
}

// ResourceJSON is the wire shape of a resource definition.
type ResourceJSON struct {
	ID                   string                     `json:"id"`
	Name                 string                     `json:"name"`
	Type                 string                     `json:"type,omitempty"`
	Color                string                     `json:"color,omitempty"`
	Icon                 string                     `json:"icon,omitempty"`
	WorkingHours         map[string]DayScheduleJSON `json:"workingHours,omitempty"`
	SlotDuration         int                        `json:"slotDuration"`
	RequiresConfirmation bool                       `json:"requiresConfirmation"`
	MaxBookingsPerDay    *int                       `json:"maxBookingsPerDay,omitempty"`
	ShowStatus           bool                       `json:"showStatus"`
}

// FromDomainResource converts a resource to its wire shape.
func FromDomainResource(r *domain.Resource) *ResourceJSON {
	out := &ResourceJSON{
		ID:                   r.ID,
		Name:                 r.Name,
		Type:                 r.Type,
		Color:                r.Color,
		Icon:                 r.Icon,
		SlotDuration:         r.SlotDurationMinutes,
		RequiresConfirmation: r.RequiresConfirmation,
		MaxBookingsPerDay:    r.MaxBookingsPerDay,
		ShowStatus:           r.ShowStatus,
	}
	if len(r.WorkingHours) > 0 {
		out.WorkingHours = map[string]DayScheduleJSON{}
		for day, sched := range r.WorkingHours {
			out.WorkingHours[day] = DayScheduleJSON{
				Enabled: sched.Enabled,
				Start:   sched.Start.String(),
				End:     sched.End.String(),
			}
		}
	}
	return out
}
