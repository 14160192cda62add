package catalog

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/bookathing/bookathing/internal/domain"
	"github.com/bookathing/bookathing/pkg/types"
)

var weekdayNames = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// Catalog supplies immutable resource definitions loaded from a TOML file.
// Per-resource working hours and slot durations fall back to the global
// defaults when a resource omits its own. Read-only after Load.
type Catalog struct {
	business            BusinessInfo
	defaultHours        domain.WorkingHours
	defaultSlotDuration int
	resources           []*domain.Resource
	byID                map[string]*domain.Resource
}

// BusinessInfo is display metadata passed through to the boundary layer.
type BusinessInfo struct {
	Name     string `toml:"name"`
	Email    string `toml:"email"`
	Phone    string `toml:"phone"`
	Timezone string `toml:"timezone"`
}

type fileSchedule struct {
	Enabled bool   `toml:"enabled"`
	Start   string `toml:"start"`
	End     string `toml:"end"`
}

type fileResource struct {
	ID                   string                  `toml:"id"`
	Name                 string                  `toml:"name"`
	Type                 string                  `toml:"type"`
	Color                string                  `toml:"color"`
	Icon                 string                  `toml:"icon"`
	WorkingHours         map[string]fileSchedule `toml:"working_hours"`
	SlotDuration         int                     `toml:"slot_duration"`
	RequiresConfirmation bool                    `toml:"requires_confirmation"`
	MaxBookingsPerDay    int                     `toml:"max_bookings_per_day"` // 0 = unlimited
	ShowStatus           bool                    `toml:"show_status"`
}

type catalogFile struct {
	Business     BusinessInfo            `toml:"business"`
	SlotDuration int                     `toml:"slot_duration"`
	WorkingHours map[string]fileSchedule `toml:"working_hours"`
	Resources    []fileResource          `toml:"resources"`
}

// Load reads and validates the resource catalog file.
func Load(path string) (*Catalog, error) {
	var file catalogFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("catalog: failed to decode %s: %w", path, err)
	}
	return build(&file)
}

func build(file *catalogFile) (*Catalog, error) {
	if len(file.Resources) == 0 {
		return nil, ErrNoResources
	}

	c := &Catalog{
		business:            file.Business,
		defaultSlotDuration: file.SlotDuration,
		byID:                map[string]*domain.Resource{},
	}
	if c.defaultSlotDuration == 0 {
		c.defaultSlotDuration = domain.DefaultSlotDurationMinutes
	}
	if err := validateSlotDuration(c.defaultSlotDuration, "defaults"); err != nil {
		return nil, err
	}

	var err error
	c.defaultHours, err = convertHours(file.WorkingHours, "defaults")
	if err != nil {
		return nil, err
	}

	for _, fr := range file.Resources {
		if _, exists := c.byID[fr.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateResourceID, fr.ID)
		}

		hours, err := convertHours(fr.WorkingHours, fr.ID)
		if err != nil {
			return nil, err
		}

		duration := fr.SlotDuration
		if duration == 0 {
			duration = c.defaultSlotDuration
		}
		if err := validateSlotDuration(duration, fr.ID); err != nil {
			return nil, err
		}

		r := &domain.Resource{
			ID:                   fr.ID,
			Name:                 fr.Name,
			Type:                 fr.Type,
			Color:                fr.Color,
			Icon:                 fr.Icon,
			WorkingHours:         hours,
			SlotDurationMinutes:  duration,
			RequiresConfirmation: fr.RequiresConfirmation,
			ShowStatus:           fr.ShowStatus,
		}
		if fr.MaxBookingsPerDay > 0 {
			max := fr.MaxBookingsPerDay
			r.MaxBookingsPerDay = &max
		}

		c.resources = append(c.resources, r)
		c.byID[r.ID] = r
	}

	return c, nil
}

// Resource returns the resource with the given id.
func (c *Catalog) Resource(id string) (*domain.Resource, error) {
	r, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrResourceNotFound, id)
	}
	return r, nil
}

// Resources returns all resources in file order.
func (c *Catalog) Resources() []*domain.Resource {
	return c.resources
}

// Business returns the display metadata block.
func (c *Catalog) Business() BusinessInfo {
	return c.business
}

// DefaultWorkingHours returns the global fallback schedule.
func (c *Catalog) DefaultWorkingHours() domain.WorkingHours {
	return c.defaultHours
}

// DefaultSlotDuration returns the global fallback slot duration in minutes.
func (c *Catalog) DefaultSlotDuration() int {
	return c.defaultSlotDuration
}

// WorkingHoursFor resolves the schedule for a resource on the given weekday,
// falling back to the global default when the resource has no override.
// The second return value is false when neither defines the weekday.
func (c *Catalog) WorkingHoursFor(resourceID, weekday string) (domain.DaySchedule, bool) {
	if r, ok := c.byID[resourceID]; ok {
		if sched, ok := r.WorkingHours[weekday]; ok {
			return sched, true
		}
	}
	sched, ok := c.defaultHours[weekday]
	return sched, ok
}

// SlotDurationFor resolves the slot duration for a resource, falling back to
// the global default for unknown ids.
func (c *Catalog) SlotDurationFor(resourceID string) int {
	if r, ok := c.byID[resourceID]; ok {
		return r.SlotDurationMinutes
	}
	return c.defaultSlotDuration
}

func convertHours(hours map[string]fileSchedule, owner string) (domain.WorkingHours, error) {
	result := domain.WorkingHours{}
	for day, sched := range hours {
		if !validWeekday(day) {
			return nil, fmt.Errorf("%w: %s: unknown weekday %q", ErrInvalidSchedule, owner, day)
		}
		if !sched.Enabled {
			result[day] = domain.DaySchedule{Enabled: false}
			continue
		}

		start, err := types.NewTimeStringFromString(sched.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: %s/%s start: %v", ErrInvalidSchedule, owner, day, err)
		}
		end, err := types.NewTimeStringFromString(sched.End)
		if err != nil {
			return nil, fmt.Errorf("%w: %s/%s end: %v", ErrInvalidSchedule, owner, day, err)
		}
		if !start.IsBefore(end) {
			return nil, fmt.Errorf("%w: %s/%s: start %s is not before end %s",
				ErrInvalidSchedule, owner, day, start, end)
		}

		result[day] = domain.DaySchedule{Enabled: true, Start: start, End: end}
	}
	return result, nil
}

func validateSlotDuration(minutes int, owner string) error {
	if minutes < domain.MinSlotDurationMinutes || minutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: %s: %d minutes", ErrInvalidSlotDuration, owner, minutes)
	}
	return nil
}

func validWeekday(day string) bool {
	for _, name := range weekdayNames {
		if day == name {
			return true
		}
	}
	return false
}
