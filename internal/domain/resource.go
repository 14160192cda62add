package domain

import (
	"strings"
	"time"

	"github.com/bookathing/bookathing/pkg/types"
)

// DaySchedule describes working hours for a single weekday.
type DaySchedule struct {
	Enabled bool
	Start   types.TimeString // local time of day, "HH:MM"
	End     types.TimeString // local time of day, "HH:MM"
}

// WorkingHours maps lowercase weekday names ("monday" .. "sunday") to schedules.
type WorkingHours map[string]DaySchedule

// Resource represents a bookable entity (room, machine, person).
// Resources are owned by the catalog and read-only to the core.
type Resource struct {
	ID                   string
	Name                 string
	Type                 string
	Color                string
	Icon                 string
	WorkingHours         WorkingHours // per-weekday overrides, may be partial
	SlotDurationMinutes  int
	RequiresConfirmation bool
	MaxBookingsPerDay    *int // nil = unlimited
	ShowStatus           bool
}

// WeekdayName returns the lowercase English weekday name used as a
// working-hours key ("monday" .. "sunday").
func WeekdayName(d time.Weekday) string {
	return strings.ToLower(d.String())
}
