package get_available_slots

import (
	"time"

	"github.com/bookathing/bookathing/internal/domain"
)

// Request identifies a resource and a calendar day to compute slots for.
// Timezone resolves the weekday, the local working-hours boundaries and the
// "now" comparison; empty means UTC.
type Request struct {
	ResourceID string
	Date       time.Time // calendar day; only year, month and day are used
	Timezone   string    // IANA zone name
}

// Response carries the computed slot sequence for one day.
type Response struct {
	ResourceID          string
	ResourceName        string
	Date                time.Time
	Timezone            string
	SlotDurationMinutes int
	Slots               []domain.Slot
}
