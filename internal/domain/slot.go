package domain

import "time"

// Slot represents a candidate bookable interval within a resource's working
// hours for one calendar day. Slots are ephemeral: recomputed on every request,
// never persisted.
type Slot struct {
	Start          time.Time // UTC instant
	End            time.Time // UTC instant
	StartFormatted string    // local display time, "HH:MM"
	EndFormatted   string    // local display time, "HH:MM"
	Available      bool
	IsPast         bool
	IsBooked       bool
}

// Duration returns the slot length.
func (s *Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}
