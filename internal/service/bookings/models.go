package bookings

import "time"

// CreateRequest carries the fields needed to commit a new booking.
// StartTime and EndTime are UTC instants resolved by the boundary layer from
// the client's local date, time and timezone. Timezone is kept for the
// per-day capacity check, which counts bookings on the client's calendar day.
type CreateRequest struct {
	ResourceID string
	StartTime  time.Time
	EndTime    time.Time
	UserName   string
	UserEmail  *string
	UserPhone  *string
	Notes      *string
	Timezone   string // IANA zone name, empty = UTC
}

// Stats summarizes booking activity for the dashboard.
type Stats struct {
	TodayBookings    int
	WeekBookings     int
	TotalBookings    int
	PendingApprovals int
	ActiveResources  int
}
