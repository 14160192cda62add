package get_available_slots

import (
	"time"

	"github.com/bookathing/bookathing/internal/domain"
	getAvailableSlots "github.com/bookathing/bookathing/internal/usecase/get_available_slots"
)

// SlotJSON is the wire shape of one candidate slot.
type SlotJSON struct {
	Start          string `json:"start"`
	End            string `json:"end"`
	StartFormatted string `json:"startFormatted"`
	EndFormatted   string `json:"endFormatted"`
	Available      bool   `json:"available"`
	IsPast         bool   `json:"isPast"`
	IsBooked       bool   `json:"isBooked"`
}

// SlotsResponse is the HTTP response model.
type SlotsResponse struct {
	Resource     string     `json:"resource"`
	Date         string     `json:"date"`
	Timezone     string     `json:"timezone"`
	SlotDuration int        `json:"slotDuration"`
	Slots        []SlotJSON `json:"slots"`
}

// FromUseCaseResponse converts the use case output to the wire shape.
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotJSON, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotJSON{
			Start:          s.Start.Format(time.RFC3339),
			End:            s.End.Format(time.RFC3339),
			StartFormatted: s.StartFormatted,
			EndFormatted:   s.EndFormatted,
			Available:      s.Available,
			IsPast:         s.IsPast,
			IsBooked:       s.IsBooked,
		})
	}

	return &SlotsResponse{
		Resource:     resp.ResourceName,
		Date:         resp.Date.Format(domain.DateFormat),
		Timezone:     resp.Timezone,
		SlotDuration: resp.SlotDurationMinutes,
		Slots:        slots,
	}
}
