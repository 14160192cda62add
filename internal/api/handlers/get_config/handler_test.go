package get_config

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookathing/bookathing/internal/catalog"
	"github.com/bookathing/bookathing/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubCatalog struct {
	business catalog.BusinessInfo
	hours    domain.WorkingHours
	duration int
}

func (c *stubCatalog) Business() catalog.BusinessInfo            { return c.business }
func (c *stubCatalog) DefaultWorkingHours() domain.WorkingHours  { return c.hours }
func (c *stubCatalog) DefaultSlotDuration() int                  { return c.duration }

func TestHandle(t *testing.T) {
	cat := &stubCatalog{
		business: catalog.BusinessInfo{
			Name:     "Makers Workshop",
			Email:    "hello@makers.test",
			Timezone: "America/New_York",
		},
		hours: domain.WorkingHours{
			"monday": domain.DaySchedule{Enabled: true, Start: "09:00", End: "17:00"},
			"sunday": domain.DaySchedule{Enabled: false},
		},
		duration: 30,
	}
	h := NewHandler("bookathing", "2.0.0", cat, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp configResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "bookathing", resp.App.Name)
	assert.Equal(t, "2.0.0", resp.App.Version)
	assert.Equal(t, "Makers Workshop", resp.Business.Name)
	assert.Equal(t, "America/New_York", resp.Business.Timezone)
	assert.Equal(t, 30, resp.Defaults.SlotDuration)

	require.Contains(t, resp.Defaults.WorkingHours, "monday")
	monday := resp.Defaults.WorkingHours["monday"]
	assert.True(t, monday.Enabled)
	assert.Equal(t, "09:00", monday.Start)
	assert.Equal(t, "17:00", monday.End)
	assert.False(t, resp.Defaults.WorkingHours["sunday"].Enabled)
}
