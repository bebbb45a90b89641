package ginserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomly/internal/app/booking"
	"roomly/internal/domain/room"
	"roomly/internal/infra/storage/memory"
)

var handlerNow = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

func testRouter(t *testing.T) (*gin.Engine, *memory.CalendarRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := memory.NewCalendarRepository()
	require.NoError(t, repo.Save(context.Background(), &room.Calendar{
		RoomID:           "room-1",
		Timezone:         "UTC",
		RoundingStepMins: 15,
		Events: []room.Event{{
			ID:       "b1",
			RoomID:   "room-1",
			Type:     room.TypeBooking,
			Status:   room.StatusConfirmed,
			StartsAt: time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC),
			EndsAt:   time.Date(2026, 9, 2, 11, 0, 0, 0, time.UTC),
			Title:    "Existing booking",
		}},
	}))

	now := func() time.Time { return handlerNow }
	service := booking.NewService(repo, nil, nil).WithClock(now)

	router := gin.New()
	api := router.Group("/api/v1")
	ah := AvailabilityHandler{Repo: repo, Now: now}
	rh := RoomHandler{Service: service, Repo: repo, Now: now}
	api.GET("/availability", ah.Search)
	api.GET("/rooms/:id/calendar", rh.Calendar)
	api.PUT("/rooms/:id/calendar", rh.ImportCalendar)
	api.GET("/rooms/:id/calendar.ics", rh.ExportICS)
	api.POST("/rooms/:id/events", rh.CreateEvent)
	api.DELETE("/rooms/:id/events/:eventId", rh.DeleteEvent)
	api.GET("/rooms/:id/slots", rh.FreeSlots)
	return router, repo
}

func doRequest(router *gin.Engine, method, url string, body []byte) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAvailabilitySearchEndpoint(t *testing.T) {
	router, _ := testRouter(t)

	rec := doRequest(router, http.MethodGet,
		"/api/v1/availability?from=2026-09-02T10:00:00Z&to=2026-09-02T11:00:00Z", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		FreeRooms    []string `json:"freeRooms"`
		Suggestions  []any    `json:"suggestions"`
		PricingFlags []struct {
			RoomID        string `json:"roomId"`
			OOH           bool   `json:"ooh"`
			BillableHours int    `json:"billableHours"`
		} `json:"pricingFlags"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.FreeRooms, "the only room is booked at this window")
	assert.NotEmpty(t, body.Suggestions, "adjacent days are free")
	require.Len(t, body.PricingFlags, 1)
	assert.Equal(t, 1, body.PricingFlags[0].BillableHours)
}

func TestAvailabilitySearchRejectsMalformedTimestamp(t *testing.T) {
	router, _ := testRouter(t)
	rec := doRequest(router, http.MethodGet, "/api/v1/availability?from=yesterday&to=2026-09-02T11:00:00Z", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateEventConflict(t *testing.T) {
	router, _ := testRouter(t)

	payload, _ := json.Marshal(room.Event{
		RoomID:   "room-1",
		Type:     room.TypeBooking,
		Status:   room.StatusConfirmed,
		StartsAt: time.Date(2026, 9, 2, 10, 30, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, 9, 2, 11, 30, 0, 0, time.UTC),
	})
	rec := doRequest(router, http.MethodPost, "/api/v1/rooms/room-1/events", payload)
	require.Equal(t, http.StatusConflict, rec.Code)

	var body struct {
		Error string `json:"error"`
		Kind  string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "conflict", body.Kind)
	assert.Contains(t, body.Error, "Existing booking")
}

func TestCreateAndDeleteEvent(t *testing.T) {
	router, repo := testRouter(t)

	payload, _ := json.Marshal(room.Event{
		ID:       "new-1",
		RoomID:   "room-1",
		Type:     room.TypeBooking,
		Status:   room.StatusConfirmed,
		StartsAt: time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, 9, 2, 15, 0, 0, 0, time.UTC),
	})
	rec := doRequest(router, http.MethodPost, "/api/v1/rooms/room-1/events", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	cal, err := repo.Calendar(context.Background(), "room-1")
	require.NoError(t, err)
	assert.Len(t, cal.Events, 2)

	rec = doRequest(router, http.MethodDelete, "/api/v1/rooms/room-1/events/new-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cal, err = repo.Calendar(context.Background(), "room-1")
	require.NoError(t, err)
	assert.Len(t, cal.Events, 1)
}

func TestImportCalendarRoomMismatchEndpoint(t *testing.T) {
	router, _ := testRouter(t)

	payload, _ := json.Marshal(room.Calendar{RoomID: "other-room", Timezone: "UTC"})
	rec := doRequest(router, http.MethodPut, "/api/v1/rooms/room-1/calendar", payload)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestExportICSEndpoint(t *testing.T) {
	router, _ := testRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/v1/rooms/room-1/calendar.ics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, rec.Body.String(), "BEGIN:VCALENDAR")
	assert.Contains(t, rec.Body.String(), "UID:b1@room-1")
}

func TestFreeSlotsEndpoint(t *testing.T) {
	router, _ := testRouter(t)

	rec := doRequest(router, http.MethodGet,
		"/api/v1/rooms/room-1/slots?from=2026-09-02T09:00:00Z&to=2026-09-02T12:00:00Z&step=30", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		RoomID string `json:"roomId"`
		Slots  []struct {
			Start time.Time `json:"start"`
			End   time.Time `json:"end"`
		} `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "room-1", body.RoomID)
	require.Len(t, body.Slots, 4, "six half-hour slots minus the booked hour")
	for _, s := range body.Slots {
		assert.False(t, s.Start.Before(time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)))
		overlapsBooking := s.Start.Before(time.Date(2026, 9, 2, 11, 0, 0, 0, time.UTC)) &&
			time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC).Before(s.End)
		assert.False(t, overlapsBooking)
	}
}

func TestRoomNotFound(t *testing.T) {
	router, _ := testRouter(t)
	rec := doRequest(router, http.MethodGet, "/api/v1/rooms/ghost/calendar", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
