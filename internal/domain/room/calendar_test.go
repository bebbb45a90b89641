package room

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarJSONRoundTrip(t *testing.T) {
	until := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	ev := testEvent("e1",
		time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))
	ev.Title = "Weekly sync"
	ev.Notes = "bring slides"
	ev.CreatedBy = "admin"
	ev.CreatedAt = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	ev.Recurrence = &Recurrence{Weekdays: []string{"Tue"}, Until: &until}
	ev.PreBufferMins = intPtr(10)

	cal := Calendar{
		RoomID:                "room-1",
		Timezone:              "Europe/Berlin",
		DefaultPreBufferMins:  15,
		DefaultPostBufferMins: 15,
		RoundingStepMins:      30,
		MinLeadTimeMins:       60,
		MaxLeadTimeDays:       90,
		HalfDayCutoffHour:     intPtr(13),
		OpeningHours: map[string][]HoursRange{
			"Mon": {{Start: "09:00", End: "18:00"}},
			"Tue": {{Start: "09:00", End: "12:00"}, {Start: "13:00", End: "18:00"}},
		},
		Events: []Event{ev},
	}

	raw, err := json.Marshal(cal)
	require.NoError(t, err)

	var decoded Calendar
	require.NoError(t, json.Unmarshal(raw, &decoded))

	again, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(again))

	assert.Equal(t, cal.RoomID, decoded.RoomID)
	assert.Equal(t, cal.RoundingStepMins, decoded.RoundingStepMins)
	require.NotNil(t, decoded.HalfDayCutoffHour)
	assert.Equal(t, 13, *decoded.HalfDayCutoffHour)
	assert.Nil(t, decoded.DayCutoffHour)
	require.Len(t, decoded.Events, 1)
	assert.True(t, decoded.Events[0].StartsAt.Equal(ev.StartsAt))
	require.NotNil(t, decoded.Events[0].Recurrence)
	assert.Equal(t, []string{"Tue"}, decoded.Events[0].Recurrence.Weekdays)
	require.NotNil(t, decoded.Events[0].PreBufferMins)
	assert.Equal(t, 10, *decoded.Events[0].PreBufferMins)
}

func TestCalendarLocationFallsBackToUTC(t *testing.T) {
	cal := Calendar{Timezone: "Not/AZone"}
	assert.Equal(t, time.UTC, cal.Location())

	cal = Calendar{}
	assert.Equal(t, time.UTC, cal.Location())
}

func TestFindEvent(t *testing.T) {
	cal := testCalendar(testEvent("e1",
		time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)))

	ev, ok := cal.FindEvent("e1")
	assert.True(t, ok)
	assert.Equal(t, "e1", ev.ID)

	_, ok = cal.FindEvent("nope")
	assert.False(t, ok)
}
