package availability

import (
	"time"

	"roomly/internal/domain/room"
)

// Slot is one fixed-width bookable window.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ListFreeSlots enumerates step-aligned free slots inside [rangeStart,
// rangeEnd). The cursor starts at rangeStart rounded up to the step grid and
// advances one step at a time while the slot start is before rangeEnd. A
// slot is collected when lead-time and overlap checks pass and the window is
// within opening hours. Slots stay fixed-width; contiguous free slots are
// never merged.
func ListFreeSlots(cal room.Calendar, rangeStart, rangeEnd time.Time, stepMins int, now time.Time) []Slot {
	if stepMins <= 0 {
		return nil
	}
	loc := cal.Location()
	step := time.Duration(stepMins) * time.Minute

	var slots []Slot
	for cursor := room.RoundUp(rangeStart, stepMins, loc); cursor.Before(rangeEnd); cursor = cursor.Add(step) {
		slotEnd := cursor.Add(step)
		if !IsAvailable(cal, cursor, slotEnd, now).Available {
			continue
		}
		if room.DetectOOH(cal, probeEvent(cal, cursor, slotEnd)) {
			continue
		}
		slots = append(slots, Slot{Start: cursor, End: slotEnd})
	}
	return slots
}
