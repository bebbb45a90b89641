package room

import "time"

// AddEvent validates and appends an event, returning a new calendar value.
// Checks run in order: room id, unique id, step alignment of both
// boundaries, lead time, then overlap. The receiver calendar is never
// modified.
func AddEvent(cal Calendar, ev Event, now time.Time) (Calendar, error) {
	if ev.RoomID != cal.RoomID {
		return cal, roomMismatch(ev.RoomID, cal.RoomID)
	}
	if existing, ok := cal.FindEvent(ev.ID); ok {
		return cal, conflictsWith(existing)
	}
	loc := cal.Location()
	if !IsOnStep(ev.StartsAt, cal.RoundingStepMins, loc) || !IsOnStep(ev.EndsAt, cal.RoundingStepMins, loc) {
		return cal, stepMisaligned(cal.RoundingStepMins)
	}
	if err := WithinLeadTimes(cal, ev.StartsAt, now); err != nil {
		return cal, err
	}
	if err := CheckOverlap(cal, ev); err != nil {
		return cal, err
	}

	next := cal.clone()
	next.Events = append(next.Events, ev)
	next.record(EventAdded{RoomID: cal.RoomID, EventID: ev.ID, Start: ev.StartsAt, End: ev.EndsAt, At: now})
	return next, nil
}

// UpdateEvent replaces an existing event by id, keeping its list position.
// Only the overlap check runs here: updates come from the admin grid moving
// events that already exist, so lead-time and step alignment are not
// re-validated (events created before a step-size change stay movable, and
// historical events do not become frozen).
func UpdateEvent(cal Calendar, ev Event, now time.Time) (Calendar, error) {
	if ev.RoomID != cal.RoomID {
		return cal, roomMismatch(ev.RoomID, cal.RoomID)
	}
	idx := -1
	for i := range cal.Events {
		if cal.Events[i].ID == ev.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return cal, eventNotFound(ev.ID)
	}
	if err := CheckOverlap(cal, ev); err != nil {
		return cal, err
	}

	next := cal.clone()
	next.Events[idx] = ev
	next.record(EventUpdated{RoomID: cal.RoomID, EventID: ev.ID, Start: ev.StartsAt, End: ev.EndsAt, At: now})
	return next, nil
}

// DeleteEvent removes the event with the given id. A missing id is a no-op,
// not a failure; this is the hard removal, distinct from cancelling via
// status.
func DeleteEvent(cal Calendar, id string, now time.Time) Calendar {
	idx := -1
	for i := range cal.Events {
		if cal.Events[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return cal
	}
	next := cal.clone()
	next.Events = append(next.Events[:idx], next.Events[idx+1:]...)
	next.record(EventRemoved{RoomID: cal.RoomID, EventID: id, At: now})
	return next
}
