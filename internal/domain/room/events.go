package room

import "time"

// DomainEvent is a fact recorded by a successful calendar mutation,
// published to the broker after the new snapshot is saved.
type DomainEvent interface {
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}

// EventRecorder accumulates pending domain events on a calendar value.
type EventRecorder struct {
	pending []DomainEvent
}

func (r *EventRecorder) Record(event DomainEvent) {
	if event == nil {
		return
	}
	r.pending = append(r.pending, event)
}

func (r *EventRecorder) PendingEvents() []DomainEvent {
	out := make([]DomainEvent, len(r.pending))
	copy(out, r.pending)
	return out
}

func (r *EventRecorder) ClearEvents() {
	r.pending = nil
}

type EventAdded struct {
	RoomID  string
	EventID string
	Start   time.Time
	End     time.Time
	At      time.Time
}

func (e EventAdded) EventName() string     { return "room.event_added" }
func (e EventAdded) AggregateID() string   { return e.RoomID }
func (e EventAdded) OccurredAt() time.Time { return e.At }

type EventUpdated struct {
	RoomID  string
	EventID string
	Start   time.Time
	End     time.Time
	At      time.Time
}

func (e EventUpdated) EventName() string     { return "room.event_updated" }
func (e EventUpdated) AggregateID() string   { return e.RoomID }
func (e EventUpdated) OccurredAt() time.Time { return e.At }

type EventRemoved struct {
	RoomID  string
	EventID string
	At      time.Time
}

func (e EventRemoved) EventName() string     { return "room.event_removed" }
func (e EventRemoved) AggregateID() string   { return e.RoomID }
func (e EventRemoved) OccurredAt() time.Time { return e.At }

type CalendarImported struct {
	RoomID string
	Events int
	At     time.Time
}

func (e CalendarImported) EventName() string     { return "room.calendar_imported" }
func (e CalendarImported) AggregateID() string   { return e.RoomID }
func (e CalendarImported) OccurredAt() time.Time { return e.At }
