package room

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrCalendarNotFound is returned by repositories when no calendar exists for a room.
	ErrCalendarNotFound = errors.New("room: calendar not found")
)

type EventType string

const (
	TypeBooking     EventType = "BOOKING"
	TypeHold        EventType = "HOLD"
	TypeBlackout    EventType = "BLACKOUT"
	TypeMaintenance EventType = "MAINTENANCE"
)

type EventStatus string

const (
	StatusProvisional EventStatus = "provisional"
	StatusConfirmed   EventStatus = "confirmed"
	StatusCancelled   EventStatus = "cancelled"
)

// Recurrence is a weekly repetition descriptor. It is carried on the event
// and expanded lazily by Occurrences; no mutation ever materializes it.
type Recurrence struct {
	Weekdays []string   `json:"weekdays" bson:"weekdays"`
	Until    *time.Time `json:"until,omitempty" bson:"until,omitempty"`
}

// Event is one scheduled occupation of a room. Cancelled events stay in the
// list but are invisible to conflict checks and exports.
type Event struct {
	ID             string      `json:"id" bson:"id"`
	RoomID         string      `json:"roomId" bson:"room_id"`
	Type           EventType   `json:"type" bson:"type"`
	Status         EventStatus `json:"status" bson:"status"`
	StartsAt       time.Time   `json:"startsAt" bson:"starts_at"`
	EndsAt         time.Time   `json:"endsAt" bson:"ends_at"`
	Title          string      `json:"title,omitempty" bson:"title,omitempty"`
	Notes          string      `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedBy      string      `json:"createdBy,omitempty" bson:"created_by,omitempty"`
	CreatedAt      time.Time   `json:"createdAt" bson:"created_at"`
	Recurrence     *Recurrence `json:"recurrence,omitempty" bson:"recurrence,omitempty"`
	PreBufferMins  *int        `json:"preBufferMins,omitempty" bson:"pre_buffer_mins,omitempty"`
	PostBufferMins *int        `json:"postBufferMins,omitempty" bson:"post_buffer_mins,omitempty"`
}

// HoursRange is one local open interval of a weekday, "HH:mm" 24-hour.
type HoursRange struct {
	Start string `json:"start" bson:"start"`
	End   string `json:"end" bson:"end"`
}

// Calendar is one room's schedule and policy configuration. All mutations
// are copy-on-write: operations return a fresh value and never touch the
// receiver, so the surrounding system can treat each returned calendar as
// the new authoritative snapshot.
type Calendar struct {
	RoomID                string                  `json:"roomId" bson:"_id"`
	Timezone              string                  `json:"timezone" bson:"timezone"`
	DefaultPreBufferMins  int                     `json:"defaultPreBufferMins" bson:"default_pre_buffer_mins"`
	DefaultPostBufferMins int                     `json:"defaultPostBufferMins" bson:"default_post_buffer_mins"`
	RoundingStepMins      int                     `json:"roundingStepMins" bson:"rounding_step_mins"`
	MinLeadTimeMins       int                     `json:"minLeadTimeMins" bson:"min_lead_time_mins"`
	MaxLeadTimeDays       int                     `json:"maxLeadTimeDays" bson:"max_lead_time_days"`
	HalfDayCutoffHour     *int                    `json:"halfDayCutoffHour,omitempty" bson:"half_day_cutoff_hour,omitempty"`
	DayCutoffHour         *int                    `json:"dayCutoffHour,omitempty" bson:"day_cutoff_hour,omitempty"`
	OpeningHours          map[string][]HoursRange `json:"openingHours,omitempty" bson:"opening_hours,omitempty"`
	Events                []Event                 `json:"events" bson:"events"`
	Version               int64                   `json:"-" bson:"version"`

	recorder EventRecorder
}

// Repository loads and stores calendar snapshots.
type Repository interface {
	Calendar(ctx context.Context, roomID string) (*Calendar, error)
	Save(ctx context.Context, cal *Calendar) error
	List(ctx context.Context) ([]*Calendar, error)
}

// Location resolves the calendar's IANA zone, falling back to UTC when the
// zone name cannot be loaded.
func (c Calendar) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// FindEvent returns the event with the given id, if present.
func (c Calendar) FindEvent(id string) (Event, bool) {
	for _, ev := range c.Events {
		if ev.ID == id {
			return ev, true
		}
	}
	return Event{}, false
}

// clone copies the calendar with its own event list, dropping any pending
// domain events so the copy starts with a clean recorder.
func (c Calendar) clone() Calendar {
	next := c
	next.Events = make([]Event, len(c.Events))
	copy(next.Events, c.Events)
	next.recorder = EventRecorder{}
	return next
}

func (c *Calendar) record(ev DomainEvent) { c.recorder.Record(ev) }

// PendingEvents returns the domain events recorded by the mutation that
// produced this calendar value.
func (c *Calendar) PendingEvents() []DomainEvent { return c.recorder.PendingEvents() }

// ClearEvents drops pending domain events after they have been published.
func (c *Calendar) ClearEvents() { c.recorder.ClearEvents() }
