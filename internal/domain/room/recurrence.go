package room

import (
	"time"

	"github.com/teambition/rrule-go"
)

var rruleWeekdays = map[string]rrule.Weekday{
	"Mon": rrule.MO,
	"Tue": rrule.TU,
	"Wed": rrule.WE,
	"Thu": rrule.TH,
	"Fri": rrule.FR,
	"Sat": rrule.SA,
	"Sun": rrule.SU,
}

// Occurrence is one concrete rendering instance of an event within a query
// window.
type Occurrence struct {
	EventID string    `json:"eventId"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// Occurrences expands the calendar's non-cancelled events into concrete
// instances intersecting [from, to). Recurrence is evaluated lazily here, at
// query time; stored events are never rewritten. A plain event contributes
// itself when its interval intersects the window; an event with a weekly
// descriptor contributes one same-duration instance per matching weekday up
// to its until date.
func Occurrences(cal Calendar, from, to time.Time) []Occurrence {
	var out []Occurrence
	for _, ev := range cal.Events {
		if ev.Status == StatusCancelled {
			continue
		}
		if ev.Recurrence == nil {
			if intervalsOverlap(ev.StartsAt, ev.EndsAt, from, to) {
				out = append(out, Occurrence{EventID: ev.ID, Start: ev.StartsAt, End: ev.EndsAt})
			}
			continue
		}
		out = append(out, expandWeekly(cal, ev, from, to)...)
	}
	return out
}

func expandWeekly(cal Calendar, ev Event, from, to time.Time) []Occurrence {
	weekdays := make([]rrule.Weekday, 0, len(ev.Recurrence.Weekdays))
	for _, token := range ev.Recurrence.Weekdays {
		if wd, ok := rruleWeekdays[token]; ok {
			weekdays = append(weekdays, wd)
		}
	}
	if len(weekdays) == 0 {
		return nil
	}

	opt := rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   ev.StartsAt.In(cal.Location()),
		Byweekday: weekdays,
	}
	if ev.Recurrence.Until != nil {
		opt.Until = *ev.Recurrence.Until
	}
	r, err := rrule.NewRRule(opt)
	if err != nil {
		return nil
	}

	duration := ev.EndsAt.Sub(ev.StartsAt)
	// Widen the query lower bound so an instance that started before the
	// window but still overlaps it is included.
	starts := r.Between(from.Add(-duration), to, true)
	out := make([]Occurrence, 0, len(starts))
	for _, start := range starts {
		end := start.Add(duration)
		if !intervalsOverlap(start, end, from, to) {
			continue
		}
		out = append(out, Occurrence{EventID: ev.ID, Start: start, End: end})
	}
	return out
}
