package availability

import (
	"math"
	"time"

	"github.com/google/uuid"

	"roomly/internal/domain/room"
)

const defaultSuggestDays = 2

// Result is the outcome of one availability probe.
type Result struct {
	Available bool        `json:"available"`
	Reason    string      `json:"reason,omitempty"`
	Conflict  *room.Event `json:"conflict,omitempty"`
}

// SearchQuery describes a multi-room availability search. An empty RoomIDs
// set means all rooms; SuggestDays of zero falls back to 2.
type SearchQuery struct {
	From        time.Time
	To          time.Time
	RoomIDs     []string
	SuggestDays int
}

// RoomSuggestions carries the alternative windows found for one unavailable
// room, each with the same duration as the requested window.
type RoomSuggestions struct {
	RoomID      string `json:"roomId"`
	Alternative []Slot `json:"alternative"`
}

// PricingFlag is the pricing signal emitted for every searched room,
// regardless of availability.
type PricingFlag struct {
	RoomID        string `json:"roomId"`
	OOH           bool   `json:"ooh"`
	BillableHours int    `json:"billableHours"`
}

// SearchResult is the availability search response. Suggestions is nil, and
// therefore absent from JSON, when no room produced any alternative.
type SearchResult struct {
	From         time.Time         `json:"from"`
	To           time.Time         `json:"to"`
	FreeRooms    []string          `json:"freeRooms"`
	Suggestions  []RoomSuggestions `json:"suggestions,omitempty"`
	PricingFlags []PricingFlag     `json:"pricingFlags"`
}

func probeEvent(cal room.Calendar, start, end time.Time) room.Event {
	return room.Event{
		ID:       "probe-" + uuid.NewString(),
		RoomID:   cal.RoomID,
		Type:     room.TypeHold,
		Status:   room.StatusProvisional,
		StartsAt: start,
		EndsAt:   end,
	}
}

// IsAvailable probes the calendar with a transient provisional event:
// lead-time first, then overlap. An available result implies both checks
// passed independently.
func IsAvailable(cal room.Calendar, start, end, now time.Time) Result {
	if err := room.WithinLeadTimes(cal, start, now); err != nil {
		return Result{Reason: err.Error()}
	}
	if err := room.CheckOverlap(cal, probeEvent(cal, start, end)); err != nil {
		res := Result{Reason: err.Error()}
		if v, ok := room.AsViolation(err); ok {
			res.Conflict = v.Conflict
		}
		return res
	}
	return Result{Available: true}
}

// Search tests the requested window against every room in scope. Available
// rooms land in FreeRooms; for each unavailable room the identical-duration
// window is probed shifted -d and +d days for d in 1..SuggestDays and every
// available shift is collected. Each room also receives its pricing signal:
// the out-of-hours flag for the exact requested window and the billable hour
// count rounded up.
func Search(calendars []room.Calendar, q SearchQuery, now time.Time) SearchResult {
	suggestDays := q.SuggestDays
	if suggestDays <= 0 {
		suggestDays = defaultSuggestDays
	}

	wanted := make(map[string]bool, len(q.RoomIDs))
	for _, id := range q.RoomIDs {
		wanted[id] = true
	}

	billable := int(math.Ceil(q.To.Sub(q.From).Hours()))
	out := SearchResult{
		From:         q.From,
		To:           q.To,
		FreeRooms:    make([]string, 0),
		PricingFlags: make([]PricingFlag, 0),
	}

	for _, cal := range calendars {
		if len(wanted) > 0 && !wanted[cal.RoomID] {
			continue
		}

		if IsAvailable(cal, q.From, q.To, now).Available {
			out.FreeRooms = append(out.FreeRooms, cal.RoomID)
		} else if alts := alternatives(cal, q.From, q.To, suggestDays, now); len(alts) > 0 {
			out.Suggestions = append(out.Suggestions, RoomSuggestions{RoomID: cal.RoomID, Alternative: alts})
		}

		out.PricingFlags = append(out.PricingFlags, PricingFlag{
			RoomID:        cal.RoomID,
			OOH:           room.DetectOOH(cal, probeEvent(cal, q.From, q.To)),
			BillableHours: billable,
		})
	}
	return out
}

func alternatives(cal room.Calendar, from, to time.Time, suggestDays int, now time.Time) []Slot {
	var alts []Slot
	for d := 1; d <= suggestDays; d++ {
		for _, shift := range []int{-d, d} {
			s := from.AddDate(0, 0, shift)
			e := to.AddDate(0, 0, shift)
			if IsAvailable(cal, s, e, now).Available {
				alts = append(alts, Slot{Start: s, End: e})
			}
		}
	}
	return alts
}
