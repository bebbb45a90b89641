package room

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

var weekdayTokens = map[time.Weekday]string{
	time.Monday:    "Mon",
	time.Tuesday:   "Tue",
	time.Wednesday: "Wed",
	time.Thursday:  "Thu",
	time.Friday:    "Fri",
	time.Saturday:  "Sat",
	time.Sunday:    "Sun",
}

// DetectOOH reports whether any part of the event falls outside the
// calendar's weekly opening hours. A calendar without an OpeningHours map is
// always open, so the answer is false for any event. Otherwise the event's
// interval is walked day by day in the calendar's zone; a weekday with no
// configured ranges is closed. The day's open ranges are unioned before the
// coverage test, so a segment straddling two ranges with a gap between them
// is correctly flagged.
func DetectOOH(cal Calendar, ev Event) bool {
	if cal.OpeningHours == nil {
		return false
	}
	loc := cal.Location()
	start := ev.StartsAt.In(loc)
	end := ev.EndsAt.In(loc)

	for cursor := start; cursor.Before(end); {
		dayEnd := time.Date(cursor.Year(), cursor.Month(), cursor.Day()+1, 0, 0, 0, 0, loc)
		segEnd := end
		if dayEnd.Before(segEnd) {
			segEnd = dayEnd
		}
		open := openIntervals(cal.OpeningHours[weekdayTokens[cursor.Weekday()]], cursor, loc)
		if !covered(cursor, segEnd, open) {
			return true
		}
		cursor = dayEnd
	}
	return false
}

type openInterval struct {
	start time.Time
	end   time.Time
}

// openIntervals resolves a weekday's HH:mm ranges onto the concrete local
// date of ref and merges overlapping or touching ranges into a union.
func openIntervals(ranges []HoursRange, ref time.Time, loc *time.Location) []openInterval {
	dayStart := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc)
	out := make([]openInterval, 0, len(ranges))
	for _, r := range ranges {
		startMins, okStart := parseClock(r.Start)
		endMins, okEnd := parseClock(r.End)
		if !okStart || !okEnd || endMins <= startMins {
			continue
		}
		out = append(out, openInterval{
			start: dayStart.Add(time.Duration(startMins) * time.Minute),
			end:   dayStart.Add(time.Duration(endMins) * time.Minute),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].start.Before(out[j].start) })

	merged := out[:0]
	for _, iv := range out {
		if n := len(merged); n > 0 && !iv.start.After(merged[n-1].end) {
			if iv.end.After(merged[n-1].end) {
				merged[n-1].end = iv.end
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

func covered(segStart, segEnd time.Time, open []openInterval) bool {
	for _, iv := range open {
		if !segStart.Before(iv.start) && !segEnd.After(iv.end) {
			return true
		}
	}
	return false
}

// parseClock parses "HH:mm"; "24:00" is accepted as end-of-day.
func parseClock(s string) (int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 24 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, false
	}
	return h*60 + m, true
}
