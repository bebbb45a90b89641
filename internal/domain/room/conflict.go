package room

import "time"

// BufferedInterval widens the event's nominal interval by its pre/post
// buffers, falling back to the calendar defaults when the event carries
// none. The buffered interval is what conflict testing operates on.
func BufferedInterval(ev Event, cal Calendar) (time.Time, time.Time) {
	pre := cal.DefaultPreBufferMins
	if ev.PreBufferMins != nil {
		pre = *ev.PreBufferMins
	}
	post := cal.DefaultPostBufferMins
	if ev.PostBufferMins != nil {
		post = *ev.PostBufferMins
	}
	start := ev.StartsAt.Add(-time.Duration(pre) * time.Minute)
	end := ev.EndsAt.Add(time.Duration(post) * time.Minute)
	return start, end
}

// intervalsOverlap is the strict half-open test: touching endpoints
// (aEnd == bStart) are not an overlap.
func intervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// CheckOverlap rejects a candidate whose buffered interval is inverted, then
// scans the calendar's events in stored order and returns a Conflict for the
// first non-cancelled event whose buffered interval overlaps the candidate's.
// The candidate's own id is skipped so in-place update checks work.
func CheckOverlap(cal Calendar, candidate Event) error {
	cStart, cEnd := BufferedInterval(candidate, cal)
	if !cEnd.After(cStart) {
		return invalidRange()
	}
	for _, ev := range cal.Events {
		if ev.Status == StatusCancelled || ev.ID == candidate.ID {
			continue
		}
		evStart, evEnd := BufferedInterval(ev, cal)
		if intervalsOverlap(cStart, cEnd, evStart, evEnd) {
			return conflictsWith(ev)
		}
	}
	return nil
}
