package room

import "time"

// RoundDown aligns t to the previous multiple of stepMins on the local
// minute-of-day grid of loc. Seconds and sub-second components are zeroed.
func RoundDown(t time.Time, stepMins int, loc *time.Location) time.Time {
	return roundToStep(t, stepMins, loc, false)
}

// RoundUp aligns t to the next multiple of stepMins on the local
// minute-of-day grid of loc. An already aligned timestamp is returned
// unchanged.
func RoundUp(t time.Time, stepMins int, loc *time.Location) time.Time {
	return roundToStep(t, stepMins, loc, true)
}

func roundToStep(t time.Time, stepMins int, loc *time.Location, up bool) time.Time {
	if stepMins <= 0 {
		return t
	}
	local := t.In(loc)
	minutes := local.Hour()*60 + local.Minute()
	rem := minutes % stepMins
	subMinute := local.Second() != 0 || local.Nanosecond() != 0

	aligned := minutes - rem
	if up && (rem != 0 || subMinute) {
		aligned = minutes - rem + stepMins
	}
	return time.Date(local.Year(), local.Month(), local.Day(), 0, aligned, 0, 0, loc)
}

// IsOnStep reports whether t sits exactly on the stepMins grid in loc:
// minute-of-day is a multiple of the step and there is no sub-minute part.
func IsOnStep(t time.Time, stepMins int, loc *time.Location) bool {
	if stepMins <= 0 {
		return false
	}
	local := t.In(loc)
	if local.Second() != 0 || local.Nanosecond() != 0 {
		return false
	}
	return (local.Hour()*60+local.Minute())%stepMins == 0
}
