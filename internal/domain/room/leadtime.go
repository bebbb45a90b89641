package room

import "time"

// WithinLeadTimes enforces the booking horizon relative to now, evaluated in
// the calendar's zone. A start before now+minLeadTime fails, which for a
// zero minimum still forbids starts in the past. MaxLeadTimeDays of zero
// means no upper bound.
func WithinLeadTimes(cal Calendar, start, now time.Time) error {
	now = now.In(cal.Location())
	earliest := now.Add(time.Duration(cal.MinLeadTimeMins) * time.Minute)
	if start.Before(earliest) {
		return &Violation{Kind: KindLeadTimeViolation, Reason: "inside minimum lead time"}
	}
	if cal.MaxLeadTimeDays > 0 {
		latest := now.AddDate(0, 0, cal.MaxLeadTimeDays)
		if start.After(latest) {
			return &Violation{Kind: KindLeadTimeViolation, Reason: "beyond maximum lead time"}
		}
	}
	return nil
}
