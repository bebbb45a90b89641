package room

import (
	"errors"
	"fmt"
)

type ViolationKind string

const (
	KindInvalidRange      ViolationKind = "invalid_range"
	KindStepMisalignment  ViolationKind = "step_misalignment"
	KindLeadTimeViolation ViolationKind = "lead_time_violation"
	KindConflict          ViolationKind = "conflict"
	KindNotFound          ViolationKind = "not_found"
	KindRoomMismatch      ViolationKind = "room_mismatch"
)

// Violation is a recoverable business-rule failure. Reason is meant to be
// surfaced to the end user unchanged; Conflict carries the offending event
// for KindConflict.
type Violation struct {
	Kind     ViolationKind
	Reason   string
	Conflict *Event
}

func (v *Violation) Error() string { return v.Reason }

// AsViolation unwraps err into a Violation, if it is one.
func AsViolation(err error) (*Violation, bool) {
	var v *Violation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

func invalidRange() *Violation {
	return &Violation{Kind: KindInvalidRange, Reason: "Invalid time range"}
}

func stepMisaligned(stepMins int) *Violation {
	return &Violation{
		Kind:   KindStepMisalignment,
		Reason: fmt.Sprintf("must align to %d-minute steps", stepMins),
	}
}

func conflictsWith(ev Event) *Violation {
	label := ev.Title
	if label == "" {
		label = ev.ID
	}
	offending := ev
	return &Violation{
		Kind:     KindConflict,
		Reason:   fmt.Sprintf("conflicts with existing %s %q", ev.Type, label),
		Conflict: &offending,
	}
}

func eventNotFound(id string) *Violation {
	return &Violation{Kind: KindNotFound, Reason: fmt.Sprintf("event not found: %s", id)}
}

func roomMismatch(got, want string) *Violation {
	return &Violation{
		Kind:   KindRoomMismatch,
		Reason: fmt.Sprintf("room id %q does not match calendar %q", got, want),
	}
}
