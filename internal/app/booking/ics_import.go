package booking

import (
	"bytes"
	"context"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"roomly/internal/domain/room"
)

// ImportOutcome reports what happened to one VEVENT of an imported feed.
type ImportOutcome struct {
	UID      string `json:"uid"`
	EventID  string `json:"eventId,omitempty"`
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

// ImportICS parses an external ICS feed and books every VEVENT into the room
// as a BLACKOUT through the normal add pipeline, so buffering, step
// alignment, lead time and conflicts all apply. Rejected entries are
// reported individually; one bad entry does not abort the rest.
func (s *Service) ImportICS(ctx context.Context, roomID string, body []byte) ([]ImportOutcome, error) {
	parsed, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	lock := s.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	cal, err := s.repo.Calendar(ctx, roomID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	current := *cal
	outcomes := make([]ImportOutcome, 0, len(parsed.Events()))
	var pending []room.DomainEvent

	for _, ve := range parsed.Events() {
		uid := ""
		if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
			uid = p.Value
		}
		outcome := ImportOutcome{UID: uid}

		ev, perr := blackoutFromVEvent(roomID, ve, now)
		if perr != nil {
			outcome.Reason = perr.Error()
			outcomes = append(outcomes, outcome)
			continue
		}

		next, aerr := room.AddEvent(current, ev, now)
		if aerr != nil {
			outcome.Reason = aerr.Error()
			outcomes = append(outcomes, outcome)
			continue
		}
		pending = append(pending, next.PendingEvents()...)
		next.ClearEvents()
		current = next
		outcome.EventID = ev.ID
		outcome.Accepted = true
		outcomes = append(outcomes, outcome)
	}

	if err := s.repo.Save(ctx, &current); err != nil {
		return nil, err
	}
	for _, ev := range pending {
		s.publish(ctx, ev)
	}
	return outcomes, nil
}

func blackoutFromVEvent(roomID string, ve *ical.VEvent, now time.Time) (room.Event, error) {
	start, err := ve.GetStartAt()
	if err != nil {
		return room.Event{}, err
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return room.Event{}, err
	}
	title := ""
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		title = p.Value
	}
	return room.Event{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		Type:      room.TypeBlackout,
		Status:    room.StatusConfirmed,
		StartsAt:  start,
		EndsAt:    end,
		Title:     title,
		CreatedBy: "ics-import",
		CreatedAt: now,
	}, nil
}
