package booking

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"roomly/internal/domain/room"
)

// Publisher delivers calendar domain events to the outside world after a
// snapshot has been saved.
type Publisher interface {
	Publish(ctx context.Context, event room.DomainEvent) error
}

// NopPublisher drops events; used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, room.DomainEvent) error { return nil }

// Service drives calendar mutations. The engine itself is pure and
// lock-free; the service enforces the single-writer-per-calendar discipline
// with a per-room mutex and treats each returned calendar as the new
// authoritative snapshot.
type Service struct {
	repo   room.Repository
	pub    Publisher
	logger *slog.Logger
	now    func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(repo room.Repository, pub Publisher, logger *slog.Logger) *Service {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &Service{
		repo:   repo,
		pub:    pub,
		logger: logger,
		now:    time.Now,
		locks:  make(map[string]*sync.Mutex),
	}
}

// WithClock overrides the service's time source; tests pin it to a fixed
// instant.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) roomLock(roomID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[roomID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[roomID] = lock
	}
	return lock
}

// AddEvent books an event into the room's calendar. A missing id gets a
// generated one; a missing CreatedAt gets the current time.
func (s *Service) AddEvent(ctx context.Context, roomID string, ev room.Event) (*room.Calendar, error) {
	lock := s.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	cal, err := s.repo.Calendar(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	now := s.now()
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = now
	}

	next, err := room.AddEvent(*cal, ev, now)
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, &next)
}

func (s *Service) UpdateEvent(ctx context.Context, roomID string, ev room.Event) (*room.Calendar, error) {
	lock := s.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	cal, err := s.repo.Calendar(ctx, roomID)
	if err != nil {
		return nil, err
	}
	next, err := room.UpdateEvent(*cal, ev, s.now())
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, &next)
}

func (s *Service) DeleteEvent(ctx context.Context, roomID, eventID string) (*room.Calendar, error) {
	lock := s.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	cal, err := s.repo.Calendar(ctx, roomID)
	if err != nil {
		return nil, err
	}
	next := room.DeleteEvent(*cal, eventID, s.now())
	return s.commit(ctx, &next)
}

// ExportCalendar returns the current snapshot for interchange.
func (s *Service) ExportCalendar(ctx context.Context, roomID string) (*room.Calendar, error) {
	return s.repo.Calendar(ctx, roomID)
}

// ImportCalendar replaces a room's calendar with the payload. The payload's
// room id must match the target; a mismatch is rejected so a calendar cannot
// be imported over the wrong room.
func (s *Service) ImportCalendar(ctx context.Context, roomID string, payload room.Calendar) (*room.Calendar, error) {
	if payload.RoomID != roomID {
		return nil, &room.Violation{
			Kind:   room.KindRoomMismatch,
			Reason: "calendar roomId " + payload.RoomID + " does not match target room " + roomID,
		}
	}

	lock := s.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	if existing, err := s.repo.Calendar(ctx, roomID); err == nil {
		payload.Version = existing.Version
	}
	payload.ClearEvents()
	imported := room.CalendarImported{RoomID: roomID, Events: len(payload.Events), At: s.now()}
	if err := s.repo.Save(ctx, &payload); err != nil {
		return nil, err
	}
	s.publish(ctx, imported)
	return &payload, nil
}

// commit saves the new snapshot, then publishes the events the mutation
// recorded.
func (s *Service) commit(ctx context.Context, cal *room.Calendar) (*room.Calendar, error) {
	pending := cal.PendingEvents()
	cal.ClearEvents()
	if err := s.repo.Save(ctx, cal); err != nil {
		return nil, err
	}
	for _, ev := range pending {
		s.publish(ctx, ev)
	}
	return cal, nil
}

func (s *Service) publish(ctx context.Context, ev room.DomainEvent) {
	if err := s.pub.Publish(ctx, ev); err != nil && s.logger != nil {
		s.logger.Warn("event publish failed", "event", ev.EventName(), "room_id", ev.AggregateID(), "error", err)
	}
}
