package memory

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"sync"

	"roomly/internal/domain/room"
)

// CalendarRepository keeps room calendars in memory. Each Save replaces the
// stored snapshot; reads hand out copies so callers cannot mutate shared
// state behind the repository's back.
type CalendarRepository struct {
	mu        sync.RWMutex
	calendars map[string]room.Calendar
}

func NewCalendarRepository() *CalendarRepository {
	return &CalendarRepository{calendars: make(map[string]room.Calendar)}
}

func (r *CalendarRepository) Calendar(ctx context.Context, roomID string) (*room.Calendar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cal, ok := r.calendars[roomID]
	if !ok {
		return nil, room.ErrCalendarNotFound
	}
	out := copyCalendar(cal)
	return &out, nil
}

func (r *CalendarRepository) Save(ctx context.Context, cal *room.Calendar) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cal.Version++
	r.calendars[cal.RoomID] = copyCalendar(*cal)
	return nil
}

func (r *CalendarRepository) List(ctx context.Context) ([]*room.Calendar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*room.Calendar, 0, len(r.calendars))
	for _, cal := range r.calendars {
		c := copyCalendar(cal)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomID < out[j].RoomID })
	return out, nil
}

// SeedFromFile loads fixture calendars from a JSON file holding an array of
// calendars in the interchange format.
func (r *CalendarRepository) SeedFromFile(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var calendars []room.Calendar
	if err := json.Unmarshal(raw, &calendars); err != nil {
		return 0, err
	}
	for i := range calendars {
		if err := r.Save(ctx, &calendars[i]); err != nil {
			return 0, err
		}
	}
	return len(calendars), nil
}

func copyCalendar(cal room.Calendar) room.Calendar {
	out := cal
	out.Events = make([]room.Event, len(cal.Events))
	copy(out.Events, cal.Events)
	return out
}
