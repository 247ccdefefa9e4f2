package memory

import (
	"context"
	"sync"

	"github.com/bkimathi/eventbook/internal/domain/event"
	"github.com/google/uuid"
)

type EventsRepo struct {
	mu    sync.RWMutex
	items map[string]event.Event
	order []string // insertion order, so List is stable
}

func NewEventsRepo() *EventsRepo {
	return &EventsRepo{
		items: make(map[string]event.Event),
	}
}

func (r *EventsRepo) Create(_ context.Context, ev event.Event) (event.Event, error) {
	ev.ID = uuid.NewString()

	r.mu.Lock()
	r.items[ev.ID] = ev
	r.order = append(r.order, ev.ID)
	r.mu.Unlock()

	return ev, nil
}

func (r *EventsRepo) List(_ context.Context) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]event.Event, 0, len(r.order))

	for _, id := range r.order {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *EventsRepo) ListByCreator(_ context.Context, creatorID string) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]event.Event, 0)

	for _, id := range r.order {
		if r.items[id].Creator == creatorID {
			out = append(out, r.items[id])
		}
	}

	return out, nil
}
