package service

import (
	"sync"
	"time"
)

// WidgetRegistry keeps one Controller per chat. Controllers never share state.
type WidgetRegistry struct {
	mu      sync.RWMutex
	widgets map[int64]*Controller
	factory func(chatID int64) *Controller
	ttl     time.Duration
	now     func() time.Time
}

func NewWidgetRegistry(factory func(chatID int64) *Controller, ttl time.Duration) *WidgetRegistry {
	return &WidgetRegistry{
		widgets: make(map[int64]*Controller),
		factory: factory,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the chat's widget, creating an uninitialized one if needed.
// The bool reports whether it was created by this call. A returned widget
// counts as active, so a sweep cannot drop it before its caller uses it.
func (r *WidgetRegistry) Get(chatID int64) (*Controller, bool) {
	r.mu.RLock()
	c, ok := r.widgets[chatID]
	if ok {
		c.Touch()
	}
	r.mu.RUnlock()
	if ok {
		return c, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.widgets[chatID]; ok {
		c.Touch()
		return c, false
	}
	c = r.factory(chatID)
	r.widgets[chatID] = c
	return c, true
}

func (r *WidgetRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.widgets)
}

// EvictIdle drops widgets idle for longer than the TTL, skipping any with a
// request in flight. It returns the number evicted.
func (r *WidgetRegistry) EvictIdle() int {
	if r.ttl <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, c := range r.widgets {
		if c.State().Loading() {
			continue
		}
		if r.now().Sub(c.LastActive()) > r.ttl {
			delete(r.widgets, id)
			evicted++
		}
	}
	return evicted
}
