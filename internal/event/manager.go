// internal/event/manager.go
package event

import (
	"sync"

	"github.com/bethropolis/nib/internal/logger"
)

// Handler is an event subscriber. Returning true consumes the event and
// stops delivery to the handlers subscribed after it.
type Handler func(e Event) bool

// Manager handles event subscriptions and dispatching.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe adds a handler for one event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.handlers[eventType] = append(m.handlers[eventType], handler)
	logger.DebugTagf("event", "Event Manager: handler subscribed to %v", eventType)
}

// Dispatch delivers an event synchronously to the handlers of its type, in
// subscription order.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	event := Event{
		Type: eventType,
		Data: data,
	}

	m.mu.RLock()
	handlers := make([]Handler, len(m.handlers[eventType]))
	copy(handlers, m.handlers[eventType])
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	logger.DebugTagf("event", "Event Manager: dispatching %v to %d handler(s)", eventType, len(handlers))
	for _, handler := range handlers {
		if handler(event) {
			break
		}
	}
}
