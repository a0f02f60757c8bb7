package ecs

// EventType identifies different types of events
type EventType string

// Event interface that all events must implement
type Event interface {
	Type() EventType
}

// EventHandler is a function that processes events
type EventHandler func(Event)

// EventManager manages event subscriptions and dispatches. Emit delivers
// immediately (observer style); Queue buffers until Flush.
type EventManager struct {
	subscribers map[EventType][]EventHandler
	queue       []Event
}

// NewEventManager creates a new event manager
func NewEventManager() *EventManager {
	return &EventManager{
		subscribers: make(map[EventType][]EventHandler),
	}
}

// Subscribe registers a handler for a specific event type
func (em *EventManager) Subscribe(eventType EventType, handler EventHandler) {
	em.subscribers[eventType] = append(em.subscribers[eventType], handler)
}

// SubscriberCount reports how many handlers listen for eventType.
func (em *EventManager) SubscriberCount(eventType EventType) int {
	return len(em.subscribers[eventType])
}

// Emit dispatches an event to all subscribed handlers
func (em *EventManager) Emit(event Event) {
	handlers, exists := em.subscribers[event.Type()]
	if !exists {
		return
	}

	for _, handler := range handlers {
		handler(event)
	}
}

// Queue buffers an event for delivery on the next Flush.
func (em *EventManager) Queue(event Event) {
	em.queue = append(em.queue, event)
}

// Pending returns the number of buffered events.
func (em *EventManager) Pending() int {
	return len(em.queue)
}

// Flush delivers buffered events in FIFO order. Events queued by handlers
// during the flush are delivered in the same call.
func (em *EventManager) Flush() {
	for i := 0; i < len(em.queue); i++ {
		em.Emit(em.queue[i])
	}
	em.queue = em.queue[:0]
}
