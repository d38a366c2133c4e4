package services

// Event is the opaque refresh payload fanned out to connected clients. Clients react
// by invalidating and refetching; the relational store stays authoritative.
type Event struct {
	Type     string `json:"type"`     // e.g. "refresh"
	Entity   string `json:"entity"`   // e.g. "exchange_request"
	EntityID string `json:"entityID"` // ID of the entity that changed
}

// Notifier is the best-effort broadcast collaborator. Publish must never block the
// caller; dropped notifications are harmless because clients re-query on an interval.
type Notifier interface {
	Publish(event Event)
}

// NoopNotifier discards all events. Used in tests and when the hub is disabled.
type NoopNotifier struct{}

// Publish implements Notifier.
func (NoopNotifier) Publish(Event) {}
