package usecase

import "pakket-admin/internal/notify"

// Notifier pushes realtime events to connected clients.
type Notifier interface {
	Publish(eventType notify.EventType, data any)
}

type noopNotifier struct{}

func (noopNotifier) Publish(notify.EventType, any) {}
