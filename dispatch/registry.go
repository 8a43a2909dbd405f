package dispatch

import (
	"context"

	"modbot/models"
)

// Handler is a feature-specific subscriber reacting to one notification
// variant. Handlers are constructed fresh per dispatch from their factory and
// must tolerate duplicate notifications - gateway reconnects can replay
// events and the dispatcher performs no deduplication.
type Handler interface {
	Name() string
	Handle(ctx context.Context, scope *Scope, notification models.Notification) error
}

// HandlerFactory builds a handler instance bound to one dispatch's scope.
type HandlerFactory func(scope *Scope) Handler

// RegistryBuilder assembles the notification-to-handler table at process
// initialization. Build once, then register nothing further.
type RegistryBuilder struct {
	handlers map[models.NotificationType][]HandlerFactory
}

func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{
		handlers: make(map[models.NotificationType][]HandlerFactory),
	}
}

// Register appends a handler factory to the ordered list for one variant.
// Handlers run in registration order within a dispatch.
func (b *RegistryBuilder) Register(
	notificationType models.NotificationType,
	factory HandlerFactory,
) *RegistryBuilder {
	b.handlers[notificationType] = append(b.handlers[notificationType], factory)
	return b
}

// Build produces the immutable registry. The builder must not be used after
// Build; the registry is read-only and safe for concurrent lookups without
// locking.
func (b *RegistryBuilder) Build() *Registry {
	handlers := make(map[models.NotificationType][]HandlerFactory, len(b.handlers))
	for notificationType, factories := range b.handlers {
		copied := make([]HandlerFactory, len(factories))
		copy(copied, factories)
		handlers[notificationType] = copied
	}
	return &Registry{handlers: handlers}
}

// Registry is the static, process-wide table mapping each notification
// variant to its ordered handler factories.
type Registry struct {
	handlers map[models.NotificationType][]HandlerFactory
}

// HandlersFor returns the ordered factories registered for the exact variant.
// A variant with no registered handlers returns an empty slice.
func (r *Registry) HandlersFor(notificationType models.NotificationType) []HandlerFactory {
	return r.handlers[notificationType]
}
