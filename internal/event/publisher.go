package event

import "context"

// Publisher sends domain events to downstream consumers. Handlers hold a
// Publisher and fire events after store writes; a nil check on the field
// keeps publishing optional for tests and the CLI.
type Publisher interface {
	Publish(ctx context.Context, evt DomainEvent)
}
