package messaging

import (
	"context"
)

// Publisher defines the interface for publishing domain events
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Close() error
}

type noopPublisher struct{}

// NewNoopPublisher returns a Publisher that drops every message.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, string, interface{}) error { return nil }

func (noopPublisher) Close() error { return nil }
