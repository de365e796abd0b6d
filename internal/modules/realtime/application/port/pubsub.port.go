package port

import (
	"context"

	"mesaYaBoard/internal/modules/realtime/domain"
)

// Broadcaster defines the contract for pushing messages to websocket clients.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}

// TopicHandler is implemented by handlers registered per broker topic.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, msg *domain.Message) error
}
