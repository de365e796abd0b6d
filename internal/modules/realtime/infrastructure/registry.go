package infrastructure

import (
	"context"
	"log/slog"
	"strings"

	"mesaYaBoard/internal/modules/realtime/application/port"
	"mesaYaBoard/internal/modules/realtime/domain"
)

// HandlerRegistry routes broker messages to the handler registered for their topic.
type HandlerRegistry struct {
	handlers map[string]port.TopicHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string]port.TopicHandler)}
}

func (r *HandlerRegistry) Register(h port.TopicHandler) {
	if h == nil || strings.TrimSpace(h.Topic()) == "" {
		return
	}
	r.handlers[h.Topic()] = h
}

func (r *HandlerRegistry) Dispatch(ctx context.Context, msg *domain.Message) error {
	if msg == nil {
		return nil
	}
	if handler, ok := r.handlers[msg.Topic]; ok {
		return handler.Handle(ctx, msg)
	}
	if handler, ok := r.handlers[domain.WildcardTopic(msg.Entity)]; ok {
		return handler.Handle(ctx, msg)
	}
	slog.Debug("broker message without handler", slog.String("topic", msg.Topic), slog.String("entity", msg.Entity))
	return nil
}
