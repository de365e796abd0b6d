package broker

import (
	"context"
	"log/slog"

	"mesaYaBoard/internal/modules/realtime/domain"
	"mesaYaBoard/internal/modules/realtime/infrastructure"
)

// StartKafkaConsumers runs one consumer goroutine per topic, dispatching through registry.
func StartKafkaConsumers(
	ctx context.Context,
	registry *infrastructure.HandlerRegistry,
	brokers []string,
	groupID string,
	topics []string,
) {
	if len(brokers) == 0 {
		// kafka.NewReader must not see an empty broker list
		slog.Info("kafka consumers disabled: no brokers configured")
		return
	}
	for _, topic := range topics {
		go func(tp string) {
			consumer := NewKafkaConsumer(brokers, groupID, tp)
			if err := consumer.Consume(ctx, func(msg *domain.Message) error {
				return registry.Dispatch(ctx, msg)
			}); err != nil {
				slog.Info("kafka consumer stopped", slog.String("topic", tp), slog.Any("reason", err))
			}
		}(topic)
	}
}
