package broker

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"mesaYaBoard/internal/modules/realtime/domain"
)

// KafkaConsumer reads reservation change events from one topic.
type KafkaConsumer struct {
	reader *kafka.Reader
}

func NewKafkaConsumer(brokers []string, groupID string, topic string) *KafkaConsumer {
	return &KafkaConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
		}),
	}
}

// Consume reads until ctx is cancelled, handing every decoded event to handler.
func (c *KafkaConsumer) Consume(ctx context.Context, handler func(*domain.Message) error) error {
	defer c.reader.Close()
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Warn("kafka read error", slog.String("topic", c.reader.Config().Topic), slog.Any("error", err))
			continue
		}
		msg := decodeMessage(m)
		slog.Debug("reservation event received",
			slog.String("kafkaTopic", m.Topic),
			slog.Int64("offset", m.Offset),
			slog.String("topic", msg.Topic),
			slog.String("resourceId", msg.ResourceID),
		)
		if err := handler(msg); err != nil {
			slog.Warn("reservation event handler failed", slog.String("topic", msg.Topic), slog.Any("error", err))
		}
	}
}

// changeEvent is the JSON body producers publish. Every field is optional.
type changeEvent struct {
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId"`
	Topic      string            `json:"topic"`
	Metadata   map[string]string `json:"metadata"`
	Data       any               `json:"data"`
}

// decodeMessage turns a Kafka record into a domain message. Entity and action
// missing from the body are taken from the Kafka topic name ("mesa.reservations"
// gives entity "reservations"); an action that cannot be found becomes
// domain.ActionUnknown, which the registry routes to the entity's wildcard handler.
func decodeMessage(m kafka.Message) *domain.Message {
	topicEntity, topicAction := splitTopic(m.Topic)

	var event changeEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		event = changeEvent{Data: string(m.Value)}
	} else {
		// a topic name carries the action only when the body did not
		topicAction = ""
	}

	msg := &domain.Message{
		Entity:     firstNonEmpty(event.Entity, topicEntity),
		Action:     strings.ToLower(firstNonEmpty(event.Action, topicAction, domain.ActionUnknown)),
		ResourceID: strings.TrimSpace(event.ResourceID),
		Metadata:   event.Metadata,
		Data:       event.Data,
		Timestamp:  time.Now().UTC(),
	}
	msg.Topic = firstNonEmpty(event.Topic, domain.CustomTopic(msg.Entity, msg.Action), m.Topic)
	return msg
}

// splitTopic reads "<prefix>.<entity>.<action>" or "<prefix>.<entity>" style names.
// A single segment is the entity. The action is empty when the name holds none.
func splitTopic(topic string) (entity, action string) {
	var parts []string
	for _, part := range strings.Split(topic, ".") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	last := parts[len(parts)-1]
	if isAction(last) {
		return parts[len(parts)-2], last
	}
	return last, ""
}

func isAction(segment string) bool {
	switch strings.ToLower(segment) {
	case domain.ActionCreated, domain.ActionUpdated, domain.ActionDeleted:
		return true
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
