package handler

import (
	"context"
	"log/slog"
	"strings"

	"mesaYaBoard/internal/modules/realtime/application/port"
	"mesaYaBoard/internal/modules/realtime/domain"
)

// Refresher reloads every open board from the reservation source.
type Refresher interface {
	RefreshAll(ctx context.Context) int
}

// ReservationChangeHandler refreshes open boards when a reservation change event arrives.
type ReservationChangeHandler struct {
	topic     string
	refresher Refresher
}

func NewReservationChangeHandler(topic string, refresher Refresher) *ReservationChangeHandler {
	return &ReservationChangeHandler{topic: strings.TrimSpace(topic), refresher: refresher}
}

func (h *ReservationChangeHandler) Topic() string { return h.topic }

func (h *ReservationChangeHandler) Handle(ctx context.Context, msg *domain.Message) error {
	if msg == nil || h.refresher == nil {
		return nil
	}
	if !strings.EqualFold(strings.TrimSpace(msg.Entity), domain.ReservationsEntity) {
		return nil
	}
	refreshed := h.refresher.RefreshAll(ctx)
	slog.Info("reservation change applied", slog.String("topic", msg.Topic), slog.String("action", msg.Action), slog.String("resourceId", msg.ResourceID), slog.Int("boards", refreshed))
	return nil
}

var _ port.TopicHandler = (*ReservationChangeHandler)(nil)
