package infrastructure

import (
	"context"
	"encoding/json"
	"testing"

	"mesaYaBoard/internal/modules/realtime/domain"
)

func newTestClient(hub *Hub, clientID, boardID string) *Client {
	return NewClient(hub, nil, clientID, boardID, 4, nil)
}

func drain(c *Client) []domain.Message {
	var out []domain.Message
	for {
		select {
		case data := <-c.send:
			var msg domain.Message
			if err := json.Unmarshal(data, &msg); err == nil {
				out = append(out, msg)
			}
		default:
			return out
		}
	}
}

func TestHubBroadcastRoutesByBoard(t *testing.T) {
	hub := NewHub()
	first := newTestClient(hub, "c1", "board-a")
	second := newTestClient(hub, "c2", "board-b")
	hub.AttachClient(first, []string{domain.ViewTopic()})
	hub.AttachClient(second, []string{domain.ViewTopic(), " "})

	if got := hub.Subscribers(domain.ViewTopic()); got != 2 {
		t.Fatalf("expected 2 subscribers, got %d", got)
	}

	hub.Broadcast(context.Background(), &domain.Message{
		Topic:    domain.ViewTopic(),
		Metadata: map[string]string{domain.MetadataBoardID: "board-a"},
	})

	if got := drain(first); len(got) != 1 || got[0].Topic != "boards.view" {
		t.Fatalf("expected one message for board-a, got %v", got)
	}
	if got := drain(second); len(got) != 0 {
		t.Fatalf("board-b should not receive board-a messages, got %v", got)
	}

	hub.Broadcast(context.Background(), &domain.Message{Topic: domain.ViewTopic()})
	if len(drain(first)) != 1 || len(drain(second)) != 1 {
		t.Fatal("untargeted messages should reach every subscriber")
	}
}

func TestHubDetachClient(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "c1", "board-a")
	closed := 0
	client.AddCloseHook(func(*Client) { closed++ })
	hub.AttachClient(client, []string{domain.ViewTopic()})

	hub.detachClient(client)
	hub.detachClient(client)

	if hub.Subscribers(domain.ViewTopic()) != 0 {
		t.Fatal("detached client should not stay subscribed")
	}
	if closed != 1 {
		t.Fatalf("close hook should run once, ran %d times", closed)
	}
	// sending after close must not panic
	client.SendDomainMessage(&domain.Message{Topic: domain.ViewTopic()})
}

func TestCommandProcessorPingAndFallback(t *testing.T) {
	hub := NewHub()
	var seen []string
	client := NewClient(hub, nil, "c1", "board-a", 4, func(_ context.Context, _ *Client, cmd Command) {
		seen = append(seen, cmd.Action)
	})

	client.processCommand(Command{Action: " PING "})
	if got := drain(client); len(got) != 1 || got[0].Topic != domain.TopicSystemPong {
		t.Fatalf("expected pong, got %v", got)
	}

	client.processCommand(Command{Action: "setSearch"})
	client.processCommand(Command{Action: "setSort"})
	client.processCommand(Command{Action: ""})
	if len(seen) != 2 || seen[0] != "setSearch" || seen[1] != "setSort" {
		t.Fatalf("fallback should see commands in order, got %v", seen)
	}

	client.processCommand(Command{Action: "subscribe", Topic: "reservations.updated"})
	if hub.Subscribers("reservations.updated") != 1 {
		t.Fatal("subscribe command should register the topic")
	}
	client.processCommand(Command{Action: "unsubscribe", Topic: "reservations.updated"})
	if hub.Subscribers("reservations.updated") != 0 {
		t.Fatal("unsubscribe command should drop the topic")
	}
}

type recordingHandler struct {
	topic string
	calls int
}

func (h *recordingHandler) Topic() string { return h.topic }

func (h *recordingHandler) Handle(context.Context, *domain.Message) error {
	h.calls++
	return nil
}

func TestHandlerRegistryDispatch(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := &recordingHandler{topic: "reservations.updated"}
	registry.Register(handler)
	registry.Register(&recordingHandler{topic: " "})

	ctx := context.Background()
	_ = registry.Dispatch(ctx, &domain.Message{Topic: "reservations.updated"})
	_ = registry.Dispatch(ctx, &domain.Message{Topic: "tables.updated"})
	_ = registry.Dispatch(ctx, nil)

	if handler.calls != 1 {
		t.Fatalf("expected one dispatch, got %d", handler.calls)
	}
}

func TestHandlerRegistryWildcardFallback(t *testing.T) {
	registry := NewHandlerRegistry()
	exact := &recordingHandler{topic: "reservations.updated"}
	wildcard := &recordingHandler{topic: domain.WildcardTopic("reservations")}
	registry.Register(exact)
	registry.Register(wildcard)

	ctx := context.Background()
	_ = registry.Dispatch(ctx, &domain.Message{Topic: "reservations.updated", Entity: "reservations"})
	_ = registry.Dispatch(ctx, &domain.Message{Topic: "reservations.unknown", Entity: "reservations", Action: "unknown"})
	_ = registry.Dispatch(ctx, &domain.Message{Topic: "tables.unknown", Entity: "tables"})

	if exact.calls != 1 || wildcard.calls != 1 {
		t.Fatalf("expected one exact and one wildcard dispatch, got %d/%d", exact.calls, wildcard.calls)
	}
}
