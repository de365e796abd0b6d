package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	realtime "mesaYaBoard/internal/modules/realtime/domain"
	"mesaYaBoard/internal/modules/realtime/infrastructure"
	"mesaYaBoard/internal/modules/reservations/application/usecase"
	"mesaYaBoard/internal/modules/reservations/query"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewBoardWebsocketHandler serves /ws/boards/:id. Without an id the connection opens
// its own board, which is closed again when the connection goes away.
func NewBoardWebsocketHandler(hub *infrastructure.Hub, boards *usecase.BoardUseCase, sendBuffer int) echo.HandlerFunc {
	if sendBuffer < 1 {
		sendBuffer = 8
	}
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		boardID := strings.TrimSpace(c.Param("id"))
		owned := boardID == ""

		var view query.DerivedView
		if owned {
			boardID, view = boards.Open(ctx)
		} else {
			current, err := boards.View(ctx, boardID)
			if err != nil {
				info := boardErrors.Map(err)
				slog.Warn("ws handler board lookup failed", slog.String("boardId", boardID), slog.Int("status", info.Status))
				return echo.NewHTTPError(info.Status, info.Message)
			}
			view = current
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("ws handler upgrade failed", slog.String("boardId", boardID), slog.Any("error", err))
			if owned {
				boards.Close(boardID)
			}
			return err
		}

		clientID := uuid.NewString()
		client := infrastructure.NewClient(hub, conn, clientID, boardID, sendBuffer, newBoardCommandHandler(boards))
		if owned {
			client.AddCloseHook(func(cl *infrastructure.Client) {
				boards.Close(cl.BoardID())
			})
		}
		hub.AttachClient(client, []string{realtime.ViewTopic(), realtime.ErrorTopic(realtime.BoardsEntity)})

		go client.WritePump()
		go client.ReadPump()

		client.SendDomainMessage(&realtime.Message{
			Topic:      realtime.TopicSystemConnected,
			Entity:     realtime.SystemEntity,
			Action:     realtime.ActionConnected,
			ResourceID: boardID,
			Metadata: map[string]string{
				realtime.MetadataBoardID: boardID,
				"clientId":               clientID,
			},
			Timestamp: time.Now().UTC(),
		})
		client.SendDomainMessage(usecase.ViewMessage(boardID, usecase.OperationView, view, time.Now()))
		slog.Info("ws board connected", slog.String("boardId", boardID), slog.String("clientId", clientID), slog.Bool("owned", owned), slog.String("ip", c.RealIP()))
		return nil
	}
}

// newBoardCommandHandler applies board commands sent over the socket. Successful
// mutations reach every client of the board through the use case broadcast.
func newBoardCommandHandler(boards *usecase.BoardUseCase) infrastructure.CommandHandler {
	return func(ctx context.Context, client *infrastructure.Client, cmd infrastructure.Command) {
		boardID := client.BoardID()
		action := strings.ToLower(strings.TrimSpace(cmd.Action))
		switch action {
		case "setfilter", "set_filter", "filter":
			payload, err := decodeCommand[realtime.SetFilterCommand](cmd.Payload)
			if err != nil || strings.TrimSpace(payload.Field) == "" {
				sendCommandError(client, usecase.OperationFilter, "invalid payload")
				return
			}
			if _, err := boards.SetFilter(ctx, boardID, payload.Field, payload.Value); err != nil {
				sendCommandError(client, usecase.OperationFilter, boardErrors.Map(err).Message)
			}
		case "setsearch", "set_search", "search":
			payload, err := decodeCommand[realtime.SetSearchCommand](cmd.Payload)
			if err != nil {
				sendCommandError(client, usecase.OperationSearch, "invalid payload")
				return
			}
			if _, err := boards.SetSearch(ctx, boardID, payload.Query); err != nil {
				sendCommandError(client, usecase.OperationSearch, boardErrors.Map(err).Message)
			}
		case "setsort", "set_sort", "sort":
			payload, err := decodeCommand[realtime.SetSortCommand](cmd.Payload)
			if err != nil {
				sendCommandError(client, usecase.OperationSort, "invalid payload")
				return
			}
			if _, err := boards.SetSort(ctx, boardID, payload.Key); err != nil {
				sendCommandError(client, usecase.OperationSort, boardErrors.Map(err).Message)
			}
		case "reload":
			if _, err := boards.Reload(ctx, boardID); err != nil {
				sendCommandError(client, usecase.OperationReload, boardErrors.Map(err).Message)
			}
		case "view":
			view, err := boards.View(ctx, boardID)
			if err != nil {
				sendCommandError(client, usecase.OperationView, boardErrors.Map(err).Message)
				return
			}
			client.SendDomainMessage(usecase.ViewMessage(boardID, usecase.OperationView, view, time.Now()))
		default:
			slog.Debug("ws board unknown action", slog.String("boardId", boardID), slog.String("action", cmd.Action))
			sendCommandError(client, "unknown", "unsupported action")
		}
	}
}

func sendCommandError(client *infrastructure.Client, operation, reason string) {
	boardID := client.BoardID()
	client.SendDomainMessage(&realtime.Message{
		Topic:      realtime.ErrorTopic(realtime.BoardsEntity),
		Entity:     realtime.BoardsEntity,
		Action:     realtime.ActionError,
		ResourceID: boardID,
		Metadata: map[string]string{
			realtime.MetadataBoardID: boardID,
			"operation":              operation,
			"reason":                 reason,
		},
		Data:      map[string]string{"error": reason},
		Timestamp: time.Now().UTC(),
	})
}

func decodeCommand[T any](raw json.RawMessage) (T, error) {
	var payload T
	if len(raw) == 0 {
		return payload, nil
	}
	return payload, json.Unmarshal(raw, &payload)
}
