package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	realtimeport "mesaYaBoard/internal/modules/realtime/application/port"
	realtime "mesaYaBoard/internal/modules/realtime/domain"
	"mesaYaBoard/internal/modules/reservations/application/port"
	"mesaYaBoard/internal/modules/reservations/domain"
	"mesaYaBoard/internal/modules/reservations/query"
	"mesaYaBoard/internal/shared/metrics"
)

var ErrBoardNotFound = errors.New("board not found")

const (
	OperationOpen    = "open"
	OperationView    = "view"
	OperationFilter  = "filter"
	OperationSearch  = "search"
	OperationSort    = "sort"
	OperationReload  = "reload"
	OperationRefresh = "refresh"
)

// BoardUseCase owns the open boards. Each board wraps one query engine; the engine
// itself is single-owner, so every access goes through the board's lock.
type BoardUseCase struct {
	source      port.ReservationSource
	broadcaster realtimeport.Broadcaster
	opts        query.Options
	newID       func() string
	now         func() time.Time

	mu     sync.RWMutex
	boards map[string]*board
}

type board struct {
	mu     sync.Mutex
	engine *query.Engine
}

func NewBoardUseCase(source port.ReservationSource, broadcaster realtimeport.Broadcaster, opts query.Options) *BoardUseCase {
	return &BoardUseCase{
		source:      source,
		broadcaster: broadcaster,
		opts:        opts,
		newID:       func() string { return uuid.NewString() },
		now:         time.Now,
		boards:      make(map[string]*board),
	}
}

// Open creates a board loaded with the current reservation collection. A failing
// source yields an empty board rather than an error.
func (uc *BoardUseCase) Open(ctx context.Context) (string, query.DerivedView) {
	id := uc.newID()
	engine := query.NewEngine(uc.opts)
	view := engine.Load(uc.fetch(ctx))
	metrics.SkippedRecordsTotal.Add(float64(len(view.Skipped)))

	uc.mu.Lock()
	uc.boards[id] = &board{engine: engine}
	count := len(uc.boards)
	uc.mu.Unlock()

	metrics.OpenBoards.Set(float64(count))
	metrics.DerivationsTotal.WithLabelValues(OperationOpen).Inc()
	slog.Info("board opened", slog.String("boardId", id), slog.Int("items", len(view.Items)), slog.Int("skipped", len(view.Skipped)))
	return id, view
}

// Close forgets a board. Closing an unknown board is a no-op.
func (uc *BoardUseCase) Close(id string) {
	uc.mu.Lock()
	delete(uc.boards, strings.TrimSpace(id))
	count := len(uc.boards)
	uc.mu.Unlock()
	metrics.OpenBoards.Set(float64(count))
}

// Boards returns the ids of the open boards.
func (uc *BoardUseCase) Boards() []string {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	ids := make([]string, 0, len(uc.boards))
	for id := range uc.boards {
		ids = append(ids, id)
	}
	return ids
}

func (uc *BoardUseCase) View(ctx context.Context, id string) (query.DerivedView, error) {
	return uc.withBoard(ctx, id, OperationView, false, func(e *query.Engine) (query.DerivedView, error) {
		return e.View(), nil
	})
}

func (uc *BoardUseCase) SetFilter(ctx context.Context, id, field, value string) (query.DerivedView, error) {
	return uc.withBoard(ctx, id, OperationFilter, true, func(e *query.Engine) (query.DerivedView, error) {
		return e.SetFilter(domain.FilterField(field), value)
	})
}

func (uc *BoardUseCase) SetSearch(ctx context.Context, id, searchQuery string) (query.DerivedView, error) {
	return uc.withBoard(ctx, id, OperationSearch, true, func(e *query.Engine) (query.DerivedView, error) {
		return e.SetSearch(searchQuery), nil
	})
}

func (uc *BoardUseCase) SetSort(ctx context.Context, id, key string) (query.DerivedView, error) {
	return uc.withBoard(ctx, id, OperationSort, true, func(e *query.Engine) (query.DerivedView, error) {
		return e.SetSort(domain.ParseSortKey(key)), nil
	})
}

// Reload fetches the collection again and resets the board's baseline to it.
func (uc *BoardUseCase) Reload(ctx context.Context, id string) (query.DerivedView, error) {
	if _, ok := uc.lookup(id); !ok {
		return query.DerivedView{}, ErrBoardNotFound
	}
	reservations := uc.fetch(ctx)
	return uc.withBoard(ctx, id, OperationReload, true, func(e *query.Engine) (query.DerivedView, error) {
		view := e.Load(reservations)
		metrics.SkippedRecordsTotal.Add(float64(len(view.Skipped)))
		return view, nil
	})
}

// RefreshAll fetches the collection once and swaps it into every open board,
// keeping each board's search and sort. Subscribers receive the new views.
func (uc *BoardUseCase) RefreshAll(ctx context.Context) int {
	ids := uc.Boards()
	if len(ids) == 0 {
		return 0
	}
	reservations := uc.fetch(ctx)
	refreshed := 0
	for _, id := range ids {
		_, err := uc.withBoard(ctx, id, OperationRefresh, true, func(e *query.Engine) (query.DerivedView, error) {
			view := e.Refresh(reservations)
			metrics.SkippedRecordsTotal.Add(float64(len(view.Skipped)))
			return view, nil
		})
		if err != nil {
			// closed while refreshing
			continue
		}
		refreshed++
	}
	slog.Info("boards refreshed", slog.Int("boards", refreshed), slog.Int("reservations", len(reservations)))
	return refreshed
}

func (uc *BoardUseCase) withBoard(ctx context.Context, id, operation string, publish bool, fn func(*query.Engine) (query.DerivedView, error)) (query.DerivedView, error) {
	b, ok := uc.lookup(id)
	if !ok {
		return query.DerivedView{}, ErrBoardNotFound
	}

	// Views are published under the board lock so subscribers see them in the
	// order the operations were applied.
	b.mu.Lock()
	defer b.mu.Unlock()
	view, err := fn(b.engine)

	metrics.DerivationsTotal.WithLabelValues(operation).Inc()
	if err != nil {
		slog.Debug("board operation rejected", slog.String("boardId", id), slog.String("operation", operation), slog.Any("error", err))
		return view, err
	}
	if publish {
		uc.publish(ctx, strings.TrimSpace(id), operation, view)
	}
	return view, nil
}

func (uc *BoardUseCase) lookup(id string) (*board, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	b, ok := uc.boards[strings.TrimSpace(id)]
	return b, ok
}

func (uc *BoardUseCase) fetch(ctx context.Context) []domain.Reservation {
	if uc.source == nil {
		return nil
	}
	reservations, err := uc.source.FetchReservations(ctx)
	if err != nil {
		metrics.SourceLoadsTotal.WithLabelValues("error").Inc()
		slog.Warn("reservation source fetch failed, no reservations loaded", slog.Any("error", err))
		return nil
	}
	metrics.SourceLoadsTotal.WithLabelValues("ok").Inc()
	return reservations
}

func (uc *BoardUseCase) publish(ctx context.Context, id, operation string, view query.DerivedView) {
	if uc.broadcaster == nil {
		return
	}
	uc.broadcaster.Broadcast(ctx, ViewMessage(id, operation, view, uc.now()))
}

// ViewMessage wraps a derived view for delivery to the clients watching a board.
func ViewMessage(boardID, operation string, view query.DerivedView, at time.Time) *realtime.Message {
	return &realtime.Message{
		Topic:      realtime.ViewTopic(),
		Entity:     realtime.BoardsEntity,
		Action:     realtime.ActionView,
		ResourceID: boardID,
		Metadata: map[string]string{
			realtime.MetadataBoardID: boardID,
			"operation":              operation,
		},
		Data:      view,
		Timestamp: at.UTC(),
	}
}
