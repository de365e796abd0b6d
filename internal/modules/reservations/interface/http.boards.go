package transport

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	realtime "mesaYaBoard/internal/modules/realtime/domain"
	"mesaYaBoard/internal/modules/reservations/application/usecase"
	"mesaYaBoard/internal/modules/reservations/domain"
	"mesaYaBoard/internal/modules/reservations/query"
	"mesaYaBoard/internal/shared/httputil"
)

// OpenBoardResponse is returned when a board is created.
type OpenBoardResponse struct {
	BoardID string            `json:"boardId"`
	View    query.DerivedView `json:"view"`
}

type BoardsResponse struct {
	Boards []string `json:"boards"`
}

type setFilterRequest struct {
	Value string `json:"value"`
}

var boardErrors = httputil.NewErrorMapper().
	WithMapping(usecase.ErrBoardNotFound, http.StatusNotFound, "board not found").
	WithMapping(domain.ErrUnknownFilterField, http.StatusBadRequest, "unknown filter field")

// BoardHTTPHandler exposes the board operations over REST.
type BoardHTTPHandler struct {
	boards *usecase.BoardUseCase
}

func NewBoardHTTPHandler(boards *usecase.BoardUseCase) *BoardHTTPHandler {
	return &BoardHTTPHandler{boards: boards}
}

// Register mounts the board routes under g, typically /api/v1/boards.
func (h *BoardHTTPHandler) Register(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Open)
	g.GET("/:id", h.View)
	g.DELETE("/:id", h.Close)
	g.PUT("/:id/filters/:field", h.SetFilter)
	g.PUT("/:id/search", h.SetSearch)
	g.PUT("/:id/sort", h.SetSort)
	g.POST("/:id/reload", h.Reload)
}

func (h *BoardHTTPHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, BoardsResponse{Boards: h.boards.Boards()})
}

func (h *BoardHTTPHandler) Open(c echo.Context) error {
	id, view := h.boards.Open(c.Request().Context())
	return c.JSON(http.StatusCreated, OpenBoardResponse{BoardID: id, View: view})
}

func (h *BoardHTTPHandler) View(c echo.Context) error {
	view, err := h.boards.View(c.Request().Context(), c.Param("id"))
	return respond(c, view, err)
}

func (h *BoardHTTPHandler) Close(c echo.Context) error {
	h.boards.Close(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

func (h *BoardHTTPHandler) SetFilter(c echo.Context) error {
	var req setFilterRequest
	if err := c.Bind(&req); err != nil {
		slog.Warn("boards http: invalid filter body", slog.Any("error", err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	view, err := h.boards.SetFilter(c.Request().Context(), c.Param("id"), c.Param("field"), req.Value)
	return respond(c, view, err)
}

func (h *BoardHTTPHandler) SetSearch(c echo.Context) error {
	var req realtime.SetSearchCommand
	if err := c.Bind(&req); err != nil {
		slog.Warn("boards http: invalid search body", slog.Any("error", err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	view, err := h.boards.SetSearch(c.Request().Context(), c.Param("id"), req.Query)
	return respond(c, view, err)
}

func (h *BoardHTTPHandler) SetSort(c echo.Context) error {
	var req realtime.SetSortCommand
	if err := c.Bind(&req); err != nil {
		slog.Warn("boards http: invalid sort body", slog.Any("error", err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	view, err := h.boards.SetSort(c.Request().Context(), c.Param("id"), req.Key)
	return respond(c, view, err)
}

func (h *BoardHTTPHandler) Reload(c echo.Context) error {
	view, err := h.boards.Reload(c.Request().Context(), c.Param("id"))
	return respond(c, view, err)
}

func respond(c echo.Context, view query.DerivedView, err error) error {
	if err != nil {
		info := boardErrors.Map(err)
		if info.Status >= http.StatusInternalServerError {
			slog.Error("boards http: operation failed", slog.String("boardId", c.Param("id")), slog.Any("error", err))
		}
		return echo.NewHTTPError(info.Status, info.Message)
	}
	return c.JSON(http.StatusOK, view)
}
