package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"mesaYaBoard/internal/modules/reservations/application/port"
	"mesaYaBoard/internal/modules/reservations/domain"
)

const defaultReservationsPath = "/api/v1/reservations"

// ReservationsHTTPClient implements ReservationSource against the reservations REST endpoint.
type ReservationsHTTPClient struct {
	rest    *RESTClient
	path    string
	token   string
	timeout time.Duration
}

func NewReservationsHTTPClient(baseURL, path, token string, timeout time.Duration, client *http.Client) *ReservationsHTTPClient {
	trimmedPath := strings.TrimSpace(path)
	if trimmedPath == "" {
		trimmedPath = defaultReservationsPath
	}
	return &ReservationsHTTPClient{
		rest:    NewRESTClient(baseURL, timeout, client),
		path:    trimmedPath,
		token:   strings.TrimSpace(token),
		timeout: timeoutOrDefault(timeout),
	}
}

func (c *ReservationsHTTPClient) FetchReservations(ctx context.Context) ([]domain.Reservation, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := c.rest.NewRequest(ctx, http.MethodGet, c.path, nil)
	if err != nil {
		slog.Error("reservations request build failed", slog.String("path", c.path), slog.Any("error", err))
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	slog.Debug("reservations request", slog.String("url", req.URL.String()))

	res, err := c.rest.Do(req)
	if err != nil {
		slog.Error("reservations request error", slog.String("path", c.path), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", port.ErrSourceUnavailable, err)
	}
	defer res.Body.Close()
	slog.Debug("reservations response", slog.Int("status", res.StatusCode), slog.String("url", req.URL.String()))

	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return nil, port.ErrSourceForbidden
	case res.StatusCode == http.StatusNotFound:
		return nil, port.ErrSourceNotFound
	case res.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		slog.Error("reservations fetch unexpected status", slog.Int("status", res.StatusCode), slog.String("url", req.URL.String()), slog.String("body", strings.TrimSpace(string(body))))
		return nil, fmt.Errorf("%w: unexpected response %d", port.ErrSourceUnavailable, res.StatusCode)
	}

	return decodeReservations(res.Body)
}

func decodeReservations(body io.Reader) ([]domain.Reservation, error) {
	var payload any
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode reservations: %w", err)
	}
	slog.Debug("reservations payload decoded", slog.String("type", fmt.Sprintf("%T", payload)))
	return domain.BuildReservations(payload), nil
}

var _ port.ReservationSource = (*ReservationsHTTPClient)(nil)
