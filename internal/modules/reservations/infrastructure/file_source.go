package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"mesaYaBoard/internal/modules/reservations/application/port"
	"mesaYaBoard/internal/modules/reservations/domain"
)

// FileSource reads the reservation collection from a YAML or JSON fixture on every fetch.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: strings.TrimSpace(path)}
}

func (s *FileSource) FetchReservations(ctx context.Context) ([]domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.path == "" {
		return nil, port.ErrSourceNotFound
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", port.ErrSourceNotFound, s.path)
		}
		return nil, fmt.Errorf("%w: %w", port.ErrSourceUnavailable, err)
	}
	reservations, err := DecodeReservationDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	slog.Debug("reservations loaded from file", slog.String("path", s.path), slog.Int("count", len(reservations)))
	return reservations, nil
}

// DecodeReservationDocument parses a YAML document (JSON being a subset) holding a
// list of reservations or an envelope around one.
func DecodeReservationDocument(raw []byte) ([]domain.Reservation, error) {
	var payload any
	if err := yaml.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode reservations: %w", err)
	}
	return domain.BuildReservations(payload), nil
}

var _ port.ReservationSource = (*FileSource)(nil)
