package port

import (
	"context"
	"errors"

	"mesaYaBoard/internal/modules/reservations/domain"
)

var (
	ErrSourceUnavailable = errors.New("reservation source unavailable")
	ErrSourceNotFound    = errors.New("reservation source not found")
	ErrSourceForbidden   = errors.New("reservation source forbidden")
)

// ReservationSource supplies the full reservation collection. Records are returned
// as decoded, malformed ones included; the query engine decides what to skip.
type ReservationSource interface {
	FetchReservations(ctx context.Context) ([]domain.Reservation, error)
}
