package domain

import (
	"log/slog"
	"time"

	"mesaYaBoard/internal/shared/normalization"
)

// NormalizeReservation constructs a Reservation from a loosely typed map.
// The result is not validated: a record without id or customer is still returned
// so the query engine can report it as skipped.
func NormalizeReservation(raw map[string]any) Reservation {
	reservation := Reservation{
		ID:         normalization.AsString(raw["id"]),
		Shift:      NormalizeShift(raw["shift"]),
		Status:     NormalizeStatus(raw["status"]),
		Area:       NormalizeArea(raw["area"]),
		Start:      normalization.AsTime(raw["start"]),
		End:        normalization.AsTime(raw["end"]),
		GuestNotes: normalization.AsString(raw["guestNotes"]),
		Quantity:   normalization.AsInt(raw["quantity"]),
	}
	if reservation.Quantity < 0 {
		reservation.Quantity = 0
	}

	if customer, ok := normalization.AsMap(raw["customer"]); ok {
		reservation.Customer = &Customer{
			FirstName: normalization.AsString(customer["firstName"]),
			LastName:  normalization.AsString(customer["lastName"]),
		}
	}

	reservation.BusinessDate = businessDate(reservation.ID, raw["businessDate"])

	return reservation
}

func businessDate(id string, value any) Date {
	if t, ok := value.(time.Time); ok {
		return DateOf(t)
	}
	date, err := ParseDate(normalization.AsString(value))
	if err != nil {
		slog.Debug("reservation business date unreadable", slog.String("id", id), slog.Any("error", err))
	}
	return date
}

// BuildReservations projects a decoded payload into reservations. It accepts a bare
// list or an envelope carrying "items", "reservations" or "data".
func BuildReservations(payload any) []Reservation {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil
	}

	rawItems := normalization.AsInterfaceSlice(container["items"])
	if len(rawItems) == 0 {
		rawItems = normalization.AsInterfaceSlice(container["reservations"])
	}

	result := make([]Reservation, 0, len(rawItems))
	for _, item := range rawItems {
		rawMap, ok := normalization.AsMap(item)
		if !ok {
			// keep the slot so the record is reported as skipped
			result = append(result, Reservation{})
			continue
		}
		result = append(result, NormalizeReservation(rawMap))
	}
	return result
}
