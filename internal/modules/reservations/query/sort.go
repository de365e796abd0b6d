package query

import (
	"cmp"
	"slices"

	"mesaYaBoard/internal/modules/reservations/domain"
)

var comparators = map[domain.SortKey]func(a, b domain.Reservation) int{
	domain.SortBusinessDate: func(a, b domain.Reservation) int { return a.BusinessDate.Compare(b.BusinessDate) },
	domain.SortShift:        func(a, b domain.Reservation) int { return cmp.Compare(a.Shift, b.Shift) },
	domain.SortArea:         func(a, b domain.Reservation) int { return cmp.Compare(a.Area, b.Area) },
	domain.SortStatus:       func(a, b domain.Reservation) int { return cmp.Compare(a.Status, b.Status) },
	domain.SortQuantity:     func(a, b domain.Reservation) int { return cmp.Compare(a.Quantity, b.Quantity) },
}

// SortBy returns a copy of rs stably ordered ascending by key. Missing values
// (empty strings, unknown dates) sort first. SortNone and unknown keys leave the
// copy in input order.
func SortBy(rs []domain.Reservation, key domain.SortKey) []domain.Reservation {
	out := slices.Clone(rs)
	compare, ok := comparators[key]
	if !ok {
		return out
	}
	slices.SortStableFunc(out, compare)
	return out
}
