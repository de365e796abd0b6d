package query

import (
	"time"

	"mesaYaBoard/internal/modules/reservations/domain"
)

// Predicate decides whether a reservation belongs to the displayed subset.
type Predicate func(domain.Reservation) bool

// BuildPredicate combines the status, date, shift and area criteria with a logical AND.
// Empty or unrecognised criteria impose no constraint. now is consulted on every
// evaluation when a date criterion is active.
func BuildPredicate(criteria domain.FilterCriteria, now func() time.Time) Predicate {
	if now == nil {
		now = time.Now
	}

	var checks []Predicate
	if criteria.Status.Known() {
		status := criteria.Status
		checks = append(checks, func(r domain.Reservation) bool { return r.Status == status })
	}
	if criteria.Date.Known() {
		filter := criteria.Date
		checks = append(checks, func(r domain.Reservation) bool {
			today := domain.DateOf(now())
			if filter == domain.DatePast {
				return r.BusinessDate.Before(today)
			}
			return !r.BusinessDate.Before(today)
		})
	}
	if criteria.Shift.Known() {
		shift := criteria.Shift
		checks = append(checks, func(r domain.Reservation) bool { return r.Shift == shift })
	}
	if criteria.Area.Known() {
		area := criteria.Area
		checks = append(checks, func(r domain.Reservation) bool { return r.Area == area })
	}

	return func(r domain.Reservation) bool {
		for _, check := range checks {
			if !check(r) {
				return false
			}
		}
		return true
	}
}

// Filter returns the reservations accepted by p in their original order.
func Filter(rs []domain.Reservation, p Predicate) []domain.Reservation {
	out := make([]domain.Reservation, 0, len(rs))
	for _, r := range rs {
		if p(r) {
			out = append(out, r)
		}
	}
	return out
}
