package query

import (
	"strings"

	"mesaYaBoard/internal/modules/reservations/domain"
)

// MatchesName tests the guest's name against query, ignoring case. The name is
// tried as first and last name run together, and in its spaced display form so a
// query typed with a space ("ana l") still finds the guest.
func MatchesName(r domain.Reservation, query string) bool {
	if query == "" {
		return true
	}
	needle := strings.ToLower(query)
	if strings.Contains(strings.ToLower(r.FullName()), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(r.GuestName()), needle)
}

// Search returns the reservations whose guest name matches query, in order.
func Search(rs []domain.Reservation, query string) []domain.Reservation {
	out := make([]domain.Reservation, 0, len(rs))
	for _, r := range rs {
		if MatchesName(r, query) {
			out = append(out, r)
		}
	}
	return out
}
