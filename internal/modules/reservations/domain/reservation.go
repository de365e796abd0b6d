package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrMissingID       = errors.New("reservation missing id")
	ErrMissingCustomer = errors.New("reservation missing customer")
)

// NotesPlaceholder is rendered in place of absent or blank guest notes.
const NotesPlaceholder = "--"

// Customer identifies the guest a reservation was booked for.
type Customer struct {
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
}

// Reservation is an immutable booking record as delivered by the reservation source.
type Reservation struct {
	ID           string    `json:"id" yaml:"id"`
	Customer     *Customer `json:"customer" yaml:"customer"`
	BusinessDate Date      `json:"businessDate" yaml:"businessDate"`
	Shift        Shift     `json:"shift" yaml:"shift"`
	Status       Status    `json:"status" yaml:"status"`
	Start        time.Time `json:"start" yaml:"start"`
	End          time.Time `json:"end" yaml:"end"`
	Area         Area      `json:"area" yaml:"area"`
	GuestNotes   string    `json:"guestNotes,omitempty" yaml:"guestNotes,omitempty"`
	Quantity     int       `json:"quantity" yaml:"quantity"`
}

// Validate reports why a reservation cannot be displayed, or nil when it can.
func (r Reservation) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return ErrMissingID
	}
	if r.Customer == nil {
		return ErrMissingCustomer
	}
	return nil
}

// FullName concatenates first and last name without a separator, as used by name search.
func (r Reservation) FullName() string {
	if r.Customer == nil {
		return ""
	}
	return r.Customer.FirstName + r.Customer.LastName
}

// GuestName is the display form of the guest's name.
func (r Reservation) GuestName() string {
	if r.Customer == nil {
		return ""
	}
	return r.Customer.FirstName + " " + r.Customer.LastName
}

// NotesOrPlaceholder returns the guest notes or NotesPlaceholder when there are none.
func (r Reservation) NotesOrPlaceholder() string {
	if strings.TrimSpace(r.GuestNotes) == "" {
		return NotesPlaceholder
	}
	return r.GuestNotes
}

// SkippedRecord describes a reservation left out of a view because it was malformed.
type SkippedRecord struct {
	Index  int    `json:"index"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

// Partition splits rs into displayable reservations and skipped records,
// preserving the relative order of the valid ones.
func Partition(rs []Reservation) ([]Reservation, []SkippedRecord) {
	valid := make([]Reservation, 0, len(rs))
	var skipped []SkippedRecord
	for i, r := range rs {
		if err := r.Validate(); err != nil {
			skipped = append(skipped, SkippedRecord{Index: i, ID: r.ID, Reason: err.Error()})
			continue
		}
		valid = append(valid, r)
	}
	return valid, skipped
}
