package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownFilterField = errors.New("unknown filter field")

// DateFilter restricts reservations relative to the current date.
type DateFilter string

const (
	DateAny    DateFilter = ""
	DatePast   DateFilter = "past"
	DateFuture DateFilter = "future"
)

// FilterField names one of the four independent filter controls.
type FilterField string

const (
	FieldStatus FilterField = "status"
	FieldDate   FilterField = "date"
	FieldShift  FilterField = "shift"
	FieldArea   FilterField = "area"
)

// FilterCriteria holds the active filter constraints. An empty field means "no constraint".
type FilterCriteria struct {
	Status Status     `json:"status" yaml:"status"`
	Date   DateFilter `json:"date" yaml:"date"`
	Shift  Shift      `json:"shift" yaml:"shift"`
	Area   Area       `json:"area" yaml:"area"`
}

// Set updates a single criterion. Values are stored as given; unrecognised values
// are ignored at evaluation time rather than rejected here.
func (c *FilterCriteria) Set(field FilterField, value string) error {
	switch FilterField(strings.ToLower(strings.TrimSpace(string(field)))) {
	case FieldStatus:
		c.Status = NormalizeStatus(value)
	case FieldDate:
		c.Date = DateFilter(strings.ToLower(strings.TrimSpace(value)))
	case FieldShift:
		c.Shift = NormalizeShift(value)
	case FieldArea:
		c.Area = NormalizeArea(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFilterField, field)
	}
	return nil
}

// IsZero reports whether no criterion is set.
func (c FilterCriteria) IsZero() bool {
	return c == FilterCriteria{}
}

func (d DateFilter) Known() bool {
	return d == DatePast || d == DateFuture
}

// SortKey selects the reservation field the baseline is ordered by.
type SortKey string

const (
	SortNone         SortKey = ""
	SortBusinessDate SortKey = "businessDate"
	SortShift        SortKey = "shift"
	SortArea         SortKey = "area"
	SortStatus       SortKey = "status"
	SortQuantity     SortKey = "quantity"
)

var sortKeys = map[string]SortKey{
	strings.ToLower(string(SortBusinessDate)): SortBusinessDate,
	string(SortShift):                         SortShift,
	string(SortArea):                          SortArea,
	string(SortStatus):                        SortStatus,
	string(SortQuantity):                      SortQuantity,
}

// ParseSortKey resolves raw case-insensitively. Unknown keys resolve to SortNone.
func ParseSortKey(raw string) SortKey {
	if key, ok := sortKeys[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return key
	}
	return SortNone
}
