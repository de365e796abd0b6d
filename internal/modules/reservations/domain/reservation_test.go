package domain

import (
	"errors"
	"testing"
	"time"
)

func TestBuildReservations(t *testing.T) {
	payload := map[string]any{
		"data": []any{
			map[string]any{
				"id":           "res-1",
				"customer":     map[string]any{"firstName": "Ana", "lastName": "Lee"},
				"businessDate": "2024-05-01",
				"shift":        "dinner",
				"status":       "CONFIRMED",
				"start":        "2024-05-01T19:00:00Z",
				"end":          "2024-05-01T21:00:00Z",
				"area":         "main room",
				"quantity":     float64(4),
			},
			map[string]any{"id": "res-2", "status": "SEATED"},
			"garbage",
		},
	}

	list := BuildReservations(payload)
	if len(list) != 3 {
		t.Fatalf("expected 3 items, got %d", len(list))
	}

	first := list[0]
	if first.Customer == nil || first.Customer.FirstName != "Ana" {
		t.Fatalf("unexpected customer: %#v", first.Customer)
	}
	if first.BusinessDate != (Date{Year: 2024, Month: time.May, Day: 1}) {
		t.Fatalf("unexpected business date: %v", first.BusinessDate)
	}
	if first.Shift != ShiftDinner || first.Area != AreaMainRoom {
		t.Fatalf("unexpected shift/area: %s/%s", first.Shift, first.Area)
	}
	if first.Quantity != 4 {
		t.Fatalf("unexpected quantity: %d", first.Quantity)
	}
	if !first.Start.Equal(time.Date(2024, 5, 1, 19, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start: %v", first.Start)
	}

	valid, skipped := Partition(list)
	if len(valid) != 1 || valid[0].ID != "res-1" {
		t.Fatalf("unexpected valid set: %#v", valid)
	}
	if len(skipped) != 2 {
		t.Fatalf("expected 2 skipped records, got %d", len(skipped))
	}
	if skipped[0].Index != 1 || skipped[0].ID != "res-2" || skipped[0].Reason != ErrMissingCustomer.Error() {
		t.Fatalf("unexpected first skip: %#v", skipped[0])
	}
	if skipped[1].Index != 2 || skipped[1].Reason != ErrMissingID.Error() {
		t.Fatalf("unexpected second skip: %#v", skipped[1])
	}
}

func TestBuildReservationsBareList(t *testing.T) {
	list := BuildReservations([]any{map[string]any{"id": "a", "customer": map[string]any{"firstName": "X"}}})
	if len(list) != 1 || list[0].ID != "a" {
		t.Fatalf("unexpected list: %#v", list)
	}
	if BuildReservations(nil) != nil {
		t.Fatal("expected nil for empty payload")
	}
}

func TestReservationNames(t *testing.T) {
	r := Reservation{ID: "1", Customer: &Customer{FirstName: "Ana", LastName: "Lee"}}
	if r.FullName() != "AnaLee" {
		t.Fatalf("unexpected full name %q", r.FullName())
	}
	if r.GuestName() != "Ana Lee" {
		t.Fatalf("unexpected guest name %q", r.GuestName())
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if err := (Reservation{ID: "2"}).Validate(); !errors.Is(err, ErrMissingCustomer) {
		t.Fatalf("expected missing customer, got %v", err)
	}
}

func TestNotesOrPlaceholder(t *testing.T) {
	cases := map[string]string{
		"":             NotesPlaceholder,
		"   ":          NotesPlaceholder,
		"window seat":  "window seat",
		"allergy: nut": "allergy: nut",
	}
	for notes, expected := range cases {
		r := Reservation{GuestNotes: notes}
		if got := r.NotesOrPlaceholder(); got != expected {
			t.Fatalf("NotesOrPlaceholder(%q) expected %q got %q", notes, expected, got)
		}
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		input    string
		expected Date
		wantErr  bool
	}{
		{input: "2024-02-29", expected: Date{2024, time.February, 29}},
		{input: "2024-02-29T10:00:00Z", expected: Date{2024, time.February, 29}},
		{input: "", expected: Date{}},
		{input: "29/02/2024", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseDate(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestDateCompare(t *testing.T) {
	a := Date{2024, time.January, 31}
	b := Date{2024, time.February, 1}
	if !a.Before(b) || b.Before(a) || a.Compare(a) != 0 {
		t.Fatal("unexpected chronological order")
	}
	if !(Date{}).Before(a) {
		t.Fatal("zero date should sort first")
	}
	if a.String() != "2024-01-31" {
		t.Fatalf("unexpected string %q", a.String())
	}
}

func TestFilterCriteriaSet(t *testing.T) {
	var c FilterCriteria
	if err := c.Set("Status", "not confirmed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Set(FieldDate, " Past "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Set(FieldArea, "bar"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Status != StatusNotConfirmed || c.Date != DatePast || c.Area != AreaBar {
		t.Fatalf("unexpected criteria: %#v", c)
	}
	if err := c.Set("party", "x"); !errors.Is(err, ErrUnknownFilterField) {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if err := c.Set(FieldShift, ""); err != nil || c.Shift != ShiftUnknown {
		t.Fatalf("expected cleared shift, got %q (%v)", c.Shift, err)
	}
}

func TestParseSortKey(t *testing.T) {
	cases := map[string]SortKey{
		"businessDate": SortBusinessDate,
		"BUSINESSDATE": SortBusinessDate,
		" quantity ":   SortQuantity,
		"status":       SortStatus,
		"":             SortNone,
		"customer":     SortNone,
	}
	for input, expected := range cases {
		if got := ParseSortKey(input); got != expected {
			t.Fatalf("ParseSortKey(%q) expected %q got %q", input, expected, got)
		}
	}
}
