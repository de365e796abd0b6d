package query

import (
	"testing"
	"time"

	"mesaYaBoard/internal/modules/reservations/domain"
)

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newReservation(id, first, last string, status domain.Status, quantity int) domain.Reservation {
	return domain.Reservation{
		ID:           id,
		Customer:     &domain.Customer{FirstName: first, LastName: last},
		BusinessDate: domain.Date{Year: 2024, Month: time.June, Day: 15},
		Shift:        domain.ShiftDinner,
		Status:       status,
		Area:         domain.AreaMainRoom,
		Quantity:     quantity,
	}
}

func ids(rs []domain.Reservation) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func assertIDs(t *testing.T, got []domain.Reservation, expected ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(expected) {
		t.Fatalf("expected ids %v, got %v", expected, gotIDs)
	}
	for i := range expected {
		if gotIDs[i] != expected[i] {
			t.Fatalf("expected ids %v, got %v", expected, gotIDs)
		}
	}
}

func TestHighlight(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		query    string
		expected []Span
	}{
		{name: "empty query", text: "Ana Lee", query: "", expected: nil},
		{name: "single match", text: "Ana Lee", query: "an", expected: []Span{{Offset: 0, Length: 2}}},
		{name: "global", text: "Anna Banana", query: "an", expected: []Span{{0, 2}, {6, 2}, {8, 2}}},
		{name: "non overlapping", text: "aaaa", query: "aa", expected: []Span{{0, 2}, {2, 2}}},
		{name: "no match", text: "Ana Lee", query: "xyz", expected: nil},
		{name: "pattern characters are literal", text: "Lee (VIP) .*", query: "(vip)", expected: []Span{{4, 5}}},
		{name: "dot does not match anything", text: "Ana", query: ".", expected: nil},
		{name: "unicode folding", text: "José Ñuñez", query: "ÑU", expected: []Span{{6, 3}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			marked := Highlight(tc.text, tc.query)
			if marked.Text != tc.text {
				t.Fatalf("text altered: %q", marked.Text)
			}
			if len(marked.Spans) != len(tc.expected) {
				t.Fatalf("expected %v spans, got %v", tc.expected, marked.Spans)
			}
			for i := range tc.expected {
				if marked.Spans[i] != tc.expected[i] {
					t.Fatalf("span %d: expected %v, got %v", i, tc.expected[i], marked.Spans[i])
				}
			}
		})
	}
}

func TestHighlightCoversLiteralSubstring(t *testing.T) {
	marked := Highlight("Ana Lee", "an")
	if len(marked.Spans) != 1 {
		t.Fatalf("expected one span, got %v", marked.Spans)
	}
	span := marked.Spans[0]
	if got := marked.Text[span.Offset : span.Offset+span.Length]; got != "An" {
		t.Fatalf("expected span over %q, got %q", "An", got)
	}
}

func TestMarkedTextSegments(t *testing.T) {
	segments := Highlight("Ana Banana", "ana").Segments()
	expected := []Segment{
		{Text: "Ana", Matched: true},
		{Text: " B"},
		{Text: "ana", Matched: true},
		{Text: "na"},
	}
	if len(segments) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, segments)
	}
	for i := range expected {
		if segments[i] != expected[i] {
			t.Fatalf("segment %d: expected %v, got %v", i, expected[i], segments[i])
		}
	}
	if got := (MarkedText{}).Segments(); len(got) != 0 {
		t.Fatalf("expected no segments for empty text, got %v", got)
	}
}

func TestMatchesName(t *testing.T) {
	r := newReservation("1", "Ana", "Lee", domain.StatusConfirmed, 2)
	cases := map[string]bool{
		"":       true,
		"ana l":  true,
		"ANALEE": true,
		"alee":   true,
		"lee":    true,
		"xyz":    false,
		"lee a":  false,
	}
	for query, expected := range cases {
		if got := MatchesName(r, query); got != expected {
			t.Fatalf("MatchesName(%q) expected %v got %v", query, expected, got)
		}
	}
}

func TestBuildPredicateStatus(t *testing.T) {
	rs := []domain.Reservation{
		newReservation("1", "A", "A", domain.StatusConfirmed, 1),
		newReservation("2", "B", "B", domain.StatusSeated, 1),
		newReservation("3", "C", "C", domain.StatusConfirmed, 1),
		newReservation("4", "D", "D", domain.StatusCheckedOut, 1),
	}
	p := BuildPredicate(domain.FilterCriteria{Status: domain.StatusConfirmed}, fixedClock)
	out := Filter(rs, p)
	assertIDs(t, out, "1", "3")
	for _, r := range rs {
		if p(r) != (r.Status == domain.StatusConfirmed) {
			t.Fatalf("predicate disagrees with status equality for %s", r.ID)
		}
	}
}

func TestBuildPredicateDate(t *testing.T) {
	yesterday := newReservation("past", "A", "A", domain.StatusSeated, 1)
	yesterday.BusinessDate = domain.Date{Year: 2024, Month: time.June, Day: 14}
	today := newReservation("today", "B", "B", domain.StatusSeated, 1)
	tomorrow := newReservation("future", "C", "C", domain.StatusSeated, 1)
	tomorrow.BusinessDate = domain.Date{Year: 2024, Month: time.June, Day: 16}
	rs := []domain.Reservation{yesterday, today, tomorrow}

	past := BuildPredicate(domain.FilterCriteria{Date: domain.DatePast}, fixedClock)
	pastOut := Filter(rs, past)
	assertIDs(t, pastOut, "past")
	assertIDs(t, Filter(pastOut, past), "past")

	future := BuildPredicate(domain.FilterCriteria{Date: domain.DateFuture}, fixedClock)
	futureOut := Filter(rs, future)
	assertIDs(t, futureOut, "today", "future")
	assertIDs(t, Filter(futureOut, future), "today", "future")
}

func TestBuildPredicateReadsClockPerEvaluation(t *testing.T) {
	now := fixedNow
	clock := func() time.Time { return now }
	r := newReservation("1", "A", "A", domain.StatusSeated, 1)

	past := BuildPredicate(domain.FilterCriteria{Date: domain.DatePast}, clock)
	if past(r) {
		t.Fatal("reservation for today must not be past")
	}
	now = now.Add(24 * time.Hour)
	if !past(r) {
		t.Fatal("predicate should observe the advanced clock")
	}
}

func TestBuildPredicateCombinesCriteria(t *testing.T) {
	bar := newReservation("bar", "A", "A", domain.StatusSeated, 1)
	bar.Area = domain.AreaBar
	lunch := newReservation("lunch", "B", "B", domain.StatusSeated, 1)
	lunch.Shift = domain.ShiftLunch
	both := newReservation("both", "C", "C", domain.StatusSeated, 1)
	both.Area = domain.AreaBar
	both.Shift = domain.ShiftLunch

	p := BuildPredicate(domain.FilterCriteria{Shift: domain.ShiftLunch, Area: domain.AreaBar}, fixedClock)
	assertIDs(t, Filter([]domain.Reservation{bar, lunch, both}, p), "both")
}

func TestBuildPredicateIgnoresUnknownCriteria(t *testing.T) {
	rs := []domain.Reservation{
		newReservation("1", "A", "A", domain.StatusConfirmed, 1),
		newReservation("2", "B", "B", domain.StatusSeated, 1),
	}
	p := BuildPredicate(domain.FilterCriteria{
		Status: domain.Status("WAITLIST"),
		Date:   domain.DateFilter("yesterday"),
		Shift:  domain.Shift("BRUNCH"),
		Area:   domain.Area("PATIO"),
	}, fixedClock)
	assertIDs(t, Filter(rs, p), "1", "2")
}

func TestSortByQuantity(t *testing.T) {
	rs := []domain.Reservation{
		newReservation("five", "A", "A", domain.StatusSeated, 5),
		newReservation("one", "B", "B", domain.StatusSeated, 1),
		newReservation("three", "C", "C", domain.StatusSeated, 3),
	}
	sorted := SortBy(rs, domain.SortQuantity)
	assertIDs(t, sorted, "one", "three", "five")
	assertIDs(t, rs, "five", "one", "three")
}

func TestSortByIsStable(t *testing.T) {
	rs := []domain.Reservation{
		newReservation("a", "A", "A", domain.StatusSeated, 2),
		newReservation("b", "B", "B", domain.StatusConfirmed, 2),
		newReservation("c", "C", "C", domain.StatusSeated, 1),
		newReservation("d", "D", "D", domain.StatusConfirmed, 2),
	}
	assertIDs(t, SortBy(rs, domain.SortQuantity), "c", "a", "b", "d")
	assertIDs(t, SortBy(rs, domain.SortStatus), "b", "d", "a", "c")
}

func TestSortByMissingValuesFirst(t *testing.T) {
	dated := newReservation("dated", "A", "A", domain.StatusSeated, 1)
	undated := newReservation("undated", "B", "B", domain.StatusUnknown, 1)
	undated.BusinessDate = domain.Date{}
	undated.Area = domain.AreaUnknown
	rs := []domain.Reservation{dated, undated}

	assertIDs(t, SortBy(rs, domain.SortBusinessDate), "undated", "dated")
	assertIDs(t, SortBy(rs, domain.SortStatus), "undated", "dated")
	assertIDs(t, SortBy(rs, domain.SortArea), "undated", "dated")
}

func TestSortByNoneKeepsOrder(t *testing.T) {
	rs := []domain.Reservation{
		newReservation("b", "B", "B", domain.StatusSeated, 9),
		newReservation("a", "A", "A", domain.StatusSeated, 1),
	}
	assertIDs(t, SortBy(rs, domain.SortNone), "b", "a")
	assertIDs(t, SortBy(rs, domain.SortKey("customer")), "b", "a")
}
