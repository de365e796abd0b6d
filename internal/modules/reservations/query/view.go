package query

import (
	"time"

	"mesaYaBoard/internal/modules/reservations/domain"
)

const timeOfDayLayout = "15:04"

// Options tune how views are derived.
type Options struct {
	// Now supplies the current instant for date filtering. Defaults to time.Now.
	Now func() time.Time
	// Location is the zone start and end times are displayed in. Defaults to time.Local.
	Location *time.Location
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return o
}

// ViewItem is one reservation as handed to the presentation layer.
type ViewItem struct {
	Reservation domain.Reservation `json:"reservation"`
	GuestName   MarkedText         `json:"guestName"`
	Notes       string             `json:"notes"`
	Tone        domain.Tone        `json:"tone"`
	StartTime   string             `json:"startTime"`
	EndTime     string             `json:"endTime"`
}

// DerivedView is the ordered, filtered and highlighted list to display.
type DerivedView struct {
	Items    []ViewItem             `json:"items"`
	Total    int                    `json:"total"`
	Skipped  []domain.SkippedRecord `json:"skipped,omitempty"`
	Criteria domain.FilterCriteria  `json:"criteria"`
	Search   string                 `json:"search"`
	Sort     domain.SortKey         `json:"sort"`
}

// Empty reports whether nothing is left to display.
func (v DerivedView) Empty() bool {
	return len(v.Items) == 0
}

// Reservations returns the displayed reservations in order.
func (v DerivedView) Reservations() []domain.Reservation {
	out := make([]domain.Reservation, 0, len(v.Items))
	for _, item := range v.Items {
		out = append(out, item.Reservation)
	}
	return out
}

// project filters the baseline and decorates every remaining item.
func project(baseline []domain.Reservation, criteria domain.FilterCriteria, search string, opts Options) DerivedView {
	displayed := Filter(baseline, BuildPredicate(criteria, opts.Now))
	items := make([]ViewItem, 0, len(displayed))
	for _, r := range displayed {
		items = append(items, ViewItem{
			Reservation: r,
			GuestName:   Highlight(r.GuestName(), search),
			Notes:       r.NotesOrPlaceholder(),
			Tone:        domain.StatusTone(r.Status),
			StartTime:   timeOfDay(r.Start, opts.Location),
			EndTime:     timeOfDay(r.End, opts.Location),
		})
	}
	return DerivedView{
		Items:    items,
		Total:    len(baseline),
		Criteria: criteria,
		Search:   search,
	}
}

func timeOfDay(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(timeOfDayLayout)
}
