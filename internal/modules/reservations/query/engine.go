package query

import (
	"slices"

	"mesaYaBoard/internal/modules/reservations/domain"
)

// Derive computes a view in one pass: search over the valid records of source,
// sort the result, filter it and highlight guest names. Malformed records are
// reported in Skipped instead of failing the derivation.
func Derive(source []domain.Reservation, criteria domain.FilterCriteria, search string, key domain.SortKey, opts Options) DerivedView {
	opts = opts.withDefaults()
	valid, skipped := domain.Partition(source)

	working := valid
	if search != "" {
		working = Search(valid, search)
	}
	if key != domain.SortNone {
		working = SortBy(working, key)
	}

	view := project(working, criteria, search, opts)
	view.Skipped = skipped
	view.Sort = key
	return view
}

// Engine holds the state of one board: the loaded reservations, the baseline the
// filters act on, and the current controls. Search and sort each replace the
// baseline; filters never do. An Engine is not safe for concurrent use.
type Engine struct {
	opts Options

	source  []domain.Reservation
	skipped []domain.SkippedRecord

	baseline   []domain.Reservation
	criteria   domain.FilterCriteria
	search     string
	sort       domain.SortKey
	sortActive bool
}

func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts.withDefaults()}
}

// Load replaces the loaded reservations and resets the baseline to all of them.
// Filter controls survive; search and sort are cleared.
func (e *Engine) Load(rs []domain.Reservation) DerivedView {
	e.source, e.skipped = domain.Partition(rs)
	e.baseline = slices.Clone(e.source)
	e.search = ""
	e.sort = domain.SortNone
	e.sortActive = false
	return e.View()
}

// Refresh swaps in a new collection while replaying the current search and,
// if it still shapes the baseline, the current sort.
func (e *Engine) Refresh(rs []domain.Reservation) DerivedView {
	e.source, e.skipped = domain.Partition(rs)
	e.baseline = Search(e.source, e.search)
	if e.sortActive {
		e.baseline = SortBy(e.baseline, e.sort)
	}
	return e.View()
}

// SetFilter updates one filter control.
func (e *Engine) SetFilter(field domain.FilterField, value string) (DerivedView, error) {
	if err := e.criteria.Set(field, value); err != nil {
		return e.View(), err
	}
	return e.View(), nil
}

// SetSearch re-derives the baseline from the full loaded collection, keeping only
// guests whose name matches query. Any earlier sort no longer applies.
func (e *Engine) SetSearch(query string) DerivedView {
	e.search = query
	e.baseline = Search(e.source, query)
	e.sortActive = false
	return e.View()
}

// SetSort replaces the baseline with a sorted copy of itself.
func (e *Engine) SetSort(key domain.SortKey) DerivedView {
	e.sort = key
	e.baseline = SortBy(e.baseline, key)
	e.sortActive = key != domain.SortNone
	return e.View()
}

// View filters the baseline with the current criteria and highlights the current search.
func (e *Engine) View() DerivedView {
	view := project(e.baseline, e.criteria, e.search, e.opts)
	view.Skipped = slices.Clone(e.skipped)
	view.Sort = e.sort
	return view
}

func (e *Engine) Criteria() domain.FilterCriteria {
	return e.criteria
}

func (e *Engine) Search() string {
	return e.search
}

func (e *Engine) SortKey() domain.SortKey {
	return e.sort
}

// Loaded returns the number of valid reservations loaded.
func (e *Engine) Loaded() int {
	return len(e.source)
}
