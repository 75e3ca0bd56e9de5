package gotable

import (
	"github.com/samber/lo"
)

// Entry is the selection state of one known record.
type Entry[T any] struct {
	Selected bool
	Ref      T
}

// Selection tracks which records are checked for bulk actions.
//
// Its keys always equal the ids of the records passed to the latest
// Reconcile. Selections survive changes of the visible (filtered) subset;
// the scope of bulk actions does not: VisibleSelected only returns records
// that are both selected and visible.
//
// Selection is not safe for concurrent use.
type Selection[ID comparable, T any] struct {
	idOf        func(T) ID
	eligible    func(T) bool
	entries     map[ID]*Entry[T]
	order       []ID
	allSelected bool
}

// NewSelection creates an empty selection keyed by idOf.
func NewSelection[ID comparable, T any](idOf func(T) ID) *Selection[ID, T] {
	return &Selection[ID, T]{
		idOf:    idOf,
		entries: make(map[ID]*Entry[T]),
	}
}

// WithEligibility sets the predicate excluding records from selection, e.g.
// records structurally protected from removal. Ineligible records can never
// be selected.
func (s *Selection[ID, T]) WithEligibility(eligible func(T) bool) *Selection[ID, T] {
	s.eligible = eligible

	for _, entry := range s.entries {
		if entry.Selected && !s.IsEligible(entry.Ref) {
			entry.Selected = false
		}
	}

	return s
}

// IsEligible returns true if record may be selected.
func (s *Selection[ID, T]) IsEligible(record T) bool {
	return s.eligible == nil || s.eligible(record)
}

// Reconcile replaces the set of known records. Flags of records that are
// still present survive, new records start unselected and records that are
// gone are forgotten.
func (s *Selection[ID, T]) Reconcile(records []T) {
	entries := make(map[ID]*Entry[T], len(records))
	order := make([]ID, 0, len(records))
	addedEligible := false

	for _, record := range records {
		id := s.idOf(record)
		if _, dup := entries[id]; dup {
			continue
		}

		selected := false
		if prev, ok := s.entries[id]; ok {
			selected = prev.Selected && s.IsEligible(record)
		} else if s.IsEligible(record) {
			addedEligible = true
		}

		entries[id] = &Entry[T]{Selected: selected, Ref: record}
		order = append(order, id)
	}

	s.entries = entries
	s.order = order

	if addedEligible || len(order) == 0 {
		s.allSelected = false
	}
}

// Select sets the flag of one record. Returns false if the id is unknown or
// the record is not eligible for selection. Deselecting any record clears
// the all-selected flag.
func (s *Selection[ID, T]) Select(id ID, selected bool) bool {
	entry, ok := s.entries[id]
	if !ok {
		return false
	}

	if selected && !s.IsEligible(entry.Ref) {
		return false
	}

	entry.Selected = selected
	if !selected {
		s.allSelected = false
	}

	return true
}

// Toggle flips the flag of one record. Returns false if nothing changed.
func (s *Selection[ID, T]) Toggle(id ID) bool {
	return s.Select(id, !s.IsSelected(id))
}

// SelectAll applies the "select all" toggle to the visible records only.
// Selecting marks every visible eligible record; deselecting clears every
// visible record. Records hidden by the current filter keep their flags.
// The all-selected flag is only raised when at least one record got selected.
func (s *Selection[ID, T]) SelectAll(selected bool, visible []T) {
	marked := false

	for _, record := range visible {
		entry, ok := s.entries[s.idOf(record)]
		if !ok {
			continue
		}

		entry.Selected = selected && s.IsEligible(entry.Ref)
		marked = marked || entry.Selected
	}

	s.allSelected = marked
}

// IsSelected returns the flag of id. Unknown ids are not selected.
func (s *Selection[ID, T]) IsSelected(id ID) bool {
	entry, ok := s.entries[id]
	return ok && entry.Selected
}

// IsAllSelected returns the cached state of the "select all" toggle.
func (s *Selection[ID, T]) IsAllSelected() bool {
	return s.allSelected
}

// Entry returns a copy of the entry of id.
func (s *Selection[ID, T]) Entry(id ID) (Entry[T], bool) {
	entry, ok := s.entries[id]
	if !ok {
		return Entry[T]{}, false
	}

	return *entry, true
}

// Len returns the number of known records.
func (s *Selection[ID, T]) Len() int {
	return len(s.order)
}

// IDs returns ids of all known records in the order of the latest Reconcile.
func (s *Selection[ID, T]) IDs() []ID {
	return append([]ID(nil), s.order...)
}

// Selected returns all selected records, including the ones hidden by the
// current filter.
func (s *Selection[ID, T]) Selected() []T {
	return lo.FilterMap(s.order, func(id ID, _ int) (T, bool) {
		entry := s.entries[id]
		return entry.Ref, entry.Selected
	})
}

// VisibleSelected returns the records bulk actions apply to: selected records
// present in visible, in visible order.
func (s *Selection[ID, T]) VisibleSelected(visible []T) []T {
	return lo.Filter(visible, func(record T, _ int) bool {
		return s.IsSelected(s.idOf(record))
	})
}

// VisibleSelectedIDs is VisibleSelected returning ids.
func (s *Selection[ID, T]) VisibleSelectedIDs(visible []T) []ID {
	return lo.Map(s.VisibleSelected(visible), func(record T, _ int) ID {
		return s.idOf(record)
	})
}

// HasVisibleSelection returns true if any visible record is selected. Bulk
// action controls are hidden otherwise.
func (s *Selection[ID, T]) HasVisibleSelection(visible []T) bool {
	return lo.SomeBy(visible, func(record T) bool {
		return s.IsSelected(s.idOf(record))
	})
}
