package client

import "sort"

// Selection tracks which shipment rows are checked across every group of
// a report. Backed by a hash set: toggles are O(1) regardless of how
// many rows the report holds.
type Selection struct {
	ids map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle flips the membership of one row id
func (s *Selection) Toggle(id string) {
	if _, selected := s.ids[id]; selected {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// SelectAll marks every given row id as selected
func (s *Selection) SelectAll(ids []string) {
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

// Clear empties the selection
func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
}

func (s *Selection) Has(id string) bool {
	_, selected := s.ids[id]
	return selected
}

func (s *Selection) Count() int {
	return len(s.ids)
}

// IDs returns the selected ids in sorted order so bulk requests are
// deterministic
func (s *Selection) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
