package model

// VertexSet is a set of page identifiers that remembers insertion order.
// A page identifier is a plain string compared byte for byte; no case folding
// or percent-decoding is applied.
//
// VertexSet is not safe for concurrent use. The crawler only mutates it from
// the single goroutine that merges a finished level.
type VertexSet struct {
	index map[string]struct{}
	items []string
}

// NewVertexSet returns a set holding the given identifiers in order.
// Repeated identifiers are kept once.
func NewVertexSet(ids ...string) *VertexSet {
	s := &VertexSet{
		index: make(map[string]struct{}, len(ids)),
		items: make([]string, 0, len(ids)),
	}
	for _, id := range ids {
		s.Insert(id)
	}
	return s
}

// Insert adds id to the set and reports whether it was not present before.
func (s *VertexSet) Insert(id string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = struct{}{}
	s.items = append(s.items, id)
	return true
}

// Contains reports whether id is in the set.
func (s *VertexSet) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Len returns the number of identifiers in the set.
func (s *VertexSet) Len() int {
	return len(s.items)
}

// Items returns the identifiers in insertion order.
// The returned slice is a copy.
func (s *VertexSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}
