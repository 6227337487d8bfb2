package harvest

import "context"

// LinkSet is an insertion-ordered set of links.
// Links are opaque absolute URLs compared by exact string match.
// The zero value is an empty set ready to use.
type LinkSet struct {
	index map[string]struct{}
	order []string
}

// NewLinkSet returns a set containing the given links.
// Empty strings and duplicates are dropped.
func NewLinkSet(links ...string) *LinkSet {
	s := &LinkSet{}
	for _, link := range links {
		s.Add(link)
	}
	return s
}

// Add inserts a link. Returns false if the link is empty or already present.
func (s *LinkSet) Add(link string) bool {
	if link == "" {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[link]; ok {
		return false
	}
	s.index[link] = struct{}{}
	s.order = append(s.order, link)
	return true
}

// Has reports whether the link is in the set.
func (s *LinkSet) Has(link string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[link]
	return ok
}

// Len returns the number of links in the set.
func (s *LinkSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Links returns the links in insertion order.
// The returned slice is a copy.
func (s *LinkSet) Links() []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Difference returns the links of s that are not in other.
func (s *LinkSet) Difference(other *LinkSet) *LinkSet {
	d := &LinkSet{}
	if s == nil {
		return d
	}
	for _, link := range s.order {
		if !other.Has(link) {
			d.Add(link)
		}
	}
	return d
}

// Merge adds every incoming link to s and returns the delta: the incoming
// links that were not in s at the time of the call.
func (s *LinkSet) Merge(incoming *LinkSet) *LinkSet {
	delta := incoming.Difference(s)
	for _, link := range delta.order {
		s.Add(link)
	}
	return delta
}

// LinkWriter persists an ordered sequence of links.
type LinkWriter interface {
	WriteLinks(ctx context.Context, links []string) error
}

// LinkReader loads a previously persisted sequence of links.
type LinkReader interface {
	ReadLinks(ctx context.Context) ([]string, error)
}
