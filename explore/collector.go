package explore

import "github.com/fwojciec/harvest"

// Collector accumulates links across turns.
//
// New links are computed against the previous turn's view only, not against
// everything collected so far. A link that disappears for a turn and comes
// back counts as new again for the stopping heuristics; Collected still holds
// it once.
type Collector struct {
	Collected *harvest.LinkSet
	LastSeen  *harvest.LinkSet
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		Collected: harvest.NewLinkSet(),
		LastSeen:  harvest.NewLinkSet(),
	}
}

// Observe records the links visible in the current view and returns the
// ones absent from the previous view.
func (c *Collector) Observe(current *harvest.LinkSet) *harvest.LinkSet {
	if current == nil {
		current = harvest.NewLinkSet()
	}
	delta := current.Difference(c.LastSeen)
	c.Collected.Merge(delta)
	c.LastSeen = current
	return delta
}

// Links returns every collected link.
func (c *Collector) Links() []string {
	return c.Collected.Links()
}

// State is the mutable state threaded through one exploration.
type State struct {
	*Collector

	// NoNewLinksStreak counts consecutive turns whose views held nothing
	// absent from the view before them.
	NoNewLinksStreak int

	// NoLoadMoreStreak counts consecutive turns without a clickable
	// "load more" control.
	NoLoadMoreStreak int

	// Turn is the current page or iteration number, starting at 1.
	Turn int
}

func newState() *State {
	return &State{
		Collector: NewCollector(),
		Turn:      1,
	}
}

// recordDelta updates the no-new-links streak from a turn's delta.
func (s *State) recordDelta(delta *harvest.LinkSet) {
	if delta.Len() == 0 {
		s.NoNewLinksStreak++
		return
	}
	s.NoNewLinksStreak = 0
}
