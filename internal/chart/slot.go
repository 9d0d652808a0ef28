package chart

import (
	"sync"

	"titanic/domain/core"
)

// Slot holds the single live comparison chart of a page. At most one chart is live at a time.
type Slot struct {
	mu   sync.Mutex
	live *Snippet
}

// Replace installs next, releasing the current occupant first.
// The returned id is the released chart, empty when the slot was vacant.
func (s *Slot) Replace(next Snippet) core.ChartID {
	s.mu.Lock()
	defer s.mu.Unlock()

	var released core.ChartID
	if s.live != nil {
		released = s.live.ID
		s.live = nil
	}
	next.Release = released
	s.live = &next
	return released
}

// Release empties the slot and returns the id of the chart that was live
func (s *Slot) Release() core.ChartID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.live == nil {
		return ""
	}
	id := s.live.ID
	s.live = nil
	return id
}

// Current returns the live chart, if any
func (s *Slot) Current() (Snippet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.live == nil {
		return Snippet{}, false
	}
	return *s.live, true
}

// Live reports how many charts the slot holds (0 or 1)
func (s *Slot) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.live == nil {
		return 0
	}
	return 1
}
