package connection

import "sync"

// Stats is a snapshot of request counters
type Stats struct {
	InFlight  int
	Succeeded int
	Failed    int
}

// State tracks requests made through a Manager
type State struct {
	stats Stats
	mu    sync.RWMutex
}

// NewState creates an empty request tracker
func NewState() *State {
	return &State{}
}

func (s *State) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.InFlight++
}

func (s *State) finish(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.InFlight--
	if ok {
		s.stats.Succeeded++
	} else {
		s.stats.Failed++
	}
}

// GetStats returns a copy of the current counters
func (s *State) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}
