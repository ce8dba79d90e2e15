package daemon

import (
	"dropdate/internal/model"
	"sync"
)

// State keeps the most recent run for the status endpoint. Nothing here
// outlives the process.
type State struct {
	mu   sync.RWMutex
	last *model.RunResult
	runs int
}

func NewState() *State {
	return &State{}
}

func (s *State) Record(result model.RunResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.last = &result
	s.runs++
}

func (s *State) Last() (model.RunSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.last == nil {
		return model.RunSnapshot{}, false
	}

	return s.last.Snapshot(), true
}

func (s *State) Runs() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runs
}
