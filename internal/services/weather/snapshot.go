package weather

import (
	weatherdomain "github.com/KirkDiggler/hexcrawl-survival/internal/domain/weather"
)

// Snapshot is the weather service's mutable state
type Snapshot struct {
	State weatherdomain.State `json:"state"`
}

func (s *service) ToSnapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &Snapshot{State: s.state}
}

func (s *service) RestoreSnapshot(snap *Snapshot) {
	if snap == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = snap.State
	if s.state.TypeID == "" {
		s.state.TypeID = weatherdomain.TypeClear
	}
}
