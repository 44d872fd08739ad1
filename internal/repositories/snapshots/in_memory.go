package snapshots

import (
	"context"
	"encoding/json"
	"sync"

	apperrors "github.com/KirkDiggler/hexcrawl-survival/internal/errors"
	"github.com/KirkDiggler/hexcrawl-survival/internal/services/simulation"
)

// inMemoryRepository implements Repository with a map, for tests and
// sessions that do not need persistence
type inMemoryRepository struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewInMemoryRepository creates a new in-memory snapshot repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		snapshots: make(map[string][]byte),
	}
}

func (r *inMemoryRepository) Save(_ context.Context, sessionID string, snap *simulation.Snapshot) error {
	if sessionID == "" {
		return apperrors.InvalidArgument("session id cannot be empty")
	}
	if snap == nil {
		return apperrors.InvalidArgument("snapshot cannot be nil")
	}

	// Serialize to decouple stored state from the caller's pointers
	data, err := json.Marshal(snap)
	if err != nil {
		return apperrors.Wrap(err, "failed to serialize snapshot")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[sessionID] = data
	return nil
}

func (r *inMemoryRepository) Load(_ context.Context, sessionID string) (*simulation.Snapshot, error) {
	r.mu.RLock()
	data, ok := r.snapshots[sessionID]
	r.mu.RUnlock()

	if !ok {
		return nil, apperrors.NotFoundf("no snapshot for session %q", sessionID)
	}

	var snap simulation.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, apperrors.Wrap(err, "failed to deserialize snapshot")
	}
	return &snap, nil
}

func (r *inMemoryRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.snapshots[sessionID]; !ok {
		return apperrors.NotFoundf("no snapshot for session %q", sessionID)
	}
	delete(r.snapshots, sessionID)
	return nil
}

func (r *inMemoryRepository) List(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.snapshots))
	for id := range r.snapshots {
		ids = append(ids, id)
	}
	return ids, nil
}
