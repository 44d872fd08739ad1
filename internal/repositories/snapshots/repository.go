package snapshots

//go:generate mockgen -destination=mock/mock_repository.go -package=mocksnapshots -source=repository.go

import (
	"context"

	"github.com/KirkDiggler/hexcrawl-survival/internal/services/simulation"
)

// Repository stores session snapshots keyed by session id
type Repository interface {
	// Save persists the snapshot for a session
	Save(ctx context.Context, sessionID string, snap *simulation.Snapshot) error

	// Load retrieves the snapshot for a session
	Load(ctx context.Context, sessionID string) (*simulation.Snapshot, error)

	// Delete removes a session's snapshot
	Delete(ctx context.Context, sessionID string) error

	// List returns the session ids with stored snapshots
	List(ctx context.Context) ([]string, error)
}
