//go:build integration
// +build integration

package snapshots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	weatherdomain "github.com/KirkDiggler/hexcrawl-survival/internal/domain/weather"
	apperrors "github.com/KirkDiggler/hexcrawl-survival/internal/errors"
	"github.com/KirkDiggler/hexcrawl-survival/internal/services/simulation"
	"github.com/KirkDiggler/hexcrawl-survival/internal/services/weather"
	"github.com/KirkDiggler/hexcrawl-survival/internal/testutils"
)

func TestRedisRepositoryIntegration(t *testing.T) {
	client := testutils.CreateTestRedisClientOrSkip(t)

	repo := NewRedisRepository(&RedisRepoConfig{
		Client:      client,
		SnapshotTTL: time.Minute,
	})
	ctx := context.Background()

	snap := &simulation.Snapshot{
		SchemaVersion: simulation.SchemaVersion,
		Weather: &weather.Snapshot{
			State: weatherdomain.State{TypeID: "dust_storm", Remaining: 4, Intensity: 1.0},
		},
	}

	// Save and load round trip
	require.NoError(t, repo.Save(ctx, "integration-session", snap))

	loaded, err := repo.Load(ctx, "integration-session")
	require.NoError(t, err)
	assert.Equal(t, simulation.SchemaVersion, loaded.SchemaVersion)
	require.NotNil(t, loaded.Weather)
	assert.Equal(t, "dust_storm", loaded.Weather.State.TypeID)
	assert.Equal(t, 4, loaded.Weather.State.Remaining)

	// The index tracks the session
	ids, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "integration-session")

	// Keys carry the configured TTL
	ttl := client.TTL(ctx, "snapshot:integration-session").Val()
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)

	// Delete removes both the value and the index entry
	require.NoError(t, repo.Delete(ctx, "integration-session"))

	_, err = repo.Load(ctx, "integration-session")
	assert.True(t, apperrors.IsNotFound(err))

	ids, err = repo.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, ids, "integration-session")
}
