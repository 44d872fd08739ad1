package snapshots

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/KirkDiggler/hexcrawl-survival/internal/errors"
	"github.com/KirkDiggler/hexcrawl-survival/internal/services/simulation"
)

const (
	snapshotKeyPrefix = "snapshot:"
	snapshotIndexKey  = "snapshots"

	// TTL for stored sessions (30 days)
	snapshotTTL = 30 * 24 * time.Hour
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client      redis.UniversalClient
	SnapshotTTL time.Duration
}

// redisRepository implements Repository using Redis
type redisRepository struct {
	client      redis.UniversalClient
	snapshotTTL time.Duration
}

// NewRedisRepository creates a new Redis-backed snapshot repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	ttl := cfg.SnapshotTTL
	if ttl == 0 {
		ttl = snapshotTTL
	}

	return &redisRepository{
		client:      cfg.Client,
		snapshotTTL: ttl,
	}
}

func snapshotKey(sessionID string) string {
	return snapshotKeyPrefix + sessionID
}

func (r *redisRepository) Save(ctx context.Context, sessionID string, snap *simulation.Snapshot) error {
	if sessionID == "" {
		return apperrors.InvalidArgument("session id cannot be empty")
	}
	if snap == nil {
		return apperrors.InvalidArgument("snapshot cannot be nil")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return apperrors.Wrap(err, "failed to serialize snapshot")
	}

	// Pipeline keeps the value and the index in step
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, snapshotKey(sessionID), data, r.snapshotTTL)
	pipe.SAdd(ctx, snapshotIndexKey, sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.WrapWithCode(err, apperrors.CodeUnavailable, "failed to store snapshot")
	}

	return nil
}

func (r *redisRepository) Load(ctx context.Context, sessionID string) (*simulation.Snapshot, error) {
	data, err := r.client.Get(ctx, snapshotKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, apperrors.NotFoundf("no snapshot for session %q", sessionID)
	}
	if err != nil {
		return nil, apperrors.WrapWithCode(err, apperrors.CodeUnavailable, "failed to load snapshot")
	}

	var snap simulation.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, apperrors.Wrap(err, "failed to deserialize snapshot")
	}
	return &snap, nil
}

func (r *redisRepository) Delete(ctx context.Context, sessionID string) error {
	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, snapshotKey(sessionID))
	pipe.SRem(ctx, snapshotIndexKey, sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.WrapWithCode(err, apperrors.CodeUnavailable, "failed to delete snapshot")
	}

	if del.Val() == 0 {
		return apperrors.NotFoundf("no snapshot for session %q", sessionID)
	}
	return nil
}

func (r *redisRepository) List(ctx context.Context) ([]string, error) {
	ids, err := r.client.SMembers(ctx, snapshotIndexKey).Result()
	if err != nil {
		return nil, apperrors.WrapWithCode(err, apperrors.CodeUnavailable, "failed to list snapshots")
	}
	return ids, nil
}
