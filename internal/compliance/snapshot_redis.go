package compliance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"fueleu/pkg/platform/sentinel"
)

const (
	// Redis key prefix for the latest snapshot per (ship, year)
	snapshotKeyPrefix = "cb:snapshot:"
)

// RedisSnapshotStore keeps only the latest snapshot per key in Redis.
// Suitable for deployments that treat snapshots as a shared cache across
// instances; full history stays in the primary store when one is wired.
type RedisSnapshotStore struct {
	client *redis.Client
}

// NewRedisSnapshotStore constructs a Redis-backed snapshot store.
func NewRedisSnapshotStore(client *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client}
}

func redisSnapshotKey(shipID string, year int) string {
	return fmt.Sprintf("%s%s:%d", snapshotKeyPrefix, shipID, year)
}

func (s *RedisSnapshotStore) Latest(ctx context.Context, shipID string, year int) (Snapshot, error) {
	raw, err := s.client.Get(ctx, redisSnapshotKey(shipID, year)).Result()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("get snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

func (s *RedisSnapshotStore) Append(ctx context.Context, snapshot Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	// Last write wins; snapshot appends are monotonically newer.
	if err := s.client.Set(ctx, redisSnapshotKey(snapshot.ShipID, snapshot.Year), raw, 0).Err(); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}
