package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/anurakx/villadesk/config"
	"github.com/anurakx/villadesk/internal/domain"
)

// Snapshot is the cached view of the property state used by the
// dashboard read path. Rooms come from static inventory, bookings
// from the upstream booking system.
type Snapshot struct {
	Rooms     []domain.Room    `json:"rooms"`
	Bookings  []domain.Booking `json:"bookings"`
	FetchedAt time.Time        `json:"fetchedAt"`
}

type RedisCache struct {
	client      *redis.Client
	snapshotTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, snapshotTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		snapshotTTL: snapshotTTL,
	}
}

// GetSnapshot returns the cached snapshot, or nil on a cache miss.
func (c *RedisCache) GetSnapshot(ctx context.Context) (*Snapshot, error) {
	data, err := c.client.Get(ctx, snapshotKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *RedisCache) SetSnapshot(ctx context.Context, snap *Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, snapshotKey(), payload, c.snapshotTTL).Err()
}

// Invalidate drops the cached snapshot so the next read refetches
// from the booking backend. Called after every write operation.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, snapshotKey()).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func snapshotKey() string {
	return "cache:snapshot"
}
