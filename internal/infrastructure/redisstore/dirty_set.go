package redisstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/growth-partner/internal/application"
)

const DefaultDirtyKey = "snapshot:dirty_users"

// DirtySet tracks users awaiting a snapshot in a Redis set, so marks from
// every API instance are drained by whichever instance runs the sync.
type DirtySet struct {
	rdb *redis.Client
	key string
}

func NewDirtySet(rdb *redis.Client, key string) *DirtySet {
	if key == "" {
		key = DefaultDirtyKey
	}
	return &DirtySet{rdb: rdb, key: key}
}

func (d *DirtySet) Mark(ctx context.Context, userID string) error {
	return d.rdb.SAdd(ctx, d.key, userID).Err()
}

// Pop removes and returns up to n members.
func (d *DirtySet) Pop(ctx context.Context, n int) ([]string, error) {
	ids, err := d.rdb.SPopN(ctx, d.key, int64(n)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return ids, err
}

// Len reports how many users are waiting.
func (d *DirtySet) Len(ctx context.Context) (int64, error) {
	return d.rdb.SCard(ctx, d.key).Result()
}

var _ application.DirtyTracker = (*DirtySet)(nil)
