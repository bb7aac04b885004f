package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type sessionRepoRedis struct {
	rdb *redis.Client
}

func NewSessionRepoRedis(rdb *redis.Client) SessionRepo {
	return &sessionRepoRedis{rdb: rdb}
}

func (r *sessionRepoRedis) key(tok string) string { return "sess:" + tok }

func (r *sessionRepoRedis) Create(ctx context.Context, token string, s Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl < 0 {
		ttl = 0
	}
	// payload kept alongside the TTL for explicit expiry checks
	val, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, r.key(token), val, ttl).Err()
}

func (r *sessionRepoRedis) Lookup(ctx context.Context, token string) (*Session, error) {
	v, err := r.rdb.Get(ctx, r.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var s Session
	if err := json.Unmarshal([]byte(v), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepoRedis) Delete(ctx context.Context, token string) error {
	return r.rdb.Del(ctx, r.key(token)).Err()
}
