package blobstore

import (
	"context"
	"errors"
	"time"

	pkgredis "github.com/angelmondragon/lavka-miniapp/pkg/redis"
)

type redisClient interface {
	GetBytes(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	BlobKey(name string) string
}

// Redis stores each blob as a plain string value without expiry.
type Redis struct {
	client redisClient
}

func NewRedis(client redisClient) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := r.client.GetBytes(ctx, r.client.BlobKey(key))
	if err != nil {
		if errors.Is(err, pkgredis.ErrNil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return raw, nil
}

func (r *Redis) Put(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, r.client.BlobKey(key), value, 0)
}
