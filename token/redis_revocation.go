package token

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/jrsteele09/go-club-server/internal/errors"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "club:revoked:"

var _ Denylist = (*RedisDenylist)(nil)

// RedisDenylist shares revocations between server instances. Keys expire
// together with the token so the set never grows past the live tokens.
type RedisDenylist struct {
	client  *redis.Client
	nowFunc func() time.Time
}

// NewRedisDenylist connects to url (redis://...) and pings it
func NewRedisDenylist(ctx context.Context, url string) (*RedisDenylist, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("[token NewRedisDenylist] parse url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, apperrors.Store("token NewRedisDenylist", err)
	}
	return &RedisDenylist{client: client, nowFunc: time.Now}, nil
}

func (d *RedisDenylist) Revoke(ctx context.Context, jti string, exp time.Time) error {
	ttl := exp.Sub(d.nowFunc())
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, redisKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return apperrors.Store("token RedisDenylist.Revoke", err)
	}
	return nil
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, redisKeyPrefix+jti).Result()
	if err != nil {
		return false, apperrors.Store("token RedisDenylist.IsRevoked", err)
	}
	return n > 0, nil
}

func (d *RedisDenylist) Close() error {
	return d.client.Close()
}
