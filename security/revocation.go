package security

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "jwt:blacklist:"

// RevocationList reports tokens revoked before their natural expiration.
type RevocationList interface {
	IsRevoked(ctx context.Context, token string) bool
}

// RevocationFunc adapts a function to RevocationList.
type RevocationFunc func(ctx context.Context, token string) bool

func (f RevocationFunc) IsRevoked(ctx context.Context, token string) bool { return f(ctx, token) }

// RedisRevocationList reads the blacklist the identity service writes on logout.
type RedisRevocationList struct {
	client *redis.Client
}

// NewRedisRevocationList returns a RevocationList backed by rc.
func NewRedisRevocationList(rc *redis.Client) *RedisRevocationList {
	return &RedisRevocationList{client: rc}
}

// IsRevoked fails open on Redis errors to avoid locking every caller out.
func (r *RedisRevocationList) IsRevoked(ctx context.Context, token string) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	n, err := r.client.Exists(ctx, revokedKeyPrefix+token).Result()
	if err != nil {
		return false
	}
	return n > 0
}
