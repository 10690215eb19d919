package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList records sessions ended by logout before their expiry.
type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const revokedPrefix = "session:revoked:"

// RedisRevocationList stores revoked token ids until they would have expired anyway.
type RedisRevocationList struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisRevocationList constructs the list on client.
func NewRedisRevocationList(client *redis.Client) *RedisRevocationList {
	return &RedisRevocationList{client: client, now: time.Now}
}

// Revoke marks tokenID as ended. Tokens already past until need no entry.
func (l *RedisRevocationList) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(l.now())
	if ttl <= 0 {
		return nil
	}
	return l.client.Set(ctx, revokedPrefix+tokenID, 1, ttl).Err()
}

// IsRevoked reports whether tokenID was revoked.
func (l *RedisRevocationList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := l.client.Exists(ctx, revokedPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
