// Package flash carries one-shot notices from the request that records them
// to the next request that renders a view.
package flash

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Kind classifies a notice for display.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Message is a single user-visible notice.
type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Store persists pending notices per browser client.
type Store interface {
	Add(ctx context.Context, clientID string, msg Message) error
	Pop(ctx context.Context, clientID string) ([]Message, error)
}

const keyPrefix = "flash:"

// RedisStore keeps notices in a Redis list per client that expires after ttl.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a store on the given client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Add appends msg to the client's queue and refreshes its expiry.
func (s *RedisStore) Add(ctx context.Context, clientID string, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode notice: %w", err)
	}
	key := keyPrefix + clientID
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, payload)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("store notice: %w", err)
	}
	return nil
}

// Pop returns the client's queued notices in insertion order and clears them.
func (s *RedisStore) Pop(ctx context.Context, clientID string) ([]Message, error) {
	key := keyPrefix + clientID
	var rangeCmd *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		rangeCmd = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pop notices: %w", err)
	}

	raw := rangeCmd.Val()
	messages := make([]Message, 0, len(raw))
	for _, item := range raw {
		var msg Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("decode notice: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
