// Package redis implements the verification challenge store on Redis,
// relying on per-key TTLs for expiry.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/cypresslabs/identity-server/internal/model"
)

// codeKeyPrefix namespaces verification code keys.
const codeKeyPrefix = "verification:code:"

var _ model.ChallengeStore = (*ChallengeRepository)(nil)

// NewClient connects a Redis client for the given URL and verifies the
// connection with a ping.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// ChallengeRepository stores one live code per phone; Set overwrites and
// restarts the TTL window.
type ChallengeRepository struct {
	client *redis.Client
}

func NewChallengeRepository(client *redis.Client) *ChallengeRepository {
	return &ChallengeRepository{
		client: client,
	}
}

func (r *ChallengeRepository) Set(ctx context.Context, phone, code string, ttl time.Duration) error {
	if err := r.client.Set(ctx, codeKey(phone), code, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}
	return nil
}

func (r *ChallengeRepository) Get(ctx context.Context, phone string) (string, bool, error) {
	code, err := r.client.Get(ctx, codeKey(phone)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read verification code: %w", err)
	}

	return code, true, nil
}

func (r *ChallengeRepository) Delete(ctx context.Context, phone string) error {
	if err := r.client.Del(ctx, codeKey(phone)).Err(); err != nil {
		return fmt.Errorf("failed to delete verification code: %w", err)
	}
	return nil
}

func codeKey(phone string) string {
	return codeKeyPrefix + phone
}
