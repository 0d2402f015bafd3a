package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const verificationTTL = 24 * time.Hour

// VerificationCache stores serialized email verification reports in Redis so
// repeat lookups for the same address do not spend verification-service quota.
// Key format: emailverify:<lower-cased address>
type VerificationCache struct {
	client *redis.Client
}

// NewVerificationCache creates a VerificationCache wrapping the given client.
func NewVerificationCache(client *redis.Client) *VerificationCache {
	return &VerificationCache{client: client}
}

// Get returns the cached report payload for the address, or nil when absent.
func (c *VerificationCache) Get(ctx context.Context, email string) ([]byte, error) {
	payload, err := c.client.Get(ctx, c.key(email)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("verification cache get: %w", err)
	}
	return payload, nil
}

// Set records the report payload for the address (expires after verificationTTL).
func (c *VerificationCache) Set(ctx context.Context, email string, payload []byte) error {
	if err := c.client.Set(ctx, c.key(email), payload, verificationTTL).Err(); err != nil {
		return fmt.Errorf("verification cache set: %w", err)
	}
	return nil
}

func (c *VerificationCache) key(email string) string {
	return "emailverify:" + strings.ToLower(email)
}
