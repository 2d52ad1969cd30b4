// Package redis caches resolved links so hot redirects skip the database.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/LoganMichel/logmi-app/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type LinkCache struct {
	client *redis.Client
}

func NewLinkCache(client *redis.Client) *LinkCache {
	return &LinkCache{client: client}
}

// CodeKey addresses a tinyurl link by short code.
func CodeKey(shortCode string) string {
	return fmt.Sprintf("link:code:%s", shortCode)
}

// IDKey addresses a linktree entry by its opaque ID.
func IDKey(id uuid.UUID) string {
	return fmt.Sprintf("link:id:%s", id)
}

func (c *LinkCache) GetLink(ctx context.Context, key string) (*domain.Link, error) {
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var link domain.Link
	if err := json.Unmarshal([]byte(data), &link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *LinkCache) SetLink(ctx context.Context, key string, link *domain.Link, ttl time.Duration) error {
	data, err := json.Marshal(link)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

// InvalidateLink drops a cached entry after a mutation so a stale
// destination or active flag cannot outlive the change by more than one
// in-flight request.
func (c *LinkCache) InvalidateLink(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
