//go:build integration
// +build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/LoganMichel/logmi-app/internal/domain"
	redisrepo "github.com/LoganMichel/logmi-app/internal/repository/redis"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis, func()) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return client, mr, cleanup
}

func TestLinkCache_SetAndGet(t *testing.T) {
	redisClient, _, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := redisrepo.NewLinkCache(redisClient)
	ctx := context.Background()

	link := &domain.Link{
		ID:        uuid.New(),
		Variant:   domain.VariantTinyURL,
		ShortCode: "test123",
		LongURL:   "https://example.com",
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	key := redisrepo.CodeKey("test123")
	err := cache.SetLink(ctx, key, link, 10*time.Minute)
	require.NoError(t, err)

	result, err := cache.GetLink(ctx, key)
	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, link.ID, result.ID)
	assert.Equal(t, link.ShortCode, result.ShortCode)
	assert.Equal(t, link.LongURL, result.LongURL)
	assert.True(t, result.IsActive)
}

func TestLinkCache_GetMiss(t *testing.T) {
	redisClient, _, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := redisrepo.NewLinkCache(redisClient)

	result, err := cache.GetLink(context.Background(), redisrepo.CodeKey("missing"))
	assert.ErrorIs(t, err, redis.Nil)
	assert.Nil(t, result)
}

func TestLinkCache_TTLExpiry(t *testing.T) {
	redisClient, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := redisrepo.NewLinkCache(redisClient)
	ctx := context.Background()

	link := &domain.Link{
		ID:        uuid.New(),
		Variant:   domain.VariantTinyURL,
		ShortCode: "expire1",
		LongURL:   "https://example.com",
		IsActive:  true,
	}

	key := redisrepo.CodeKey("expire1")
	require.NoError(t, cache.SetLink(ctx, key, link, time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := cache.GetLink(ctx, key)
	assert.ErrorIs(t, err, redis.Nil)
}

func TestLinkCache_Invalidate(t *testing.T) {
	redisClient, _, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := redisrepo.NewLinkCache(redisClient)
	ctx := context.Background()

	link := &domain.Link{
		ID:       uuid.New(),
		Variant:  domain.VariantLinktree,
		Name:     "My Blog",
		LongURL:  "https://blog.example.com",
		IsActive: true,
	}

	key := redisrepo.IDKey(link.ID)
	require.NoError(t, cache.SetLink(ctx, key, link, time.Hour))
	require.NoError(t, cache.InvalidateLink(ctx, key))

	_, err := cache.GetLink(ctx, key)
	assert.ErrorIs(t, err, redis.Nil)
}

func TestLinkCache_InvalidateMissingKeyIsNoop(t *testing.T) {
	redisClient, _, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := redisrepo.NewLinkCache(redisClient)

	err := cache.InvalidateLink(context.Background(), redisrepo.CodeKey("never-set"))
	assert.NoError(t, err)
}
