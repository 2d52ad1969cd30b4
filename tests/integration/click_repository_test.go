//go:build integration
// +build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/LoganMichel/logmi-app/internal/domain"
	"github.com/LoganMichel/logmi-app/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClickRepository_InsertAndListByLink(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()

	linkRepo := postgres.NewLinkRepository(db)
	clickRepo := postgres.NewClickRepository(db)
	ctx := context.Background()

	link := newTinyURL("clk0001", "https://example.com")
	require.NoError(t, linkRepo.Create(ctx, link))

	evt := &domain.ClickEvent{
		ID:         uuid.New(),
		LinkID:     link.ID,
		ViaQRCode:  true,
		DeviceType: domain.DeviceMobile,
		City:       "Lyon",
		Country:    "France",
		IPAddress:  "203.0.113.9",
		UserAgent:  "test-agent",
	}
	err := clickRepo.Insert(ctx, evt)
	require.NoError(t, err)
	assert.NotZero(t, evt.CreatedAt, "CreatedAt should be set by the insert")

	events, err := clickRepo.ListByLinkSince(ctx, link.ID, time.Now().AddDate(0, 0, -1))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].ViaQRCode)
	assert.Equal(t, "Lyon", events[0].City)
	assert.Equal(t, "France", events[0].Country)
	assert.Equal(t, domain.DeviceMobile, events[0].DeviceType)
}

func TestClickRepository_EmptyLocationRoundTrips(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()

	linkRepo := postgres.NewLinkRepository(db)
	clickRepo := postgres.NewClickRepository(db)
	ctx := context.Background()

	link := newTinyURL("clk0002", "https://example.com")
	require.NoError(t, linkRepo.Create(ctx, link))

	// Unresolved locations are stored as NULL and read back as empty.
	err := clickRepo.Insert(ctx, &domain.ClickEvent{
		ID:         uuid.New(),
		LinkID:     link.ID,
		DeviceType: domain.DeviceUnknown,
	})
	require.NoError(t, err)

	events, err := clickRepo.ListByLinkSince(ctx, link.ID, time.Now().AddDate(0, 0, -1))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Empty(t, events[0].City)
	assert.Empty(t, events[0].Country)
}

func TestClickRepository_ListByLinkSince_WindowExcludesNothingRecent(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()

	linkRepo := postgres.NewLinkRepository(db)
	clickRepo := postgres.NewClickRepository(db)
	ctx := context.Background()

	link := newTinyURL("clk0003", "https://example.com")
	require.NoError(t, linkRepo.Create(ctx, link))
	require.NoError(t, clickRepo.Insert(ctx, &domain.ClickEvent{
		ID:         uuid.New(),
		LinkID:     link.ID,
		DeviceType: domain.DeviceDesktop,
	}))

	// A window starting in the future excludes the fresh event.
	events, err := clickRepo.ListByLinkSince(ctx, link.ID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestClickRepository_ListByVariantSince(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()

	linkRepo := postgres.NewLinkRepository(db)
	clickRepo := postgres.NewClickRepository(db)
	ctx := context.Background()

	short := newTinyURL("clk0004", "https://example.com")
	require.NoError(t, linkRepo.Create(ctx, short))

	profile := &domain.Link{
		ID:       uuid.New(),
		Variant:  domain.VariantLinktree,
		Name:     "My Blog",
		LongURL:  "https://blog.example.com",
		Owner:    "alice",
		IsActive: true,
	}
	require.NoError(t, linkRepo.Create(ctx, profile))

	for _, linkID := range []uuid.UUID{short.ID, profile.ID} {
		require.NoError(t, clickRepo.Insert(ctx, &domain.ClickEvent{
			ID:         uuid.New(),
			LinkID:     linkID,
			DeviceType: domain.DeviceDesktop,
		}))
	}

	since := time.Now().AddDate(0, 0, -1)

	tinyEvents, err := clickRepo.ListByVariantSince(ctx, domain.VariantTinyURL, since)
	require.NoError(t, err)
	require.Len(t, tinyEvents, 1)
	assert.Equal(t, short.ID, tinyEvents[0].LinkID)

	treeEvents, err := clickRepo.ListByVariantSince(ctx, domain.VariantLinktree, since)
	require.NoError(t, err)
	require.Len(t, treeEvents, 1)
	assert.Equal(t, profile.ID, treeEvents[0].LinkID)
}

func TestClickRepository_RecentByVariant(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()

	linkRepo := postgres.NewLinkRepository(db)
	clickRepo := postgres.NewClickRepository(db)
	ctx := context.Background()

	link := newTinyURL("clk0005", "https://example.com")
	require.NoError(t, linkRepo.Create(ctx, link))

	for i := 0; i < 5; i++ {
		require.NoError(t, clickRepo.Insert(ctx, &domain.ClickEvent{
			ID:         uuid.New(),
			LinkID:     link.ID,
			DeviceType: domain.DeviceDesktop,
		}))
	}

	events, err := clickRepo.RecentByVariant(ctx, domain.VariantTinyURL, 3)
	require.NoError(t, err)
	assert.Len(t, events, 3)
	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].CreatedAt.After(events[i-1].CreatedAt),
			"events should come back most recent first")
	}
}
