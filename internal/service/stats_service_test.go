package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/LoganMichel/logmi-app/internal/domain"
	"github.com/LoganMichel/logmi-app/internal/service"
	"github.com/LoganMichel/logmi-app/tests/mocks"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDays(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"", 30},
		{"abc", 30},
		{"0", 30},
		{"-5", 30},
		{"366", 30},
		{"1", 1},
		{"7", 7},
		{"365", 365},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, service.NormalizeDays(tc.raw), "raw %q", tc.raw)
	}
}

func TestStatsForShortCode(t *testing.T) {
	links := new(mocks.MockLinkRepository)
	clicks := new(mocks.MockClickRepository)
	svc := service.NewStatsService(links, clicks, time.UTC)

	link := &domain.Link{ID: uuid.New(), Variant: domain.VariantTinyURL, ShortCode: "abc123"}
	events := []domain.ClickEvent{
		{LinkID: link.ID, ViaQRCode: true, DeviceType: domain.DeviceMobile, Country: "France", CreatedAt: time.Now()},
		{LinkID: link.ID, DeviceType: domain.DeviceDesktop, Country: "France", CreatedAt: time.Now()},
	}

	links.On("GetByShortCode", mock.Anything, "abc123").Return(link, nil).Once()
	clicks.On("ListByLinkSince", mock.Anything, link.ID, mock.MatchedBy(func(since time.Time) bool {
		// A 7 day window starts about 7 days ago.
		want := time.Now().AddDate(0, 0, -7)
		return since.Sub(want).Abs() < time.Minute
	})).Return(events, nil).Once()

	summary, err := svc.StatsForShortCode(context.Background(), "abc123", 7)

	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalClicks)
	assert.Equal(t, int64(1), summary.QRCodeClicks)
	assert.Equal(t, int64(1), summary.DirectClicks)
	clicks.AssertExpectations(t)
}

func TestStatsForShortCode_UnknownLink(t *testing.T) {
	links := new(mocks.MockLinkRepository)
	clicks := new(mocks.MockClickRepository)
	svc := service.NewStatsService(links, clicks, time.UTC)

	links.On("GetByShortCode", mock.Anything, "ghost").Return(nil, pgx.ErrNoRows).Once()

	_, err := svc.StatsForShortCode(context.Background(), "ghost", 30)
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)
	clicks.AssertNotCalled(t, "ListByLinkSince", mock.Anything, mock.Anything, mock.Anything)
}

func TestStatsForLink_InactiveStillReports(t *testing.T) {
	links := new(mocks.MockLinkRepository)
	clicks := new(mocks.MockClickRepository)
	svc := service.NewStatsService(links, clicks, time.UTC)

	link := &domain.Link{ID: uuid.New(), Variant: domain.VariantLinktree, IsActive: false}
	links.On("GetByID", mock.Anything, link.ID).Return(link, nil).Once()
	clicks.On("ListByLinkSince", mock.Anything, link.ID, mock.Anything).Return([]domain.ClickEvent{}, nil).Once()

	summary, err := svc.StatsForLink(context.Background(), link.ID, 30)

	require.NoError(t, err)
	assert.Zero(t, summary.TotalClicks)
}

func TestDashboardStats(t *testing.T) {
	links := new(mocks.MockLinkRepository)
	clicks := new(mocks.MockClickRepository)
	svc := service.NewStatsService(links, clicks, time.UTC)

	hot := domain.Link{ID: uuid.New(), Variant: domain.VariantTinyURL, ShortCode: "hot123", LongURL: "https://hot.example.com"}
	cold := domain.Link{ID: uuid.New(), Variant: domain.VariantTinyURL, ShortCode: "cold12", LongURL: "https://cold.example.com"}

	events := []domain.ClickEvent{
		{LinkID: hot.ID, DeviceType: domain.DeviceMobile, CreatedAt: time.Now()},
		{LinkID: hot.ID, DeviceType: domain.DeviceDesktop, CreatedAt: time.Now()},
		{LinkID: cold.ID, DeviceType: domain.DeviceDesktop, CreatedAt: time.Now()},
	}
	recent := []domain.ClickEvent{events[2], events[1]}

	links.On("CountByVariant", mock.Anything, domain.VariantTinyURL).Return(int64(5), int64(4), nil).Once()
	clicks.On("ListByVariantSince", mock.Anything, domain.VariantTinyURL, mock.Anything).Return(events, nil).Once()
	clicks.On("RecentByVariant", mock.Anything, domain.VariantTinyURL, 10).Return(recent, nil).Once()
	links.On("ListByIDs", mock.Anything, mock.MatchedBy(func(ids []uuid.UUID) bool {
		return len(ids) == 2 && ids[0] == hot.ID
	})).Return([]domain.Link{hot, cold}, nil).Once()

	dash, err := svc.DashboardStats(context.Background(), domain.VariantTinyURL, 30)

	require.NoError(t, err)
	assert.Equal(t, int64(5), dash.TotalLinks)
	assert.Equal(t, int64(4), dash.ActiveLinks)
	assert.Equal(t, int64(3), dash.TotalClicks)
	require.Len(t, dash.TopLinks, 2)
	assert.Equal(t, "hot123", dash.TopLinks[0].ShortCode)
	assert.Equal(t, int64(2), dash.TopLinks[0].ClickCount)
	assert.Len(t, dash.RecentClicks, 2)
	links.AssertExpectations(t)
	clicks.AssertExpectations(t)
}

func TestDashboardStats_SkipsDeletedTopLink(t *testing.T) {
	links := new(mocks.MockLinkRepository)
	clicks := new(mocks.MockClickRepository)
	svc := service.NewStatsService(links, clicks, time.UTC)

	survivor := domain.Link{ID: uuid.New(), Variant: domain.VariantTinyURL, ShortCode: "alive1", LongURL: "https://example.com"}
	deletedID := uuid.New()

	events := []domain.ClickEvent{
		{LinkID: deletedID, DeviceType: domain.DeviceMobile, CreatedAt: time.Now()},
		{LinkID: deletedID, DeviceType: domain.DeviceMobile, CreatedAt: time.Now()},
		{LinkID: survivor.ID, DeviceType: domain.DeviceDesktop, CreatedAt: time.Now()},
	}

	links.On("CountByVariant", mock.Anything, domain.VariantTinyURL).Return(int64(1), int64(1), nil).Once()
	clicks.On("ListByVariantSince", mock.Anything, domain.VariantTinyURL, mock.Anything).Return(events, nil).Once()
	clicks.On("RecentByVariant", mock.Anything, domain.VariantTinyURL, 10).Return([]domain.ClickEvent{}, nil).Once()
	links.On("ListByIDs", mock.Anything, mock.Anything).Return([]domain.Link{survivor}, nil).Once()

	dash, err := svc.DashboardStats(context.Background(), domain.VariantTinyURL, 30)

	require.NoError(t, err)
	require.Len(t, dash.TopLinks, 1)
	assert.Equal(t, survivor.ID, dash.TopLinks[0].ID)
}
