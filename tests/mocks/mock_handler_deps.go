package mocks

import (
	"context"

	"github.com/LoganMichel/logmi-app/internal/domain"
	"github.com/LoganMichel/logmi-app/internal/service"
	"github.com/LoganMichel/logmi-app/internal/stats"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRedirectResolver struct {
	mock.Mock
}

func (m *MockRedirectResolver) ResolveShortCode(ctx context.Context, shortCode string) (*domain.Link, error) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

func (m *MockRedirectResolver) ResolveLinkID(ctx context.Context, rawID string) (*domain.Link, error) {
	args := m.Called(ctx, rawID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

func (m *MockRedirectResolver) TrackClick(ctx context.Context, link *domain.Link, cc domain.ClickContext) error {
	args := m.Called(ctx, link, cc)
	return args.Error(0)
}

type MockLinkManager struct {
	mock.Mock
}

func (m *MockLinkManager) ShortenURL(ctx context.Context, req *domain.ShortenRequest) (*domain.Link, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

func (m *MockLinkManager) CreateLinktreeLink(ctx context.Context, req *domain.CreateLinkRequest) (*domain.Link, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

func (m *MockLinkManager) ListTinyURLs(ctx context.Context) ([]domain.LinkWithClicks, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LinkWithClicks), args.Error(1)
}

func (m *MockLinkManager) ListLinktree(ctx context.Context, owner string) ([]domain.LinkWithClicks, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LinkWithClicks), args.Error(1)
}

func (m *MockLinkManager) GetByShortCode(ctx context.Context, shortCode string) (*domain.Link, error) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

func (m *MockLinkManager) GetByID(ctx context.Context, id uuid.UUID) (*domain.Link, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

func (m *MockLinkManager) UpdateLink(ctx context.Context, id uuid.UUID, req *domain.UpdateLinkRequest) (*domain.Link, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

func (m *MockLinkManager) DeleteLink(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLinkManager) DeleteByShortCode(ctx context.Context, shortCode string) error {
	args := m.Called(ctx, shortCode)
	return args.Error(0)
}

type MockStatsProvider struct {
	mock.Mock
}

func (m *MockStatsProvider) StatsForShortCode(ctx context.Context, shortCode string, days int) (*stats.Summary, error) {
	args := m.Called(ctx, shortCode, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stats.Summary), args.Error(1)
}

func (m *MockStatsProvider) StatsForLink(ctx context.Context, id uuid.UUID, days int) (*stats.Summary, error) {
	args := m.Called(ctx, id, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stats.Summary), args.Error(1)
}

func (m *MockStatsProvider) DashboardStats(ctx context.Context, variant domain.Variant, days int) (*service.Dashboard, error) {
	args := m.Called(ctx, variant, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Dashboard), args.Error(1)
}
