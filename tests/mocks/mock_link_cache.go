package mocks

import (
	"context"
	"time"

	"github.com/LoganMichel/logmi-app/internal/domain"
	"github.com/LoganMichel/logmi-app/pkg/geoip"
	"github.com/stretchr/testify/mock"
)

type MockLinkCache struct {
	mock.Mock
}

func (m *MockLinkCache) GetLink(ctx context.Context, key string) (*domain.Link, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

func (m *MockLinkCache) SetLink(ctx context.Context, key string, link *domain.Link, ttl time.Duration) error {
	args := m.Called(ctx, key, link, ttl)
	return args.Error(0)
}

func (m *MockLinkCache) InvalidateLink(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockGeoResolver struct {
	mock.Mock
}

func (m *MockGeoResolver) Resolve(ip string) geoip.Location {
	args := m.Called(ip)
	return args.Get(0).(geoip.Location)
}
