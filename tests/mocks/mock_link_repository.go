package mocks

import (
	"context"
	"time"

	"github.com/LoganMichel/logmi-app/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockLinkRepository struct {
	mock.Mock
}

func (m *MockLinkRepository) Create(ctx context.Context, link *domain.Link) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockLinkRepository) GetActiveByShortCode(ctx context.Context, shortCode string) (*domain.Link, error) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

func (m *MockLinkRepository) GetByShortCode(ctx context.Context, shortCode string) (*domain.Link, error) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

func (m *MockLinkRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.Link, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

func (m *MockLinkRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Link, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

func (m *MockLinkRepository) ExistsShortCode(ctx context.Context, shortCode string) (bool, error) {
	args := m.Called(ctx, shortCode)
	return args.Bool(0), args.Error(1)
}

func (m *MockLinkRepository) ListTinyURLs(ctx context.Context) ([]domain.LinkWithClicks, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LinkWithClicks), args.Error(1)
}

func (m *MockLinkRepository) ListLinktree(ctx context.Context, owner string) ([]domain.LinkWithClicks, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LinkWithClicks), args.Error(1)
}

func (m *MockLinkRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Link, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Link), args.Error(1)
}

func (m *MockLinkRepository) Update(ctx context.Context, link *domain.Link) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockLinkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLinkRepository) CountByVariant(ctx context.Context, variant domain.Variant) (int64, int64, error) {
	args := m.Called(ctx, variant)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

type MockClickRepository struct {
	mock.Mock
}

func (m *MockClickRepository) Insert(ctx context.Context, evt *domain.ClickEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockClickRepository) ListByLinkSince(ctx context.Context, linkID uuid.UUID, since time.Time) ([]domain.ClickEvent, error) {
	args := m.Called(ctx, linkID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClickEvent), args.Error(1)
}

func (m *MockClickRepository) ListByVariantSince(ctx context.Context, variant domain.Variant, since time.Time) ([]domain.ClickEvent, error) {
	args := m.Called(ctx, variant, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClickEvent), args.Error(1)
}

func (m *MockClickRepository) RecentByVariant(ctx context.Context, variant domain.Variant, limit int) ([]domain.ClickEvent, error) {
	args := m.Called(ctx, variant, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClickEvent), args.Error(1)
}
