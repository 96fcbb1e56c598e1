package catalog

import (
	"context"
	"errors"

	"github.com/stretchr/testify/mock"

	"github.com/Fukolomka/Sitea/internal/domain"
)

// MockCatalog is a mock implementation of repository.Catalog
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ListActiveCases(ctx context.Context) ([]domain.Case, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Case), args.Error(1)
}

func (m *MockCatalog) GetActiveCase(ctx context.Context, caseID string) (*domain.Case, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockCatalog) UpsertItem(ctx context.Context, item *domain.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockCatalog) UpsertCase(ctx context.Context, c *domain.Case) error {
	return m.Called(ctx, c).Error(0)
}

var errCacheDown = errors.New("cache down")

// brokenCache fails every operation.
type brokenCache struct{}

func (brokenCache) GetCases(context.Context) ([]domain.Case, bool, error) {
	return nil, false, errCacheDown
}
func (brokenCache) SetCases(context.Context, []domain.Case) error { return errCacheDown }
func (brokenCache) GetCase(context.Context, string) (*domain.Case, bool, error) {
	return nil, false, errCacheDown
}
func (brokenCache) SetCase(context.Context, *domain.Case) error { return errCacheDown }
func (brokenCache) Invalidate(context.Context) error            { return errCacheDown }
