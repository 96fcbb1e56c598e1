package repository

import (
	"context"

	"github.com/Fukolomka/Sitea/internal/domain"
)

// Catalog defines the interface for case and item persistence
type Catalog interface {
	ListActiveCases(ctx context.Context) ([]domain.Case, error)
	GetActiveCase(ctx context.Context, caseID string) (*domain.Case, error)

	// Seeding operations
	UpsertItem(ctx context.Context, item *domain.Item) error
	UpsertCase(ctx context.Context, c *domain.Case) error
}
