package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Fukolomka/Sitea/internal/repository"
)

// OpeningRepository implements repository.Opening for PostgreSQL
type OpeningRepository struct {
	db          *pgxpool.Pool
	lockTimeout time.Duration
}

var _ repository.OpeningTx = (*lockingTx)(nil)

// NewOpeningRepository creates a new OpeningRepository. lockTimeout bounds
// how long an opening waits for the user's row lock.
func NewOpeningRepository(db *pgxpool.Pool, lockTimeout time.Duration) *OpeningRepository {
	return &OpeningRepository{db: db, lockTimeout: lockTimeout}
}

// BeginTx starts one opening unit of work
func (r *OpeningRepository) BeginTx(ctx context.Context) (repository.OpeningTx, error) {
	tx, err := beginLocked(ctx, r.db, r.lockTimeout)
	if err != nil {
		return nil, err
	}
	return tx, nil
}
