package bootstrap

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Fukolomka/Sitea/internal/database/postgres"
	"github.com/Fukolomka/Sitea/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Catalog repository.Catalog
	User    repository.User
	Opening repository.Opening
	Wallet  repository.Wallet
}

// InitializeRepositories creates the Postgres repositories. lockTimeout
// bounds how long a transaction waits on a user's row lock.
func InitializeRepositories(dbPool *pgxpool.Pool, lockTimeout time.Duration) *Repositories {
	return &Repositories{
		Catalog: postgres.NewCatalogRepository(dbPool),
		User:    postgres.NewUserRepository(dbPool),
		Opening: postgres.NewOpeningRepository(dbPool, lockTimeout),
		Wallet:  postgres.NewWalletRepository(dbPool, lockTimeout),
	}
}
