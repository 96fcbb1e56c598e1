package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fukolomka/Sitea/internal/caseopening"
	"github.com/Fukolomka/Sitea/internal/domain"
)

func balanceOf(t *testing.T, userID string) decimal.Decimal {
	t.Helper()
	u, err := NewUserRepository(testPool).GetUserByID(context.Background(), userID)
	require.NoError(t, err)
	return u.Balance
}

func TestOpening_Integration_Scenario(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	c, _, _ := seedCatalog(t, pool, "2.50")
	u := seedUser(t, pool, "10.00")

	svc := caseopening.NewService(NewOpeningRepository(pool, time.Second), caseopening.NewSeededSource(1), caseopening.Config{})

	outcome, err := svc.OpenCase(ctx, u.ID, c.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("7.50").Equal(outcome.Balance))
	assert.True(t, decimal.RequireFromString("7.50").Equal(balanceOf(t, u.ID)))
	assert.Equal(t, 1, countRows(t, pool, "case_openings", u.ID))
	assert.Equal(t, 1, countRows(t, pool, "inventory_entries", u.ID))
	assert.Equal(t, 1, countRows(t, pool, "ledger_entries", u.ID))

	ledger, err := NewWalletRepository(pool, time.Second).GetLedger(ctx, u.ID, 10)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, domain.LedgerCaseOpening, ledger[0].Kind)
	assert.True(t, decimal.RequireFromString("-2.50").Equal(ledger[0].Amount))
	assert.Equal(t, "Opened "+c.Name+" case", ledger[0].Description)

	for i := 0; i < 3; i++ {
		_, err := svc.OpenCase(ctx, u.ID, c.ID)
		require.NoError(t, err)
	}
	_, err = svc.OpenCase(ctx, u.ID, c.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.True(t, decimal.Zero.Equal(balanceOf(t, u.ID)))
	assert.Equal(t, 4, countRows(t, pool, "case_openings", u.ID))
}

func TestOpening_Integration_InventoryStacks(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	_, a, _ := seedCatalog(t, pool, "1.00")
	u := seedUser(t, pool, "5.00")
	repo := NewOpeningRepository(pool, time.Second)

	for i := 0; i < 3; i++ {
		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		_, err = tx.GetUserForUpdate(ctx, u.ID)
		require.NoError(t, err)
		entry, err := tx.IncrementInventory(ctx, u.ID, a.ID)
		require.NoError(t, err)
		assert.Equal(t, i+1, entry.Quantity)
		require.NoError(t, tx.Commit(ctx))
	}

	inv, err := NewUserRepository(pool).GetInventory(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, inv, 1)
	assert.Equal(t, 3, inv[0].Quantity)
	assert.Equal(t, a.ID, inv[0].Item.ID)
}

func TestOpening_Integration_ConcurrentExactBalance(t *testing.T) {
	pool := requireDB(t)
	c, _, _ := seedCatalog(t, pool, "2.50")
	u := seedUser(t, pool, "2.50")
	svc := caseopening.NewService(NewOpeningRepository(pool, 2*time.Second), nil, caseopening.Config{})

	errs := make([]error, 2)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = svc.OpenCase(context.Background(), u.ID, c.ID)
		}(i)
	}
	close(start)
	wg.Wait()

	var ok, broke int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientBalance):
			broke++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, broke)
	assert.True(t, decimal.Zero.Equal(balanceOf(t, u.ID)))
	assert.Equal(t, 1, countRows(t, pool, "case_openings", u.ID))
	assert.Equal(t, 1, countRows(t, pool, "ledger_entries", u.ID))
}

func TestOpening_Integration_LockTimeoutIsTransient(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	c, _, _ := seedCatalog(t, pool, "1.00")
	u := seedUser(t, pool, "5.00")

	holder, err := NewOpeningRepository(pool, time.Second).BeginTx(ctx)
	require.NoError(t, err)
	_, err = holder.GetUserForUpdate(ctx, u.ID)
	require.NoError(t, err)
	defer func() { _ = holder.Rollback(ctx) }()

	svc := caseopening.NewService(NewOpeningRepository(pool, 100*time.Millisecond), nil, caseopening.Config{})
	_, err = svc.OpenCase(ctx, u.ID, c.ID)
	assert.ErrorIs(t, err, domain.ErrTransientStoreFailure)

	require.NoError(t, holder.Rollback(ctx))
	assert.True(t, decimal.RequireFromString("5.00").Equal(balanceOf(t, u.ID)))
	assert.Zero(t, countRows(t, pool, "case_openings", u.ID))
}

func TestOpening_Integration_UnknownIDs(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	c, _, _ := seedCatalog(t, pool, "1.00")
	u := seedUser(t, pool, "5.00")
	svc := caseopening.NewService(NewOpeningRepository(pool, time.Second), nil, caseopening.Config{})

	_, err := svc.OpenCase(ctx, "not-a-uuid", c.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.OpenCase(ctx, "00000000-0000-0000-0000-000000000000", c.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.OpenCase(ctx, u.ID, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrCaseNotFound)
}
