package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Fukolomka/Sitea/internal/domain"
	"github.com/Fukolomka/Sitea/internal/testing/fakestore"
)

func TestService_ListCases(t *testing.T) {
	ctx := context.Background()
	store := fakestore.New()
	seedCase(store, "Weapon", 25, 75)
	inactive := seedCase(store, "Retired", 1)
	inactive.IsActive = false
	store.AddCase(inactive)

	svc := NewService(store, NewMemoryCache(10, time.Minute))

	cases, err := svc.ListCases(ctx)
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "Weapon", cases[0].Name)

	_, err = svc.ListCases(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Calls(fakestore.OpListActiveCases), "second read is served from cache")
}

func TestService_GetCase_OrdersByWeight(t *testing.T) {
	ctx := context.Background()
	store := fakestore.New()
	c := seedCase(store, "Weapon", 25, 35, 39, 1)

	svc := NewService(store, NewMemoryCache(10, time.Minute))

	for i := 0; i < 2; i++ {
		got, err := svc.GetCase(ctx, c.ID)
		require.NoError(t, err)
		weights := make([]float64, len(got.Items))
		for j, ci := range got.Items {
			weights[j] = ci.Weight
		}
		assert.Equal(t, []float64{39, 35, 25, 1}, weights)
	}
	assert.Equal(t, 1, store.Calls(fakestore.OpGetActiveCase))

	again, err := store.GetActiveCase(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(25), again.Items[0].Weight, "store keeps catalog order")
}

func TestService_GetCase_NotFound(t *testing.T) {
	svc := NewService(fakestore.New(), nil)

	_, err := svc.GetCase(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrCaseNotFound)
}

func TestService_StoreFailureIsWrapped(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	store := fakestore.New()
	store.FailOn(fakestore.OpListActiveCases, boom)
	store.FailOn(fakestore.OpGetActiveCase, boom)
	svc := NewService(store, nil)

	_, err := svc.ListCases(ctx)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), ErrMsgListCasesFailed)

	_, err = svc.GetCase(ctx, "any")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), ErrMsgGetCaseFailed)
}

func TestService_CacheFailureFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	store := fakestore.New()
	c := seedCase(store, "Weapon", 1)
	svc := NewService(store, brokenCache{})

	cases, err := svc.ListCases(ctx)
	require.NoError(t, err)
	assert.Len(t, cases, 1)

	got, err := svc.GetCase(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	assert.ErrorIs(t, svc.Invalidate(ctx), errCacheDown)
}

func TestService_Invalidate(t *testing.T) {
	ctx := context.Background()
	store := fakestore.New()
	seedCase(store, "Weapon", 1)
	svc := NewService(store, NewMemoryCache(10, time.Minute))

	_, err := svc.ListCases(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(ctx))
	_, err = svc.ListCases(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, store.Calls(fakestore.OpListActiveCases))
}

func TestService_CoalescesConcurrentMisses(t *testing.T) {
	ctx := context.Background()
	release := make(chan time.Time)
	repo := new(MockCatalog)
	repo.On("ListActiveCases", mock.Anything).
		WaitUntil(release).
		Return([]domain.Case{sampleCase("c1")}, nil)

	svc := NewService(repo, NewMemoryCache(10, time.Minute))

	const callers = 8
	var wg sync.WaitGroup
	results := make(chan int, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cases, err := svc.ListCases(ctx)
			if assert.NoError(t, err) {
				results <- len(cases)
			}
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	for n := range results {
		assert.Equal(t, 1, n)
	}
	repo.AssertNumberOfCalls(t, "ListActiveCases", 1)
}
