package catalog

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/sync/singleflight"

	"github.com/Fukolomka/Sitea/internal/domain"
	"github.com/Fukolomka/Sitea/internal/logger"
	"github.com/Fukolomka/Sitea/internal/metrics"
	"github.com/Fukolomka/Sitea/internal/repository"
)

// Service serves the public case catalog. Reads go through the cache; the
// opening engine never uses these results for pricing or selection.
type Service interface {
	ListCases(ctx context.Context) ([]domain.Case, error)
	// GetCase returns an active case with its entries ordered by weight,
	// heaviest first.
	GetCase(ctx context.Context, caseID string) (*domain.Case, error)
	Invalidate(ctx context.Context) error
}

type service struct {
	repo  repository.Catalog
	cache Cache
	group singleflight.Group
}

// NewService creates a catalog service. A nil cache disables caching.
func NewService(repo repository.Catalog, cache Cache) Service {
	if cache == nil {
		cache = NewMemoryCache(DefaultCacheSize, DefaultCacheTTL)
	}
	return &service{repo: repo, cache: cache}
}

func (s *service) ListCases(ctx context.Context) ([]domain.Case, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgListingCases)

	if cases, ok := s.lookup(ctx, func() ([]domain.Case, bool, error) { return s.cache.GetCases(ctx) }); ok {
		return cases, nil
	}

	v, err, _ := s.group.Do(flightKeyCases, func() (any, error) {
		cases, err := s.repo.ListActiveCases(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetCases(ctx, cases); err != nil {
			log.Warn(LogMsgCacheWriteFailed, "error", err)
		}
		return cases, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListCasesFailed, err)
	}
	return cloneCases(v.([]domain.Case)), nil
}

func (s *service) GetCase(ctx context.Context, caseID string) (*domain.Case, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgFetchingCase, "case_id", caseID)

	cached, hit, err := s.cache.GetCase(ctx, caseID)
	if err != nil {
		log.Warn(LogMsgCacheReadFailed, "error", err)
	}
	if hit {
		metrics.CatalogCacheHits.Inc()
		return byWeight(cached), nil
	}
	metrics.CatalogCacheMisses.Inc()

	v, err, _ := s.group.Do(flightKeyCaseID+caseID, func() (any, error) {
		c, err := s.repo.GetActiveCase(ctx, caseID)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetCase(ctx, c); err != nil {
			log.Warn(LogMsgCacheWriteFailed, "error", err)
		}
		return c, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrCaseNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgGetCaseFailed, err)
	}
	c := cloneCase(v.(*domain.Case))
	return byWeight(&c), nil
}

func (s *service) Invalidate(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgInvalidatingCache)
	if err := s.cache.Invalidate(ctx); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgCacheInvalidated)
	return nil
}

// lookup reads the cache and records the hit or miss. Read failures count
// as misses.
func (s *service) lookup(ctx context.Context, get func() ([]domain.Case, bool, error)) ([]domain.Case, bool) {
	cases, ok, err := get()
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgCacheReadFailed, "error", err)
	}
	if ok {
		metrics.CatalogCacheHits.Inc()
		return cases, true
	}
	metrics.CatalogCacheMisses.Inc()
	return nil, false
}

// byWeight sorts the entries of c in place, heaviest first, keeping catalog
// order between equal weights.
func byWeight(c *domain.Case) *domain.Case {
	slices.SortStableFunc(c.Items, func(a, b domain.CaseItem) int {
		return cmp.Compare(b.Weight, a.Weight)
	})
	return c
}
