package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/AladdinPP/prox-moble/internal/domain"
	"github.com/AladdinPP/prox-moble/internal/metric"
)

const lastResultCacheKey = "search:latest"

// CartServiceConfig holds configuration for the cart search service
type CartServiceConfig struct {
	CacheTTL           time.Duration
	FreshnessDays      int
	EnableDebugLogging bool
}

// CartService drives one search action end to end: validate, fetch the deal
// menu once, run the optimizer, post-process, and cache the outcome. The
// optimizer itself stays stateless; the service owns the result cache.
type CartService struct {
	feed      domain.DealFeed
	cache     domain.CacheRepository
	optimizer *Optimizer

	cacheTTL      time.Duration
	freshnessDays int
	debug         bool

	// searchSeq tags each search so a slow fetch finishing after a newer
	// search cannot overwrite the newer result.
	searchSeq atomic.Uint64
	mu        sync.Mutex
}

// cachedSearch is the cache envelope pairing a result with its search tag.
type cachedSearch struct {
	Seq    uint64                 `json:"seq"`
	Result *domain.OptimizeResult `json:"result"`
}

// NewCartService creates a cart search service with its dependencies.
func NewCartService(
	feed domain.DealFeed,
	cache domain.CacheRepository,
	config CartServiceConfig,
) *CartService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 15 * time.Minute
	}
	freshnessDays := config.FreshnessDays
	if freshnessDays <= 0 {
		freshnessDays = 7
	}

	return &CartService{
		feed:          feed,
		cache:         cache,
		optimizer:     NewOptimizer(config.EnableDebugLogging),
		cacheTTL:      cacheTTL,
		freshnessDays: freshnessDays,
		debug:         config.EnableDebugLogging,
	}
}

// Optimize runs one cart-optimization search.
// Flow: validate -> fetch deal menu -> optimize -> post-process -> cache.
func (s *CartService) Optimize(
	ctx context.Context,
	request *domain.OptimizeRequest,
) (*domain.OptimizeResult, error) {
	if request == nil {
		return nil, domain.ErrInvalidRequest
	}

	items := request.Items
	if len(items) == 0 {
		items = ParseItemList(request.Query)
	}
	searchTerms := SearchTerms(items)

	if err := s.validate(searchTerms, request.ZipCode, request.RadiusMiles); err != nil {
		return nil, err
	}
	if request.StoreLimit < 1 || request.StoreLimit > 5 {
		return nil, fmt.Errorf("%w: store limit must be between 1 and 5", domain.ErrInvalidRequest)
	}

	seq := s.searchSeq.Add(1)

	dealMenu, err := s.feed.FetchDealMenu(ctx, domain.DealMenuQuery{
		UserZip:      request.ZipCode,
		Items:        items,
		RadiusMeters: MilesToMeters(request.RadiusMiles),
		MinDate:      FreshnessCutoff(time.Now(), s.freshnessDays),
	})
	if err != nil {
		metric.OptimizerRunsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	if len(dealMenu) == 0 {
		metric.OptimizerRunsTotal.WithLabelValues("no_deals").Inc()
		return nil, domain.ErrNoDeals
	}

	bestCart, allStoreCarts, err := s.optimizer.FindBestCart(dealMenu, searchTerms, request.StoreLimit)
	if err != nil {
		if errors.Is(err, domain.ErrTooManyStores) {
			metric.OptimizerRunsTotal.WithLabelValues("too_many_stores").Inc()
		} else {
			metric.OptimizerRunsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}
	if bestCart == nil {
		// Deals came back but none answered a requested item.
		metric.OptimizerRunsTotal.WithLabelValues("no_deals").Inc()
		return nil, domain.ErrNoDeals
	}

	result := &domain.OptimizeResult{SearchTerms: searchTerms}
	if request.StoreLimit == 1 {
		result.SingleStoreResults = dedupeByBrand(allStoreCarts, len(searchTerms))
	} else {
		result.BestCart = bestCart
	}

	metric.OptimizerRunsTotal.WithLabelValues("ok").Inc()
	s.storeResult(ctx, seq, result)

	return result, nil
}

// SearchDeals runs a flat single-deal search, no optimization.
func (s *CartService) SearchDeals(
	ctx context.Context,
	request *domain.DealSearchRequest,
) ([]domain.Deal, error) {
	if request == nil {
		return nil, domain.ErrInvalidRequest
	}

	items := request.Items
	if len(items) == 0 {
		items = ParseItemList(request.Query)
	}
	searchTerms := SearchTerms(items)

	if err := s.validate(searchTerms, request.ZipCode, request.RadiusMiles); err != nil {
		return nil, err
	}

	deals, err := s.feed.FindAllDeals(ctx, domain.DealMenuQuery{
		UserZip:      request.ZipCode,
		Items:        items,
		RadiusMeters: MilesToMeters(request.RadiusMiles),
		MinDate:      FreshnessCutoff(time.Now(), s.freshnessDays),
	})
	if err != nil {
		return nil, err
	}
	if len(deals) == 0 {
		return nil, domain.ErrNoDeals
	}

	sortDeals(deals, request.SortBy)
	return deals, nil
}

// LastResult returns the most recent optimization outcome, if still cached.
func (s *CartService) LastResult(ctx context.Context) (*domain.OptimizeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, err := s.cache.Get(ctx, lastResultCacheKey)
	if err != nil {
		metric.CacheLookupsTotal.WithLabelValues("miss").Inc()
		return nil, err
	}
	metric.CacheLookupsTotal.WithLabelValues("hit").Inc()

	cached, ok := value.(*cachedSearch)
	if !ok || cached.Result == nil {
		return nil, domain.ErrCacheMiss
	}
	return cached.Result, nil
}

// validate applies the caller-level input checks shared by both searches.
func (s *CartService) validate(searchTerms []string, zipCode string, radiusMiles float64) error {
	if len(searchTerms) == 0 {
		return fmt.Errorf("%w: item list is empty", domain.ErrInvalidRequest)
	}
	if !ValidZipCode(zipCode) {
		return fmt.Errorf("%w: zip code must be 5 digits", domain.ErrInvalidRequest)
	}
	if radiusMiles < 1 {
		return fmt.Errorf("%w: radius must be at least 1 mile", domain.ErrInvalidRequest)
	}
	return nil
}

// storeResult caches the latest outcome unless a newer search already wrote.
func (s *CartService) storeResult(ctx context.Context, seq uint64, result *domain.OptimizeResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if value, err := s.cache.Get(ctx, lastResultCacheKey); err == nil {
		if cached, ok := value.(*cachedSearch); ok && cached.Seq > seq {
			if s.debug {
				log.Printf("[SEARCH] Discarding stale result (seq %d < %d)", seq, cached.Seq)
			}
			return
		}
	}

	if err := s.cache.Set(ctx, lastResultCacheKey, &cachedSearch{Seq: seq, Result: result}, s.cacheTTL); err != nil {
		log.Printf("[SEARCH] Failed to cache result: %v", err)
	}
}

// dedupeByBrand is the single-store post-processing: keep only stores that
// carry the whole list, collapse same-brand stores to the cheaper (then
// closer) one, and sort ascending by price.
func dedupeByBrand(allStoreCarts []domain.SingleStoreResult, wantCount int) []domain.SingleStoreResult {
	bestByBrand := make(map[string]domain.SingleStoreResult)
	order := []string{}

	for _, storeCart := range allStoreCarts {
		if storeCart.ItemsFoundCount != wantCount {
			continue
		}
		current, ok := bestByBrand[storeCart.Retailer]
		if !ok {
			bestByBrand[storeCart.Retailer] = storeCart
			order = append(order, storeCart.Retailer)
			continue
		}
		if storeCart.TotalCartPrice < current.TotalCartPrice ||
			(storeCart.TotalCartPrice == current.TotalCartPrice && storeCart.DistanceM < current.DistanceM) {
			bestByBrand[storeCart.Retailer] = storeCart
		}
	}

	results := make([]domain.SingleStoreResult, 0, len(order))
	for _, brand := range order {
		results = append(results, bestByBrand[brand])
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalCartPrice < results[j].TotalCartPrice
	})
	return results
}

// sortDeals orders a flat deal list for display. The feed already sorts, but
// the caller may ask for the other ordering.
func sortDeals(deals []domain.Deal, sortBy string) {
	switch sortBy {
	case "distance":
		sort.SliceStable(deals, func(i, j int) bool {
			return deals[i].DistanceM < deals[j].DistanceM
		})
	default:
		sort.SliceStable(deals, func(i, j int) bool {
			return deals[i].ProductPrice < deals[j].ProductPrice
		})
	}
}
