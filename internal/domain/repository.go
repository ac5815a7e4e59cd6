package domain

import (
	"context"
	"time"
)

// DealFeed defines the interface to the remote deal database. Both calls are
// one atomic fetch each; the core never retries beyond the client's own
// transient-failure handling, caches, or paginates.
type DealFeed interface {
	// FetchDealMenu returns the flat deal menu for a cart-optimization search.
	FetchDealMenu(ctx context.Context, query DealMenuQuery) ([]Deal, error)

	// FindAllDeals returns every matching deal for a flat single-deal search.
	FindAllDeals(ctx context.Context, query DealMenuQuery) ([]Deal, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// SavedCartRepository defines the interface for saved-cart persistence.
type SavedCartRepository interface {
	Save(ctx context.Context, cart SavedCart) (SavedCart, error)
	List(ctx context.Context) ([]SavedCart, error)
	Delete(ctx context.Context, id string) error
}
