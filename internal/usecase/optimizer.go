package usecase

import (
	"fmt"
	"log"
	"sort"

	"github.com/AladdinPP/prox-moble/internal/domain"
	"github.com/AladdinPP/prox-moble/internal/metric"
)

const (
	// topStoresPerItem bounds the candidate pool: for each requested item only
	// the cheapest-then-closest stores survive pruning. A store outside every
	// item's top list cannot improve on a combination that includes one.
	topStoresPerItem = 5

	// maxCandidateStores is the hard ceiling on the pruned pool. C(30,5) is
	// already ~142k combinations; past this the search is aborted.
	maxCandidateStores = 30
)

// Optimizer finds the cheapest assignment of a shopping list to a bounded set
// of stores. It is a pure computation: no I/O, no shared state.
type Optimizer struct {
	enableDebugLogging bool
}

// NewOptimizer creates a cart optimizer.
func NewOptimizer(enableDebugLogging bool) *Optimizer {
	return &Optimizer{enableDebugLogging: enableDebugLogging}
}

// storeMeta holds per-store facts taken from any one of the store's deals
// (assumed consistent across all deals for that store).
type storeMeta struct {
	retailer  string
	zipCode   string
	distanceM float64
	logoURL   string
}

// FindBestCart runs the optimization: prune candidate stores, enumerate store
// combinations up to storeLimit, simulate a cart for each, and keep the best
// by (fewest missing items, then lowest total price). Every size-1 combo's
// simulated cart is also returned for the per-store view, regardless of
// completeness.
func (o *Optimizer) FindBestCart(
	dealMenu []domain.Deal,
	searchTerms []string,
	storeLimit int,
) (*domain.OptimizedCart, []domain.SingleStoreResult, error) {
	stores := make(map[domain.StoreID]storeMeta)
	priceMenu := make(map[string]map[domain.StoreID]domain.Deal)

	for _, deal := range dealMenu {
		id := deal.StoreID()
		if _, ok := stores[id]; !ok {
			stores[id] = storeMeta{
				retailer:  deal.Retailer,
				zipCode:   deal.ZipCode,
				distanceM: deal.DistanceM,
				logoURL:   deal.RetailerLogoURL,
			}
		}
		perStore, ok := priceMenu[deal.SearchedItemName]
		if !ok {
			perStore = make(map[domain.StoreID]domain.Deal)
			priceMenu[deal.SearchedItemName] = perStore
		}
		// Last deal wins when the feed repeats an (item, store) pair.
		perStore[id] = deal
	}

	pool, err := o.candidatePool(priceMenu, searchTerms)
	if err != nil {
		return nil, nil, err
	}

	combos := generateCombos(pool, storeLimit, stores)
	metric.CombosSimulated.Observe(float64(len(combos)))
	if o.enableDebugLogging {
		log.Printf("[OPTIMIZE] %d candidate stores, %d valid combinations", len(pool), len(combos))
	}

	var bestCart *domain.OptimizedCart
	allStoreCarts := []domain.SingleStoreResult{}

	for _, combo := range combos {
		cart := simulateCart(combo, searchTerms, priceMenu)

		if len(combo) == 1 {
			meta := stores[combo[0]]
			allStoreCarts = append(allStoreCarts, domain.SingleStoreResult{
				Retailer:        meta.retailer,
				ZipCode:         meta.zipCode,
				TotalCartPrice:  cart.TotalCartPrice,
				ItemsFoundCount: len(cart.ItemsFound),
				DistanceM:       meta.distanceM,
				Distance:        FormatDistance(meta.distanceM),
				ItemsFound:      cart.ItemsFound,
				RetailerLogoURL: meta.logoURL,
			})
		}

		// Fewer missing items wins; on a tie, lower total price. First seen
		// keeps its place when both are equal.
		if bestCart == nil ||
			len(cart.ItemsMissing) < len(bestCart.ItemsMissing) ||
			(len(cart.ItemsMissing) == len(bestCart.ItemsMissing) && cart.TotalCartPrice < bestCart.TotalCartPrice) {
			bestCart = cart
		}
	}

	return bestCart, allStoreCarts, nil
}

// candidatePool prunes per item to the top cheapest-then-closest stores and
// unions the survivors. The pool is sorted lexicographically by store ID so
// enumeration order, and therefore tie-breaking, is reproducible.
func (o *Optimizer) candidatePool(
	priceMenu map[string]map[domain.StoreID]domain.Deal,
	searchTerms []string,
) ([]domain.StoreID, error) {
	candidates := make(map[domain.StoreID]struct{})

	for _, item := range searchTerms {
		perStore := priceMenu[item]
		if len(perStore) == 0 {
			continue
		}
		itemDeals := make([]domain.Deal, 0, len(perStore))
		for _, deal := range perStore {
			itemDeals = append(itemDeals, deal)
		}
		sort.Slice(itemDeals, func(i, j int) bool {
			if itemDeals[i].ProductPrice != itemDeals[j].ProductPrice {
				return itemDeals[i].ProductPrice < itemDeals[j].ProductPrice
			}
			if itemDeals[i].DistanceM != itemDeals[j].DistanceM {
				return itemDeals[i].DistanceM < itemDeals[j].DistanceM
			}
			return itemDeals[i].StoreID() < itemDeals[j].StoreID()
		})
		if len(itemDeals) > topStoresPerItem {
			itemDeals = itemDeals[:topStoresPerItem]
		}
		for _, deal := range itemDeals {
			candidates[deal.StoreID()] = struct{}{}
		}
	}

	if len(candidates) > maxCandidateStores {
		return nil, fmt.Errorf("%w: %d stores found, reduce your radius or item list",
			domain.ErrTooManyStores, len(candidates))
	}

	pool := make([]domain.StoreID, 0, len(candidates))
	for id := range candidates {
		pool = append(pool, id)
	}
	sort.Slice(pool, func(i, j int) bool { return pool[i] < pool[j] })
	return pool, nil
}

// comboFrame is one unit of work on the explicit enumeration stack.
type comboFrame struct {
	index int
	combo []domain.StoreID
}

// generateCombos enumerates every size-k subset of the pool for k=1..storeLimit
// with an explicit worklist instead of recursion; pools near the ceiling with
// k up to 5 produce six-figure subset counts. Subsets with two stores of the
// same retailer brand are discarded.
func generateCombos(
	pool []domain.StoreID,
	storeLimit int,
	stores map[domain.StoreID]storeMeta,
) [][]domain.StoreID {
	var combos [][]domain.StoreID

	for k := 1; k <= storeLimit; k++ {
		stack := make([]comboFrame, 0, len(pool))
		for i := 0; i+k <= len(pool); i++ {
			stack = append(stack, comboFrame{index: i + 1, combo: []domain.StoreID{pool[i]}})
		}
		for len(stack) > 0 {
			frame := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if len(frame.combo) == k {
				if uniqueRetailers(frame.combo, stores) {
					combos = append(combos, frame.combo)
				}
				continue
			}
			remaining := k - len(frame.combo)
			for j := frame.index; j+remaining <= len(pool); j++ {
				next := make([]domain.StoreID, len(frame.combo), len(frame.combo)+1)
				copy(next, frame.combo)
				next = append(next, pool[j])
				stack = append(stack, comboFrame{index: j + 1, combo: next})
			}
		}
	}

	return combos
}

// uniqueRetailers reports whether no two stores in the combo share a brand.
// A user would not want two legs of the same chain in one trip.
func uniqueRetailers(combo []domain.StoreID, stores map[domain.StoreID]storeMeta) bool {
	seen := make(map[string]bool, len(combo))
	for _, id := range combo {
		brand := stores[id].retailer
		if seen[brand] {
			return false
		}
		seen[brand] = true
	}
	return true
}

// simulateCart scores one combo: for each requested item pick the cheapest
// deal across the combo's stores, tie-broken by shortest distance; items no
// store carries are recorded as missing.
func simulateCart(
	combo []domain.StoreID,
	searchTerms []string,
	priceMenu map[string]map[domain.StoreID]domain.Deal,
) *domain.OptimizedCart {
	cart := &domain.OptimizedCart{
		Stores:       combo,
		ItemsFound:   []domain.CartItem{},
		ItemsMissing: []string{},
	}

	for _, item := range searchTerms {
		var cheapest *domain.Deal
		if perStore := priceMenu[item]; perStore != nil {
			for _, id := range combo {
				deal, ok := perStore[id]
				if !ok {
					continue
				}
				if cheapest == nil ||
					deal.ProductPrice < cheapest.ProductPrice ||
					(deal.ProductPrice == cheapest.ProductPrice && deal.DistanceM < cheapest.DistanceM) {
					d := deal
					cheapest = &d
				}
			}
		}
		if cheapest != nil {
			cart.ItemsFound = append(cart.ItemsFound, domain.CartItem{
				SearchedItem:    item,
				ProductName:     cheapest.ProductName,
				ProductPrice:    cheapest.ProductPrice,
				Retailer:        cheapest.Retailer,
				ZipCode:         cheapest.ZipCode,
				DistanceM:       cheapest.DistanceM,
				ProductSize:     cheapest.ProductSize,
				ImageLink:       cheapest.ImageLink,
				RetailerLogoURL: cheapest.RetailerLogoURL,
			})
			cart.TotalCartPrice += cheapest.ProductPrice
		} else {
			cart.ItemsMissing = append(cart.ItemsMissing, item)
		}
	}

	return cart
}
