package cartstore

import (
	"context"
	"sync"
	"time"

	"github.com/AladdinPP/prox-moble/internal/domain"
	"github.com/google/uuid"
)

// MemoryStore keeps saved cart snapshots in memory, newest first. The
// reference app persists these client-side; server-side durability is out of
// scope, so this lives behind the domain interface for a later swap.
type MemoryStore struct {
	mutex sync.RWMutex
	carts []domain.SavedCart
}

// NewMemoryStore creates an empty saved-cart store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save assigns an ID and timestamp and prepends the cart.
func (s *MemoryStore) Save(ctx context.Context, cart domain.SavedCart) (domain.SavedCart, error) {
	cart.ID = uuid.NewString()
	cart.SavedAt = time.Now().UTC()
	cart.StoreCount = len(cart.Stores)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.carts = append([]domain.SavedCart{cart}, s.carts...)
	return cart, nil
}

// List returns all saved carts, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]domain.SavedCart, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]domain.SavedCart, len(s.carts))
	copy(out, s.carts)
	return out, nil
}

// Delete removes the cart with the given ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i, cart := range s.carts {
		if cart.ID == id {
			s.carts = append(s.carts[:i], s.carts[i+1:]...)
			return nil
		}
	}
	return domain.ErrCartNotFound
}
