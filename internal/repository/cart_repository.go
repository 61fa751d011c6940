package repository

import (
	"context"
	"sync"

	"shopfront/internal/domain"

	"github.com/google/uuid"
)

// CartRepository loads and saves carts keyed by owning user. Load returns
// domain.ErrCartNotFound when the user has never written a cart.
type CartRepository interface {
	Load(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
}

type memoryCartRepository struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]*domain.Cart
}

// NewMemoryCartRepository creates a process-local CartRepository
func NewMemoryCartRepository() CartRepository {
	return &memoryCartRepository{
		carts: make(map[uuid.UUID]*domain.Cart),
	}
}

// Load returns a copy of the stored cart
func (r *memoryCartRepository) Load(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	return cart.Clone(), nil
}

// Save replaces the stored cart with a copy of cart
func (r *memoryCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[cart.UserID] = cart.Clone()
	return nil
}
