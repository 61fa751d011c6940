package service

import (
	"context"
	"errors"
	"fmt"

	"shopfront/internal/domain"
	"shopfront/internal/metrics"
	"shopfront/internal/repository"

	"github.com/google/uuid"
)

// CartService defines the per-user shopping cart operations. Reads never
// create a cart; the first successful add materializes it.
type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	ViewCart(ctx context.Context, userID uuid.UUID) (*domain.CartView, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (lineCount int, err error)
	UpdateItem(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	locks       *userLocks
	metrics     *metrics.Metrics
}

// NewCartService creates a new instance of CartService
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	m *metrics.Metrics,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		locks:       newUserLocks(),
		metrics:     m,
	}
}

// GetCart returns the user's cart, or an unsaved empty cart if none exists
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	cart, err := s.cartRepo.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return domain.NewCart(userID), nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return cart, nil
}

// ViewCart joins every line with the current catalog. Lines whose product
// no longer resolves are left out; the total uses current prices.
func (s *cartService) ViewCart(ctx context.Context, userID uuid.UUID) (*domain.CartView, error) {
	view := &domain.CartView{Items: []domain.CartLine{}}

	cart, err := s.cartRepo.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return view, nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	for _, item := range cart.Items {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to resolve cart product: %w", err)
		}

		line := domain.CartLine{Product: *product, Quantity: item.Quantity}
		view.Items = append(view.Items, line)
		view.Total += line.Subtotal()
		view.ItemCount += line.Quantity
	}

	updatedAt := cart.UpdatedAt
	view.UpdatedAt = &updatedAt
	return view, nil
}

// AddItem adds quantity of productID to the cart, creating the cart on
// first use. It returns the number of distinct lines afterwards.
func (s *cartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (int, error) {
	if quantity < 1 {
		return 0, domain.ErrInvalidQuantity
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return 0, err
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return 0, err
	}

	lines := cart.Add(productID, quantity)
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return 0, fmt.Errorf("failed to save cart: %w", err)
	}

	s.metrics.CartOperation("add")
	return lines, nil
}

// UpdateItem replaces the quantity of an existing line; zero or less
// removes it.
func (s *cartService) UpdateItem(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	unlock := s.locks.lock(userID)
	defer unlock()

	cart, err := s.cartRepo.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return err
		}
		return fmt.Errorf("failed to load cart: %w", err)
	}

	if err := cart.SetQuantity(productID, quantity); err != nil {
		return err
	}
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	if quantity <= 0 {
		s.metrics.CartOperation("remove")
	} else {
		s.metrics.CartOperation("update")
	}
	return nil
}

// RemoveItem drops the line for productID. It is a no-op when the user has
// no cart or the line is absent.
func (s *cartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	return s.mutateExisting(ctx, userID, "remove", func(cart *domain.Cart) {
		cart.Remove(productID)
	})
}

// ClearCart empties the cart. It is a no-op when the user has no cart.
func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return s.mutateExisting(ctx, userID, "clear", func(cart *domain.Cart) {
		cart.Clear()
	})
}

func (s *cartService) mutateExisting(ctx context.Context, userID uuid.UUID, operation string, mutate func(*domain.Cart)) error {
	unlock := s.locks.lock(userID)
	defer unlock()

	cart, err := s.cartRepo.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load cart: %w", err)
	}

	mutate(cart)
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	s.metrics.CartOperation(operation)
	return nil
}
