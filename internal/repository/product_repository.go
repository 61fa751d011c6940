package repository

import (
	"context"
	"sort"
	"strings"

	"shopfront/internal/domain"

	"github.com/google/uuid"
)

// ProductFilter narrows a catalog listing. Empty fields do not filter.
type ProductFilter struct {
	Category string
	Search   string
}

// ProductRepository defines the interface for catalog data access
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// catalogRepository is a read-only catalog held in memory. It is never
// mutated after construction, so it needs no locking.
type catalogRepository struct {
	products []domain.Product
	byID     map[uuid.UUID]int
}

// NewCatalogRepository creates a catalog seeded with the given products.
// Seed order is the listing order.
func NewCatalogRepository(seed []domain.Product) ProductRepository {
	r := &catalogRepository{
		products: make([]domain.Product, len(seed)),
		byID:     make(map[uuid.UUID]int, len(seed)),
	}
	copy(r.products, seed)
	for i, p := range r.products {
		r.byID[p.ID] = i
	}
	return r
}

// FindByID retrieves a product by ID
func (r *catalogRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	product := r.products[i]
	return &product, nil
}

// List returns products matching the filter in seed order. Category is a
// case-insensitive exact match; search is a case-insensitive substring
// match against name or description. Both filters combine with AND.
func (r *catalogRepository) List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error) {
	search := strings.ToLower(filter.Search)

	products := make([]*domain.Product, 0, len(r.products))
	for i := range r.products {
		p := r.products[i]
		if filter.Category != "" && !strings.EqualFold(p.Category, filter.Category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		products = append(products, &p)
	}

	return products, nil
}

// Categories returns the distinct product categories sorted lexicographically
func (r *catalogRepository) Categories(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, p := range r.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories, nil
}
