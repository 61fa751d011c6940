package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one product-quantity line of a cart
type CartItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// Cart holds at most one item per product, in insertion order
type Cart struct {
	UserID    uuid.UUID  `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart returns an empty cart owned by userID
func NewCart(userID uuid.UUID) *Cart {
	return &Cart{
		UserID:    userID,
		Items:     []CartItem{},
		UpdatedAt: time.Now().UTC(),
	}
}

// Item returns the line for productID, if present
func (c *Cart) Item(productID uuid.UUID) (CartItem, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.Items[i], true
	}
	return CartItem{}, false
}

// Add merges quantity into an existing line or appends a new one and
// returns the resulting number of lines.
func (c *Cart) Add(productID uuid.UUID, quantity int) int {
	if i := c.indexOf(productID); i >= 0 {
		c.Items[i].Quantity += quantity
	} else {
		c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: quantity})
	}
	c.touch()
	return len(c.Items)
}

// SetQuantity replaces the quantity of an existing line. A quantity of
// zero or less removes the line.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) error {
	i := c.indexOf(productID)
	if i < 0 {
		return ErrCartItemNotFound
	}
	if quantity <= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	} else {
		c.Items[i].Quantity = quantity
	}
	c.touch()
	return nil
}

// Remove drops the line for productID. Removing an absent line is a no-op.
func (c *Cart) Remove(productID uuid.UUID) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
	c.touch()
}

// Clear drops every line
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.touch()
}

// Clone returns a deep copy of the cart
func (c *Cart) Clone() *Cart {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return &Cart{
		UserID:    c.UserID,
		Items:     items,
		UpdatedAt: c.UpdatedAt,
	}
}

func (c *Cart) indexOf(productID uuid.UUID) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now().UTC()
}

// CartLine is a cart item joined with its current catalog product
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal is the line price at the product's current unit price
func (l CartLine) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// CartView is a cart enriched with product data and totals
type CartView struct {
	Items     []CartLine `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"item_count"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
