// Package cart implements the shopping cart state for one visitor session.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/example/shophub/internal/catalog"
)

// Line is one product's aggregated quantity within a cart.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Store is the single source of truth for a session's cart. Lines keep their
// insertion order and there is at most one line per product ID. Quantities
// stay within [1, stock] after every operation; all mutations are serialized
// so concurrent adds cannot break the stock clamp.
type Store struct {
	mu    sync.Mutex
	lines []Line
}

func NewStore() *Store {
	return &Store{}
}

// Add increments the quantity of an existing line by one, clamped to the
// product's stock. A product not yet in the cart is appended with quantity 1.
// Adding a product with zero stock is a silent no-op; the browse surface is
// expected to disable the control.
func (s *Store) Add(p catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].Product.ID == p.ID {
			if s.lines[i].Quantity < s.lines[i].Product.Stock {
				s.lines[i].Quantity++
			}
			return
		}
	}
	if p.Stock < 1 {
		return
	}
	s.lines = append(s.lines, Line{Product: p, Quantity: 1})
}

// Remove deletes the line for the given product ID. Removing an absent
// product is a no-op, not an error.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets a line's quantity, clamped to [1, stock]. A requested
// quantity below 1 clamps to 1; deleting a line requires an explicit Remove.
// Unknown product IDs are ignored.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].Product.ID != productID {
			continue
		}
		if quantity < 1 {
			quantity = 1
		}
		if quantity > s.lines[i].Product.Stock {
			quantity = s.lines[i].Product.Stock
		}
		s.lines[i].Quantity = quantity
		return
	}
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// Total returns the sum of price times quantity across all lines. It is
// recomputed on every call; there is no cached value to go stale.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// ItemsCount returns the sum of quantities across all lines, not the number
// of distinct lines.
func (s *Store) ItemsCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len returns the number of distinct lines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}
