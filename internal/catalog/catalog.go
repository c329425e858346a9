// Package catalog holds the static product catalog. Products are defined at
// process start and never mutated; there is no pagination or remote fetch.
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryAll matches every product when filtering.
const CategoryAll = "All"

// Product is a catalog item available for purchase.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
}

// Catalog is an immutable, ordered product list.
type Catalog struct {
	products []Product
	byID     map[string]Product
}

// New copies products into a catalog. Order is preserved.
func New(products []Product) *Catalog {
	c := &Catalog{
		products: make([]Product, len(products)),
		byID:     make(map[string]Product, len(products)),
	}
	copy(c.products, products)
	for _, p := range c.products {
		c.byID[p.ID] = p
	}
	return c
}

// List returns all products in catalog order.
func (c *Catalog) List() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get returns the product with the given ID.
func (c *Catalog) Get(id string) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Categories returns CategoryAll followed by the distinct category labels in
// catalog order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	categories := []string{CategoryAll}
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories
}

// Filter returns products whose name or description contains the search term
// (case-insensitive) and whose category matches. An empty category or
// CategoryAll matches every category.
func (c *Catalog) Filter(search, category string) []Product {
	term := strings.ToLower(search)
	matched := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if category != "" && category != CategoryAll && p.Category != category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}
