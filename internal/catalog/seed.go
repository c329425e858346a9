package catalog

import "github.com/shopspring/decimal"

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultProducts is the built-in catalog.
func DefaultProducts() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Wireless Headphones",
			Description: "Premium noise-cancelling wireless headphones with 30-hour battery life",
			Price:       price("299.99"),
			Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500&h=500&fit=crop",
			Category:    "Electronics",
			Stock:       15,
		},
		{
			ID:          "2",
			Name:        "Smart Watch",
			Description: "Fitness tracking smartwatch with heart rate monitor and GPS",
			Price:       price("399.99"),
			Image:       "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500&h=500&fit=crop",
			Category:    "Electronics",
			Stock:       20,
		},
		{
			ID:          "3",
			Name:        "Laptop Backpack",
			Description: "Water-resistant laptop backpack with USB charging port",
			Price:       price("79.99"),
			Image:       "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=500&h=500&fit=crop",
			Category:    "Accessories",
			Stock:       30,
		},
		{
			ID:          "4",
			Name:        "Wireless Mouse",
			Description: "Ergonomic wireless mouse with precision tracking",
			Price:       price("49.99"),
			Image:       "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?w=500&h=500&fit=crop",
			Category:    "Electronics",
			Stock:       50,
		},
		{
			ID:          "5",
			Name:        "Mechanical Keyboard",
			Description: "RGB mechanical gaming keyboard with programmable keys",
			Price:       price("159.99"),
			Image:       "https://images.unsplash.com/photo-1587829741301-dc798b83add3?w=500&h=500&fit=crop",
			Category:    "Electronics",
			Stock:       25,
		},
		{
			ID:          "6",
			Name:        "Desk Lamp",
			Description: "LED desk lamp with adjustable brightness and color temperature",
			Price:       price("45.99"),
			Image:       "https://images.unsplash.com/photo-1507473885765-e6ed057f782c?w=500&h=500&fit=crop",
			Category:    "Home",
			Stock:       40,
		},
		{
			ID:          "7",
			Name:        "Coffee Maker",
			Description: "Programmable coffee maker with thermal carafe",
			Price:       price("89.99"),
			Image:       "https://images.unsplash.com/photo-1517668808822-9ebb02f2a0e6?w=500&h=500&fit=crop",
			Category:    "Home",
			Stock:       18,
		},
		{
			ID:          "8",
			Name:        "Yoga Mat",
			Description: "Non-slip eco-friendly yoga mat with carrying strap",
			Price:       price("34.99"),
			Image:       "https://images.unsplash.com/photo-1601925260368-ae2f83cf8b7f?w=500&h=500&fit=crop",
			Category:    "Fitness",
			Stock:       35,
		},
	}
}
