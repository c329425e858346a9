package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/example/shophub/internal/api/middleware"
	"github.com/example/shophub/internal/cart"
	"github.com/example/shophub/internal/catalog"
)

// Handlers serves the catalog and cart endpoints.
type Handlers struct {
	catalog *catalog.Catalog
}

func NewHandlers(c *catalog.Catalog) *Handlers {
	return &Handlers{catalog: c}
}

// ProductView is a product with its price rendered to two decimal places.
type ProductView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Stock       int    `json:"stock"`
}

type CartLineView struct {
	ProductView
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type CartView struct {
	Items      []CartLineView `json:"items"`
	Total      string         `json:"total"`
	ItemsCount int            `json:"items_count"`
}

func productView(p catalog.Product) ProductView {
	return ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Image:       p.Image,
		Category:    p.Category,
		Stock:       p.Stock,
	}
}

func cartView(s *cart.Store) CartView {
	lines := s.Lines()
	view := CartView{
		Items:      make([]CartLineView, 0, len(lines)),
		Total:      s.Total().StringFixed(2),
		ItemsCount: s.ItemsCount(),
	}
	for _, l := range lines {
		lineTotal := l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		view.Items = append(view.Items, CartLineView{
			ProductView: productView(l.Product),
			Quantity:    l.Quantity,
			LineTotal:   lineTotal.StringFixed(2),
		})
	}
	return view
}

// Product handlers

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")

	products := h.catalog.Filter(search, category)
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, productView(p))
	}
	respondJSON(w, http.StatusOK, views)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := h.catalog.Get(id)
	if !ok {
		respondError(w, "product not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, productView(p))
}

func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.Categories())
}

// Cart handlers

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	respondJSON(w, http.StatusOK, cartView(sess.Cart))
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, ok := h.catalog.Get(req.ProductID)
	if !ok {
		respondError(w, "product not found", http.StatusNotFound)
		return
	}

	sess.Cart.Add(p)
	respondJSON(w, http.StatusOK, cartView(sess.Cart))
}

func (h *Handlers) UpdateCartQuantity(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	productID := chi.URLParam(r, "productID")

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sess.Cart.UpdateQuantity(productID, req.Quantity)
	respondJSON(w, http.StatusOK, cartView(sess.Cart))
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	productID := chi.URLParam(r, "productID")

	sess.Cart.Remove(productID)
	respondJSON(w, http.StatusOK, cartView(sess.Cart))
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	sess.Cart.Clear()
	respondJSON(w, http.StatusOK, cartView(sess.Cart))
}

// Helpers

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"error": message})
}
