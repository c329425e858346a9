package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/example/shophub/internal/api/middleware"
	"github.com/example/shophub/internal/auth"
	"github.com/example/shophub/internal/session"
)

// LoginPath is where denied checkout requests are pointed.
const LoginPath = "/login"

type RouterConfig struct {
	Handlers         *Handlers
	AuthHandlers     *AuthHandlers
	CheckoutHandlers *CheckoutHandlers
	Sessions         *session.Manager
	Tokens           *auth.TokenService
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Sessions, cfg.Tokens))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signin", cfg.AuthHandlers.SignIn)
			r.Post("/guest", cfg.AuthHandlers.ContinueAsGuest)
			r.Post("/signout", cfg.AuthHandlers.SignOut)
			r.Get("/me", cfg.AuthHandlers.Me)
		})

		r.Get("/products", cfg.Handlers.GetProducts)
		r.Get("/products/{id}", cfg.Handlers.GetProduct)
		r.Get("/categories", cfg.Handlers.GetCategories)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cfg.Handlers.GetCart)
			r.Delete("/", cfg.Handlers.ClearCart)
			r.Post("/items", cfg.Handlers.AddToCart)
			r.Put("/items/{productID}", cfg.Handlers.UpdateCartQuantity)
			r.Delete("/items/{productID}", cfg.Handlers.RemoveFromCart)
		})

		// Checkout is the protected destination.
		r.Route("/checkout", func(r chi.Router) {
			r.Use(middleware.RequireAccess(LoginPath))
			r.Get("/", cfg.CheckoutHandlers.GetCheckout)
			r.Post("/", cfg.CheckoutHandlers.SubmitCheckout)
		})
	})

	return r
}
