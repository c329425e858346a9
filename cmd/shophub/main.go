package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/shophub/internal/api"
	"github.com/example/shophub/internal/auth"
	"github.com/example/shophub/internal/catalog"
	"github.com/example/shophub/internal/identity"
	"github.com/example/shophub/internal/payment"
	"github.com/example/shophub/internal/session"
	"github.com/example/shophub/internal/store"
)

func main() {
	// Configuration from environment variables
	addr := ":" + getEnv("PORT", "8080")
	dataDir := getEnv("DATA_DIR", "./data")
	stripeKey := os.Getenv("STRIPE_API_KEY")
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("[ShopHub] JWT_SECRET environment variable is required")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("[ShopHub] JWT_SECRET must be at least 32 characters long")
	}

	log.Println("[ShopHub] ========================================")
	log.Println("[ShopHub] ShopHub storefront")
	log.Println("[ShopHub] ========================================")

	// Durable local store for per-session guest flags
	flags, err := store.OpenBadger(dataDir)
	if err != nil {
		log.Fatalf("[ShopHub] Failed to open local store: %v", err)
	}
	defer flags.Close()
	log.Printf("[ShopHub] Local store: %s", dataDir)

	// Identity provider
	idp := identity.NewLocalService()
	if demoPassword := os.Getenv("DEMO_USER_PASSWORD"); demoPassword != "" {
		email := getEnv("DEMO_USER_EMAIL", "demo@shophub.dev")
		name := getEnv("DEMO_USER_NAME", "Demo User")
		if err := idp.AddUser(email, name, demoPassword); err != nil {
			log.Fatalf("[ShopHub] Failed to seed demo user: %v", err)
		}
		log.Printf("[ShopHub] Demo user: %s", email)
	}

	// Payment provider: Stripe when a key is configured, simulator otherwise
	var payments payment.Provider
	if stripeKey != "" {
		payments = payment.NewStripe(stripeKey)
		log.Println("[ShopHub] Payments: Stripe")
	} else {
		payments = payment.NewSimulator()
		log.Println("[ShopHub] Payments: simulator (no STRIPE_API_KEY)")
	}

	// Sessions and routing
	shop := catalog.New(catalog.DefaultProducts())
	sessions := session.NewManager(idp, flags)
	defer sessions.Close()
	tokens := auth.NewTokenService(jwtSecret, 30*24*time.Hour)

	router := api.NewRouter(api.RouterConfig{
		Handlers:         api.NewHandlers(shop),
		AuthHandlers:     api.NewAuthHandlers(),
		CheckoutHandlers: api.NewCheckoutHandlers(payments),
		Sessions:         sessions,
		Tokens:           tokens,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Printf("[ShopHub] Server started on %s", addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("[ShopHub] Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[ShopHub] Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ShopHub] Shutdown error: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
