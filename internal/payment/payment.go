// Package payment defines the payment provider boundary: exchanging raw card
// details for an opaque provider-issued payment method. No server-side
// charge happens in this system; tokenization is the whole transaction.
package payment

import (
	"context"
	"time"
)

// Card is raw card input collected at checkout.
type Card struct {
	Number   string `json:"number"`
	ExpMonth int64  `json:"exp_month"`
	ExpYear  int64  `json:"exp_year"`
	CVC      string `json:"cvc"`
}

// BillingDetails accompany the card when creating a payment method.
type BillingDetails struct {
	Name       string
	Email      string
	Line1      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// Method is a provider-issued payment method token.
type Method struct {
	ID        string    `json:"id"`
	Brand     string    `json:"brand"`
	Last4     string    `json:"last4"`
	CreatedAt time.Time `json:"created_at"`
}

// Error is a provider-reported failure whose message is safe to show the
// user.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return e.Code + ": " + e.Message
	}
	return e.Message
}

// Provider creates payment methods. Each call is attempted exactly once;
// failure requires a new explicit user action to retry.
type Provider interface {
	CreatePaymentMethod(ctx context.Context, card Card, billing BillingDetails) (*Method, error)
}
