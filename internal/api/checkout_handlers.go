package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/shophub/internal/api/middleware"
	"github.com/example/shophub/internal/checkout"
	"github.com/example/shophub/internal/payment"
)

// CheckoutHandlers drives the checkout flow for a session.
type CheckoutHandlers struct {
	payments payment.Provider
}

func NewCheckoutHandlers(payments payment.Provider) *CheckoutHandlers {
	return &CheckoutHandlers{payments: payments}
}

// TotalsView renders checkout totals with two decimal places.
type TotalsView struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
}

func totalsView(t checkout.Totals) TotalsView {
	return TotalsView{
		Subtotal: checkout.FormatAmount(t.Subtotal),
		Tax:      checkout.FormatAmount(t.Tax),
		Shipping: checkout.FormatAmount(t.Shipping),
		Total:    checkout.FormatAmount(t.Total),
	}
}

// SubmitRequest is the checkout submission body.
type SubmitRequest struct {
	Shipping checkout.ShippingInfo `json:"shipping"`
	Card     payment.Card          `json:"card"`
}

// ReceiptView is the confirmation returned after a successful payment. The
// redirect block tells the client where to navigate after the delay; it is
// advisory, the server schedules only its own flow teardown.
type ReceiptView struct {
	Status          string       `json:"status"`
	ReceiptID       string       `json:"receipt_id"`
	PaymentMethodID string       `json:"payment_method_id"`
	Amount          string       `json:"amount"`
	Redirect        RedirectView `json:"redirect"`
}

type RedirectView struct {
	To      string `json:"to"`
	AfterMS int64  `json:"after_ms"`
}

// GetCheckout returns the cart lines and totals for the checkout page.
func (h *CheckoutHandlers) GetCheckout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	respondJSON(w, http.StatusOK, struct {
		Cart   CartView   `json:"cart"`
		Totals TotalsView `json:"totals"`
	}{
		Cart:   cartView(sess.Cart),
		Totals: totalsView(checkout.ComputeTotals(sess.Cart)),
	})
}

// SubmitCheckout validates shipping, tokenizes the card, and on success
// clears the cart and responds with the confirmation. Payment provider
// errors become a user-visible message and the client may resubmit.
func (h *CheckoutHandlers) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// The flow tears itself down once the confirmation delay elapses.
	flow := sess.BeginCheckout(h.payments, sess.EndCheckout)

	receipt, err := flow.Submit(r.Context(), req.Shipping, req.Card)
	if err != nil {
		var vErr *checkout.ValidationError
		var pErr *payment.Error
		switch {
		case errors.As(err, &vErr):
			respondJSON(w, http.StatusBadRequest, map[string]string{
				"error": "please fill in all shipping information",
				"field": vErr.Field,
			})
		case errors.Is(err, checkout.ErrEmptyCart):
			respondError(w, "your cart is empty", http.StatusBadRequest)
		case errors.As(err, &pErr):
			respondJSON(w, http.StatusPaymentRequired, map[string]string{
				"error": pErr.Message,
				"code":  pErr.Code,
			})
		default:
			respondError(w, "payment failed: "+err.Error(), http.StatusBadGateway)
		}
		return
	}

	respondJSON(w, http.StatusCreated, ReceiptView{
		Status:          "succeeded",
		ReceiptID:       receipt.ID,
		PaymentMethodID: receipt.PaymentMethodID,
		Amount:          checkout.FormatAmount(receipt.Amount),
		Redirect: RedirectView{
			To:      "/",
			AfterMS: checkout.DefaultRedirectDelay.Milliseconds(),
		},
	})
}
