// Package checkout implements the one-shot checkout flow: shipping
// validation, totals, payment tokenization, and the post-payment redirect.
package checkout

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/shophub/internal/cart"
	"github.com/example/shophub/internal/payment"
)

var ErrEmptyCart = errors.New("cart is empty")

// taxRate is applied to the subtotal; shipping is always free.
var taxRate = decimal.NewFromFloat(0.1)

// DefaultRedirectDelay is how long the confirmation is shown before the
// flow's redirect callback fires.
const DefaultRedirectDelay = 2 * time.Second

// ShippingInfo is the flat shipping form. All fields must be non-empty at
// submission time.
type ShippingInfo struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Address  string `json:"address" validate:"required"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
	ZipCode  string `json:"zip_code" validate:"required"`
	Country  string `json:"country" validate:"required"`
}

// ValidationError reports the first shipping field that failed validation.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "missing or invalid shipping field: " + e.Field
}

// Totals is the priced-out cart at checkout.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals prices a cart: tax is 10% of subtotal, shipping is zero.
func ComputeTotals(c *cart.Store) Totals {
	subtotal := c.Total()
	tax := subtotal.Mul(taxRate)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: decimal.Zero,
		Total:    subtotal.Add(tax),
	}
}

// FormatAmount renders an amount with two decimal places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Receipt records a successful (simulated) payment. Nothing is persisted
// beyond it; there is no order record.
type Receipt struct {
	ID              string          `json:"id"`
	PaymentMethodID string          `json:"payment_method_id"`
	Amount          decimal.Decimal `json:"amount"`
	Lines           []cart.Line     `json:"lines"`
	PaidAt          time.Time       `json:"paid_at"`
}

// Flow drives one checkout attempt for a session. On success it clears the
// cart and schedules the redirect callback; Close cancels the pending
// redirect so a disposed flow never navigates after teardown.
type Flow struct {
	cart     *cart.Store
	payments payment.Provider
	validate *validator.Validate
	redirect func()
	delay    time.Duration

	mu        sync.Mutex
	timer     *time.Timer
	closed    bool
	completed bool
}

// NewFlow builds a flow over the given cart and payment provider. redirect
// may be nil when the caller handles navigation itself.
func NewFlow(c *cart.Store, p payment.Provider, redirect func()) *Flow {
	return &Flow{
		cart:     c,
		payments: p,
		validate: newValidator(),
		redirect: redirect,
		delay:    DefaultRedirectDelay,
	}
}

// Totals prices the flow's cart.
func (f *Flow) Totals() Totals {
	return ComputeTotals(f.cart)
}

// Submit validates shipping, tokenizes the card, and on success clears the
// cart and schedules the redirect. Provider errors are returned unwrapped so
// the caller can surface the provider's message; the cart is left intact and
// the user may resubmit.
func (f *Flow) Submit(ctx context.Context, shipping ShippingInfo, card payment.Card) (*Receipt, error) {
	if err := f.validateShipping(shipping); err != nil {
		return nil, err
	}

	lines := f.cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	totals := f.Totals()

	billing := payment.BillingDetails{
		Name:       shipping.FullName,
		Email:      shipping.Email,
		Line1:      shipping.Address,
		City:       shipping.City,
		State:      shipping.State,
		PostalCode: shipping.ZipCode,
		Country:    shipping.Country,
	}
	method, err := f.payments.CreatePaymentMethod(ctx, card, billing)
	if err != nil {
		return nil, err
	}

	f.cart.Clear()
	receipt := &Receipt{
		ID:              uuid.New().String(),
		PaymentMethodID: method.ID,
		Amount:          totals.Total,
		Lines:           lines,
		PaidAt:          time.Now(),
	}

	f.mu.Lock()
	f.completed = true
	if !f.closed && f.redirect != nil {
		f.timer = time.AfterFunc(f.delay, f.fireRedirect)
	}
	f.mu.Unlock()

	return receipt, nil
}

func (f *Flow) fireRedirect() {
	f.mu.Lock()
	closed := f.closed
	f.mu.Unlock()
	if !closed {
		f.redirect()
	}
}

// Completed reports whether a payment has succeeded on this flow.
func (f *Flow) Completed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completed
}

// Close tears the flow down and cancels any pending redirect.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

func (f *Flow) validateShipping(shipping ShippingInfo) error {
	err := f.validate.Struct(shipping)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &ValidationError{Field: fieldErrs[0].Field()}
	}
	return err
}

// newValidator reports fields by their json names so errors match the wire
// format.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
