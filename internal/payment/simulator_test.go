package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCard() Card {
	return Card{
		Number:   "4242424242424242",
		ExpMonth: 12,
		ExpYear:  int64(time.Now().Year() + 2),
		CVC:      "123",
	}
}

func testBilling() BillingDetails {
	return BillingDetails{
		Name:       "Alice Example",
		Email:      "alice@example.com",
		Line1:      "1 Main St",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62701",
		Country:    "US",
	}
}

func TestSimulator_CreatePaymentMethod(t *testing.T) {
	sim := NewSimulator()

	method, err := sim.CreatePaymentMethod(context.Background(), validCard(), testBilling())

	require.NoError(t, err)
	assert.Contains(t, method.ID, "pm_sim_")
	assert.Equal(t, "visa", method.Brand)
	assert.Equal(t, "4242", method.Last4)
	assert.WithinDuration(t, time.Now(), method.CreatedAt, time.Second)
}

func TestSimulator_IgnoresSpacesInNumber(t *testing.T) {
	sim := NewSimulator()
	card := validCard()
	card.Number = "4242 4242 4242 4242"

	method, err := sim.CreatePaymentMethod(context.Background(), card, testBilling())

	require.NoError(t, err)
	assert.Equal(t, "4242", method.Last4)
}

func TestSimulator_BrandDetection(t *testing.T) {
	sim := NewSimulator()

	tests := []struct {
		number string
		brand  string
	}{
		{"4242424242424242", "visa"},
		{"5555555555554444", "mastercard"},
		{"378282246310005", "amex"},
		{"6011111111111117", "card"},
	}

	for _, tt := range tests {
		t.Run(tt.brand, func(t *testing.T) {
			card := validCard()
			card.Number = tt.number
			method, err := sim.CreatePaymentMethod(context.Background(), card, testBilling())
			require.NoError(t, err)
			assert.Equal(t, tt.brand, method.Brand)
		})
	}
}

func TestSimulator_Declines(t *testing.T) {
	sim := NewSimulator()

	tests := []struct {
		name     string
		mutate   func(*Card)
		wantCode string
	}{
		{"declined test card", func(c *Card) { c.Number = DeclinedTestCard }, "card_declined"},
		{"number too short", func(c *Card) { c.Number = "4242" }, "incorrect_number"},
		{"number not digits", func(c *Card) { c.Number = "4242abcd42424242" }, "incorrect_number"},
		{"month zero", func(c *Card) { c.ExpMonth = 0 }, "invalid_expiry_month"},
		{"month thirteen", func(c *Card) { c.ExpMonth = 13 }, "invalid_expiry_month"},
		{"expired year", func(c *Card) { c.ExpYear = int64(time.Now().Year() - 1) }, "expired_card"},
		{"cvc too short", func(c *Card) { c.CVC = "12" }, "incorrect_cvc"},
		{"cvc not digits", func(c *Card) { c.CVC = "12a" }, "incorrect_cvc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := validCard()
			tt.mutate(&card)

			_, err := sim.CreatePaymentMethod(context.Background(), card, testBilling())

			var pErr *Error
			require.ErrorAs(t, err, &pErr)
			assert.Equal(t, tt.wantCode, pErr.Code)
			assert.NotEmpty(t, pErr.Message)
		})
	}
}

func TestSimulator_CancelledContext(t *testing.T) {
	sim := NewSimulator()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.CreatePaymentMethod(ctx, validCard(), testBilling())
	assert.ErrorIs(t, err, context.Canceled)
}
