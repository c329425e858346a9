package payment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DeclinedTestCard always fails tokenization, matching the common provider
// test number for generic declines.
const DeclinedTestCard = "4000000000000002"

// Simulator is the default provider: it validates the card input shape and
// issues a fake payment method without any network call.
type Simulator struct{}

func NewSimulator() *Simulator {
	return &Simulator{}
}

func (s *Simulator) CreatePaymentMethod(ctx context.Context, card Card, billing BillingDetails) (*Method, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	number := strings.ReplaceAll(card.Number, " ", "")
	if len(number) < 12 || len(number) > 19 || !allDigits(number) {
		return nil, &Error{Code: "incorrect_number", Message: "Your card number is invalid."}
	}
	if number == DeclinedTestCard {
		return nil, &Error{Code: "card_declined", Message: "Your card was declined."}
	}
	if card.ExpMonth < 1 || card.ExpMonth > 12 {
		return nil, &Error{Code: "invalid_expiry_month", Message: "Your card's expiration month is invalid."}
	}
	if expired(card.ExpMonth, card.ExpYear) {
		return nil, &Error{Code: "expired_card", Message: "Your card has expired."}
	}
	if len(card.CVC) < 3 || len(card.CVC) > 4 || !allDigits(card.CVC) {
		return nil, &Error{Code: "incorrect_cvc", Message: "Your card's security code is invalid."}
	}

	return &Method{
		ID:        "pm_sim_" + strings.ReplaceAll(uuid.New().String(), "-", ""),
		Brand:     brandFor(number),
		Last4:     number[len(number)-4:],
		CreatedAt: time.Now(),
	}, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func expired(month, year int64) bool {
	now := time.Now()
	if year < int64(now.Year()) {
		return true
	}
	return year == int64(now.Year()) && month < int64(now.Month())
}

func brandFor(number string) string {
	switch number[0] {
	case '4':
		return "visa"
	case '5':
		return "mastercard"
	case '3':
		return "amex"
	default:
		return "card"
	}
}
