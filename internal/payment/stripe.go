package payment

import (
	"context"
	"errors"
	"time"

	stripe "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

// Stripe tokenizes cards through the Stripe API. Used when an API key is
// configured; otherwise the Simulator stands in.
type Stripe struct {
	client *client.API
}

func NewStripe(apiKey string) *Stripe {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &Stripe{client: api}
}

func (s *Stripe) CreatePaymentMethod(ctx context.Context, card Card, billing BillingDetails) (*Method, error) {
	params := &stripe.PaymentMethodParams{
		Type: stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(card.Number),
			ExpMonth: stripe.Int64(card.ExpMonth),
			ExpYear:  stripe.Int64(card.ExpYear),
			CVC:      stripe.String(card.CVC),
		},
		BillingDetails: &stripe.PaymentMethodBillingDetailsParams{
			Name:  stripe.String(billing.Name),
			Email: stripe.String(billing.Email),
			Address: &stripe.AddressParams{
				Line1:      stripe.String(billing.Line1),
				City:       stripe.String(billing.City),
				State:      stripe.String(billing.State),
				PostalCode: stripe.String(billing.PostalCode),
				Country:    stripe.String(billing.Country),
			},
		},
	}
	params.Context = ctx

	pm, err := s.client.PaymentMethods.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return nil, &Error{Code: string(stripeErr.Code), Message: stripeErr.Msg}
		}
		return nil, err
	}

	method := &Method{
		ID:        pm.ID,
		CreatedAt: time.Unix(pm.Created, 0),
	}
	if pm.Card != nil {
		method.Brand = string(pm.Card.Brand)
		method.Last4 = pm.Card.Last4
	}
	return method, nil
}
