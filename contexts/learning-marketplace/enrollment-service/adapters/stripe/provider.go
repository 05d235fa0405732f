package stripeadapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Provider creates card payment intents through the Stripe API.
type Provider struct {
	api *client.API
}

func NewProvider(secretKey string) (*Provider, error) {
	if secretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Provider{api: api}, nil
}

func (p *Provider) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}
