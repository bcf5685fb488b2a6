// internal/services/payment_service.go
package services

import (
	"context"
	"time"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"github.com/resalex/backend/internal/config"
)

// PaymentIntent is the slice of the provider's intent object the order flow
// needs: the external reference, the client-side secret and the provider
// status.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

// PaymentProvider is the payment capability consumed by OrderService. The
// production implementation is Stripe; tests inject a fake.
type PaymentProvider interface {
	CreatePaymentIntent(ctx context.Context, amountMinorUnits int64, currency string, metadata map[string]string) (*PaymentIntent, error)
	GetPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error)
}

type StripeProvider struct {
	cfg *config.Config
}

func NewStripeProvider(cfg *config.Config) *StripeProvider {
	stripe.Key = cfg.Payment.StripeSecretKey

	return &StripeProvider{cfg: cfg}
}

func (p *StripeProvider) timeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(p.cfg.Payment.TimeoutSeconds)*time.Second)
}

func (p *StripeProvider) CreatePaymentIntent(ctx context.Context, amountMinorUnits int64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	ctx, cancel := p.timeout(ctx)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinorUnits),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}

	return &PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}

func (p *StripeProvider) GetPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	ctx, cancel := p.timeout(ctx)
	defer cancel()

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(id, params)
	if err != nil {
		return nil, err
	}

	return &PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}
