package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// StripeCardProcessor creates Stripe PaymentIntents. The API key is the
// package-level stripe.Key set at startup.
type StripeCardProcessor struct{}

func NewStripeCardProcessor() *StripeCardProcessor {
	return &StripeCardProcessor{}
}

func (p *StripeCardProcessor) CreateIntent(ctx context.Context, amountCents int64, currency, idempotencyKey string, metadata map[string]string) (*CardIntent, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("stripe: amount must be positive, got %d", amountCents)
	}
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(strings.ToLower(currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if idempotencyKey != "" {
		params.SetIdempotencyKey(idempotencyKey)
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create payment intent: %w", err)
	}
	return &CardIntent{ID: pi.ID, Status: string(pi.Status)}, nil
}
