package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// PaymentIntents is the contract with the external payment processor: hand
// over an amount, get back an intent id and a client secret the browser can
// confirm with. Tests substitute a fake.
type PaymentIntents interface {
	CreateIntent(ctx context.Context, amountCents int64) (id, clientSecret string, err error)
}

var errStripeNotConfigured = errors.New("stripe is not configured")

// StripeIntents creates real payment intents against Stripe.
type StripeIntents struct {
	configured bool
}

// NewStripeIntents sets the API key once at startup. An empty key leaves the
// client unconfigured; intent creation then fails cleanly instead of sending
// unauthenticated requests.
func NewStripeIntents(secretKey string) *StripeIntents {
	if secretKey == "" {
		return &StripeIntents{}
	}
	stripe.Key = secretKey
	return &StripeIntents{configured: true}
}

// CreateIntent requests a card payment intent in USD. Transient processor
// failures are retried a few times with a linear backoff; only the terminal
// failure is surfaced to the caller.
func (s *StripeIntents) CreateIntent(ctx context.Context, amountCents int64) (string, string, error) {
	if !s.configured {
		return "", "", errStripeNotConfigured
	}

	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	const attempts = 3
	var lastErr error
	for i := 1; i <= attempts; i++ {
		pi, err := paymentintent.New(params)
		if err == nil {
			return pi.ID, pi.ClientSecret, nil
		}
		lastErr = err

		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode < 500 {
			// Client-side errors (bad key, bad amount) will not get better
			// on retry.
			break
		}
		slog.Warn("payment intent attempt failed", "attempt", i, "error", err)

		if i < attempts {
			select {
			case <-ctx.Done():
				return "", "", ctx.Err()
			case <-time.After(time.Duration(i) * 200 * time.Millisecond):
			}
		}
	}
	return "", "", lastErr
}
