// Package stripegw wraps the Stripe API surface this service calls outside
// of webhook verification: resolving payment-method display details for
// receipts. Lookups are best-effort; callers degrade to generic values when
// the gateway is unreachable.
package stripegw

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	stripe "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cfgpkg "github.com/hilalgiving/ledger/pkg/config"
)

// PaymentMethodDetails is the display subset of a gateway payment method.
type PaymentMethodDetails struct {
	Type  string
	Brand string
	Last4 string
}

// PaymentMethodResolver fetches payment-method display details by gateway id.
type PaymentMethodResolver interface {
	Resolve(ctx context.Context, paymentMethodID string) (*PaymentMethodDetails, error)
}

type Client struct {
	api *client.API
	log *zap.SugaredLogger
}

func NewClient(cfg *cfgpkg.Config, log *zap.SugaredLogger) PaymentMethodResolver {
	api := &client.API{}
	api.Init(cfg.Stripe.SecretKey, nil)
	return &Client{api: api, log: log}
}

func (c *Client) Resolve(ctx context.Context, paymentMethodID string) (*PaymentMethodDetails, error) {
	if paymentMethodID == "" {
		return nil, fmt.Errorf("empty payment method id")
	}

	operation := func() (*stripe.PaymentMethod, error) {
		return c.api.PaymentMethods.Get(paymentMethodID, &stripe.PaymentMethodParams{
			Params: stripe.Params{Context: ctx},
		})
	}

	pm, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(3),
		backoff.WithMaxElapsedTime(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment method %s: %w", paymentMethodID, err)
	}

	details := &PaymentMethodDetails{Type: string(pm.Type)}
	if pm.Card != nil {
		details.Brand = string(pm.Card.Brand)
		details.Last4 = pm.Card.Last4
	}
	return details, nil
}

var Module = fx.Options(
	fx.Provide(NewClient),
)
