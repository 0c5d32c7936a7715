package webhook

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/hilalgiving/ledger/internal/app/service/donation"
	"github.com/hilalgiving/ledger/internal/app/service/subscription"
	"github.com/hilalgiving/ledger/pkg/types"
)

// RegisterEventHandlers binds the recognized gateway event types to their
// handlers. Adding support for a new event type means one more Register
// call, not a change to any dispatch conditional.
func RegisterEventHandlers(r *Router, don *donation.Service, subs *subscription.Service) {
	r.Register(types.EventPaymentIntentSucceeded, func(ctx context.Context, evt *types.Event) error {
		if evt.Payment == nil {
			return fmt.Errorf("event %s missing payment payload", evt.ID)
		}
		return don.HandlePaymentSucceeded(ctx, evt.Payment)
	})
	r.Register(types.EventPaymentIntentFailed, func(ctx context.Context, evt *types.Event) error {
		if evt.Payment == nil {
			return fmt.Errorf("event %s missing payment payload", evt.ID)
		}
		return don.HandlePaymentFailed(ctx, evt.Payment)
	})
	r.Register(types.EventInvoicePaymentSucceeded, func(ctx context.Context, evt *types.Event) error {
		if evt.Invoice == nil {
			return fmt.Errorf("event %s missing invoice payload", evt.ID)
		}
		return don.HandleInvoicePaid(ctx, evt.Invoice)
	})
	r.Register(types.EventInvoicePaymentFailed, func(ctx context.Context, evt *types.Event) error {
		if evt.Invoice == nil {
			return fmt.Errorf("event %s missing invoice payload", evt.ID)
		}
		return subs.HandleInvoiceFailed(ctx, evt.Invoice)
	})
	r.Register(types.EventSubscriptionCreated, func(ctx context.Context, evt *types.Event) error {
		if evt.Subscription == nil {
			return fmt.Errorf("event %s missing subscription payload", evt.ID)
		}
		return subs.HandleSubscriptionCreated(ctx, evt.Subscription)
	})
	r.Register(types.EventSubscriptionDeleted, func(ctx context.Context, evt *types.Event) error {
		if evt.Subscription == nil {
			return fmt.Errorf("event %s missing subscription payload", evt.ID)
		}
		return subs.HandleSubscriptionDeleted(ctx, evt.Subscription)
	})
}

var Module = fx.Options(
	fx.Provide(NewRouter),
	fx.Provide(NewService),
	fx.Invoke(RegisterEventHandlers),
)
