package webhook

import (
	"context"

	"go.uber.org/zap"

	"github.com/hilalgiving/ledger/pkg/types"
)

// HandlerFunc processes one normalized gateway event. Handlers are
// responsible for their own idempotency, keyed by a natural identifier from
// the payload such as the payment-intent or subscription id.
type HandlerFunc func(ctx context.Context, evt *types.Event) error

// Router dispatches events by type through a registry. Registration happens
// once at wiring time; dispatch is read-only and safe for concurrent use.
type Router struct {
	handlers map[string]HandlerFunc
	log      *zap.SugaredLogger
}

func NewRouter(log *zap.SugaredLogger) *Router {
	return &Router{handlers: map[string]HandlerFunc{}, log: log}
}

// Register binds a handler to a gateway event type, replacing any previous
// binding for that type.
func (r *Router) Register(eventType string, h HandlerFunc) {
	r.handlers[eventType] = h
}

// Dispatch routes the event to its registered handler. Unrecognized types
// report handled=false with no error: new gateway event types must be
// acknowledged, not retried.
func (r *Router) Dispatch(ctx context.Context, evt *types.Event) (handled bool, err error) {
	h, ok := r.handlers[evt.Type]
	if !ok {
		return false, nil
	}
	return true, h(ctx, evt)
}
