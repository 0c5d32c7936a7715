package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/samber/lo"
	stripewebhook "github.com/stripe/stripe-go/v81/webhook"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/hilalgiving/ledger/internal/app/service/eventlog"
	"github.com/hilalgiving/ledger/internal/models"
	"github.com/hilalgiving/ledger/pkg/config"
	"github.com/hilalgiving/ledger/pkg/logctx"
	"github.com/hilalgiving/ledger/pkg/metrics"
	"github.com/hilalgiving/ledger/pkg/types"
)

// Service is the webhook gateway: it authenticates raw inbound requests and
// runs verified events through the router, recording an audit trail either
// way. It holds no mutable state and is safe for concurrent invocations.
type Service struct {
	cfg      *config.Config
	router   *Router
	eventLog *eventlog.Service
	metrics  *metrics.Metrics
	log      *zap.SugaredLogger
}

func NewService(cfg *config.Config, router *Router, el *eventlog.Service, m *metrics.Metrics, log *zap.SugaredLogger) *Service {
	return &Service{cfg: cfg, router: router, eventLog: el, metrics: m, log: log}
}

// VerifyAndParse authenticates the raw body against the signature header
// (shared-secret HMAC with an embedded timestamp and replay window) and
// decodes it into the typed event envelope. The body must arrive exactly as
// the gateway sent it; any re-serialization breaks the signature.
func (s *Service) VerifyAndParse(payload []byte, sigHeader string) (*types.Event, error) {
	ev, err := stripewebhook.ConstructEvent(payload, sigHeader, s.cfg.Stripe.WebhookSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to verify webhook signature: %w", err)
	}
	return normalizeEvent(&ev)
}

// Process runs a verified event through the router. The returned error is
// the handler's: the HTTP layer maps it to a 500 so the gateway redelivers.
func (s *Service) Process(ctx context.Context, evt *types.Event, raw []byte) (resErr error) {
	lg := logctx.FromCtx(ctx, s.log)
	s.metrics.EventReceived(evt.Type)

	var traceID string
	if v, ok := ctx.Value("traceID").(string); ok {
		traceID = v
	}

	s.eventLog.Save(ctx, &models.WebhookEventLog{
		GatewayEventID: evt.ID,
		EventType:      evt.Type,
		TraceID:        traceID,
		ReceivedAt:     time.Now(),
		Data:           datatypes.JSON(raw),
		Status:         models.WebhookEventLogStatusReceived,
	})

	var handled bool
	defer func() {
		status := models.WebhookEventLogStatusHandled
		resMap := map[string]any{"handled": handled}
		if resErr != nil {
			status = models.WebhookEventLogStatusHandleFailed
			resMap["error"] = resErr.Error()
		}
		resBytes, _ := json.Marshal(resMap)
		// the raw payload is already on the received row; the result row
		// carries only the outcome
		s.eventLog.Save(ctx, &models.WebhookEventLog{
			GatewayEventID: evt.ID,
			EventType:      evt.Type,
			TraceID:        traceID,
			ReceivedAt:     time.Now(),
			Result:         lo.ToPtr(datatypes.JSON(resBytes)),
			Status:         status,
		})
	}()

	handled, resErr = s.router.Dispatch(ctx, evt)
	if resErr != nil {
		s.metrics.EventFailed(evt.Type)
		lg.Errorw("webhook_event_failed", "event_id", evt.ID, "type", evt.Type, "error", resErr.Error())
		return resErr
	}

	if !handled {
		s.metrics.EventIgnored(evt.Type)
		lg.Infow("webhook_event_ignored", "event_id", evt.ID, "type", evt.Type)
		return nil
	}

	s.metrics.EventHandled(evt.Type)
	lg.Infow("webhook_event_handled", "event_id", evt.ID, "type", evt.Type)
	return nil
}
