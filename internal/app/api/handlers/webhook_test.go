package handlers

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v81"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hilalgiving/ledger/internal/app/service/eventlog"
	whsvc "github.com/hilalgiving/ledger/internal/app/service/webhook"
	"github.com/hilalgiving/ledger/internal/repo/repotest"
	"github.com/hilalgiving/ledger/pkg/config"
	"github.com/hilalgiving/ledger/pkg/metrics"
	"github.com/hilalgiving/ledger/pkg/types"
)

const testWebhookSecret = "whsec_test_secret"

func newWebhookService(register func(r *whsvc.Router)) *whsvc.Service {
	log := zap.NewNop().Sugar()
	cfg := &config.Config{Stripe: config.StripeConfig{WebhookSecret: testWebhookSecret}}
	router := whsvc.NewRouter(log)
	if register != nil {
		register(router)
	}
	return whsvc.NewService(cfg, router, eventlog.New(repotest.NewMemEventLogs(), log), metrics.New(log), log)
}

func newWebhookRouter(svc *whsvc.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/webhooks/stripe", StripeWebhook(svc, zap.NewNop().Sugar()))
	return r
}

func signedBody(t *testing.T, eventType string) ([]byte, string) {
	t.Helper()
	payload := []byte(fmt.Sprintf(`{"id":"evt_1","api_version":%q,"type":%q,"data":{"object":{"id":"pi_1","amount":100,"metadata":{}}}}`,
		stripe.APIVersion, eventType))
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return payload, fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestStripeWebhook_InvalidSignature(t *testing.T) {
	r := newWebhookRouter(newWebhookService(nil))

	payload, _ := signedBody(t, types.EventPaymentIntentSucceeded)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/stripe", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStripeWebhook_MissingSignature(t *testing.T) {
	r := newWebhookRouter(newWebhookService(nil))

	payload, _ := signedBody(t, types.EventPaymentIntentSucceeded)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/stripe", bytes.NewReader(payload))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStripeWebhook_HandledEvent(t *testing.T) {
	svc := newWebhookService(func(r *whsvc.Router) {
		r.Register(types.EventPaymentIntentSucceeded, func(context.Context, *types.Event) error {
			return nil
		})
	})
	r := newWebhookRouter(svc)

	payload, header := signedBody(t, types.EventPaymentIntentSucceeded)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/stripe", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", header)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"received":true`)
}

func TestStripeWebhook_UnknownTypeAcknowledged(t *testing.T) {
	r := newWebhookRouter(newWebhookService(nil))

	payload, header := signedBody(t, "charge.refunded")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/stripe", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", header)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"received":true`)
}

func TestStripeWebhook_HandlerFailure(t *testing.T) {
	svc := newWebhookService(func(r *whsvc.Router) {
		r.Register(types.EventPaymentIntentSucceeded, func(context.Context, *types.Event) error {
			return fmt.Errorf("store unavailable")
		})
	})
	r := newWebhookRouter(svc)

	payload, header := signedBody(t, types.EventPaymentIntentSucceeded)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/stripe", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", header)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
