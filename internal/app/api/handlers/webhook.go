package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hilalgiving/ledger/internal/app/service/webhook"
	"github.com/hilalgiving/ledger/pkg/logctx"
)

// maxWebhookBody caps the request body read. Gateway events are small; an
// oversized body is rejected rather than buffered.
const maxWebhookBody = 64 * 1024

// @Summary      Stripe Webhook
// @Description  Receives Stripe webhook events. The request must carry a valid Stripe-Signature header; the raw body is verified before any parsing.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature header string true "Stripe signature header"
// @Success      200  {object}  map[string]bool
// @Router       /api/v1/webhooks/stripe [post]
// StripeWebhook handles payment gateway event deliveries.
func StripeWebhook(svc *webhook.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		lg := logctx.FromGin(c, log)

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody)
		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			lg.Warnw("webhook_body_read_failed", "error", err.Error())
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			return
		}

		evt, err := svc.VerifyAndParse(payload, c.GetHeader("Stripe-Signature"))
		if err != nil {
			lg.Warnw("webhook_verification_failed", "error", err.Error())
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}

		if err := svc.Process(c.Request.Context(), evt, payload); err != nil {
			// A 500 tells the gateway to redeliver; the handlers are idempotent
			// so the retry is safe.
			c.JSON(http.StatusInternalServerError, gin.H{"error": "event processing failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

func RegisterWebhookRoutes(r gin.IRouter, svc *webhook.Service, log *zap.SugaredLogger) {
	r.POST("/stripe", StripeWebhook(svc, log))
}
