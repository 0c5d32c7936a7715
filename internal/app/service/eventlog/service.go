package eventlog

import (
	"context"

	"go.uber.org/zap"

	"github.com/hilalgiving/ledger/internal/models"
	"github.com/hilalgiving/ledger/internal/repo"
	"github.com/hilalgiving/ledger/pkg/logctx"
)

// Service writes the webhook audit trail. Saves happen off the request
// goroutine; a failed audit write never affects event handling.
type Service struct {
	logs repo.EventLogRepository
	log  *zap.SugaredLogger
}

func New(logs repo.EventLogRepository, log *zap.SugaredLogger) *Service {
	return &Service{logs: logs, log: log}
}

// Save asynchronously persists a webhook event log entry. Nil input is
// ignored. The write runs on a context detached from request cancellation:
// the result row lands after the HTTP response has been sent, and must not
// be lost to the request context being cancelled.
func (s *Service) Save(ctx context.Context, entry *models.WebhookEventLog) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		if entry == nil {
			return
		}
		if err := s.logs.Save(ctx, entry); err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("failed to save webhook event log: %v", err)
		}
	}()
}
