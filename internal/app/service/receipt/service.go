package receipt

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hilalgiving/ledger/internal/repo"
	"github.com/hilalgiving/ledger/pkg/config"
)

// Service issues unique, sequential receipt numbers. Uniqueness comes from
// the repository's locked counter; this layer only formats. Allocation and
// the subsequent donation write are not one transaction, so a crash in
// between burns the number. Burned numbers are acceptable; duplicates are not.
type Service struct {
	receipts repo.ReceiptRepository
	cfg      *config.Config
	log      *zap.SugaredLogger
}

func NewService(receipts repo.ReceiptRepository, cfg *config.Config, log *zap.SugaredLogger) *Service {
	return &Service{receipts: receipts, cfg: cfg, log: log}
}

// Allocate returns the next receipt number, formatted "<prefix>-<counter>".
func (s *Service) Allocate(ctx context.Context) (string, error) {
	n, err := s.receipts.NextReceiptNumber(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to allocate receipt number: %w", err)
	}
	prefix := s.cfg.Receipt.Prefix
	if prefix == "" {
		prefix = "DN"
	}
	return fmt.Sprintf("%s-%06d", prefix, n), nil
}
