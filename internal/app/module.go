package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/hilalgiving/ledger/internal/app/api/server"
	"github.com/hilalgiving/ledger/internal/app/service/campaign"
	"github.com/hilalgiving/ledger/internal/app/service/donation"
	"github.com/hilalgiving/ledger/internal/app/service/eventlog"
	"github.com/hilalgiving/ledger/internal/app/service/notifier"
	"github.com/hilalgiving/ledger/internal/app/service/receipt"
	"github.com/hilalgiving/ledger/internal/app/service/subscription"
	"github.com/hilalgiving/ledger/internal/app/service/webhook"
	"github.com/hilalgiving/ledger/internal/platform/db"
	"github.com/hilalgiving/ledger/internal/platform/stripegw"
	"github.com/hilalgiving/ledger/internal/repo"
	"github.com/hilalgiving/ledger/pkg/config"
	"github.com/hilalgiving/ledger/pkg/logger"
	"github.com/hilalgiving/ledger/pkg/metrics"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	repo.Module,
	stripegw.Module,
	fx.Provide(metrics.New),
	notifier.Module,
	eventlog.Module,
	receipt.Module,
	campaign.Module,
	subscription.Module,
	donation.Module,
	webhook.Module,
	server.Module,
)
