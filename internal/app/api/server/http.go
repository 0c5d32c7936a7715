package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/hilalgiving/ledger/docs"
	"github.com/hilalgiving/ledger/internal/app/api/handlers"
	mw "github.com/hilalgiving/ledger/internal/app/api/middleware"
	"github.com/hilalgiving/ledger/internal/app/service/campaign"
	donsvc "github.com/hilalgiving/ledger/internal/app/service/donation"
	subsvc "github.com/hilalgiving/ledger/internal/app/service/subscription"
	whsvc "github.com/hilalgiving/ledger/internal/app/service/webhook"
	cfgpkg "github.com/hilalgiving/ledger/pkg/config"
	"github.com/hilalgiving/ledger/pkg/metrics"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Add request tracing middleware only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

func registerRoutes(
	r *gin.Engine,
	log *zap.SugaredLogger,
	cfg *cfgpkg.Config,
	m *metrics.Metrics,
	wh *whsvc.Service,
	don *donsvc.Service,
	camp *campaign.Service,
	sub *subsvc.Service,
) {
	// Prometheus metrics on a dedicated listener
	if cfg != nil && cfg.MetricsAddr != "" {
		r.Use(m.HandlerFunc())
		m.Serve(cfg.MetricsAddr)
		log.Infow("metrics started", "addr", cfg.MetricsAddr)
	}

	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(pub)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Gateway webhook endpoint. The raw body must reach the handler untouched
	// for signature verification, so no body-consuming middleware sits here.
	webhooks := r.Group("/api/v1/webhooks")
	webhooks.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterWebhookRoutes(webhooks, wh, log)

	// Admin read APIs
	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterAdminRoutes(apiV1.Group("/admin"), don, camp, sub)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
