package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/adsretail/billdesk/internal/auth"
	"github.com/adsretail/billdesk/internal/billing"
	"github.com/adsretail/billdesk/internal/billing/domain"
	"github.com/adsretail/billdesk/internal/config"
	"github.com/adsretail/billdesk/internal/observability/logger"
	"github.com/adsretail/billdesk/internal/observability/metrics"
	"github.com/adsretail/billdesk/internal/providers/pdf"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	auth.Module,
	pdf.Module,
	billing.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger, m *metrics.Metrics) *gin.Engine {
	if !cfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(log.Named("http")))
	r.Use(metrics.GinMiddleware(m))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})))

	return r
}

// Server holds the handler dependencies.
type Server struct {
	engine     *gin.Engine
	log        *zap.Logger
	sessions   *auth.Sessions
	billingSvc domain.Service
}

type ServerParams struct {
	fx.In

	Engine     *gin.Engine
	Log        *zap.Logger
	Sessions   *auth.Sessions
	BillingSvc domain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:     p.Engine,
		log:        p.Log.Named("server"),
		sessions:   p.Sessions,
		billingSvc: p.BillingSvc,
	}
}

func registerRoutes(s *Server) {
	api := s.engine.Group("/api")
	api.POST("/login", s.Login)
	api.POST("/logout", s.Logout)

	bills := api.Group("/bills")
	bills.Use(s.RequireSession())
	bills.POST("", s.SubmitBill)
	bills.GET("", s.ListBills)
	bills.GET("/stats", s.BillStats)
	bills.GET("/:number", s.GetBill)
	bills.GET("/:number/pdf", s.DownloadInvoice)
}

func run(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
