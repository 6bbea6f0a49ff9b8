package server

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"dirscope/internal/api/middleware"
	"dirscope/internal/config"
	"dirscope/internal/engine"
	"dirscope/internal/http"
	"dirscope/internal/logging"
	"dirscope/internal/monitoring"
	"dirscope/internal/service"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	srv      *nethttp.Server
	registry *service.Registry
	log      *logging.Logger
}

// New assembles the router, middleware and service registry
func New(cfg *config.Config, log *logging.Logger) (*Server, error) {
	registry := service.NewRegistry()

	provider := engine.NewProvider(engine.Options{
		Log:       log,
		Workers:   cfg.Engine.Workers,
		BackupDir: cfg.Engine.BackupDir,
		Extra:     cfg.Engine.ExtraProtected,
	})
	if err := registry.Register(provider); err != nil {
		return nil, err
	}
	log.Info("registered service", zap.String("service", provider.Definition().ID))

	metrics := monitoring.NewMetrics()

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(middleware.RequestID())
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}
	router.Use(monitoring.Middleware(metrics))

	handlers := http.NewHandlers(registry, log, metrics)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/services", handlers.ListServices)
	router.POST("/services/discover", handlers.DiscoverServices)
	router.POST("/services/execute", handlers.ExecuteService)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &nethttp.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		router:   router,
		srv:      srv,
		registry: registry,
		log:      log.Named("server"),
	}, nil
}

// Run starts the server and blocks until it stops
func (s *Server) Run() error {
	s.log.Info("listening", zap.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down")
	return s.srv.Shutdown(ctx)
}
