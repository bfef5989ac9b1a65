// Package server provides HTTP server initialization and lifecycle management.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"inventory/src/app/http/handler"
	"inventory/src/app/middleware"
	"inventory/src/core/ports"
	"inventory/src/core/usecase"
	"inventory/src/core/validation"
	"inventory/src/infra/auth"
	"inventory/src/infra/config"
	"inventory/src/infra/logger"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	cfg    *config.Config
	log    *slog.Logger
	router *gin.Engine
	http   *http.Server
	tokens middleware.TokenParser

	healthHandler    *handler.HealthHandler
	categoryHandler  *handler.CategoryHandler
	productHandler   *handler.ProductHandler
	dashboardHandler *handler.DashboardHandler
}

// New creates a new Server with all dependencies wired up.
func New(cfg *config.Config, log *slog.Logger, store ports.Store) (*Server, error) {
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// A nil parser disables authentication, so only assign when enabled.
	var tokens middleware.TokenParser
	if cfg.Auth.Enabled {
		svc, err := auth.NewTokenService(cfg.Auth)
		if err != nil {
			return nil, err
		}
		tokens = svc
	} else {
		log.Warn("authentication disabled, every request acts as admin")
	}

	uc := usecase.NewHandlers(store, validation.New(), logger.Components(log))
	healthService := usecase.NewHealthService(store.Health, cfg.Store.Driver, logger.WithComponent(log, "health"))

	s := &Server{
		cfg:              cfg,
		log:              log,
		router:           gin.New(),
		tokens:           tokens,
		healthHandler:    handler.NewHealthHandler(healthService),
		categoryHandler:  handler.NewCategoryHandler(uc),
		productHandler:   handler.NewProductHandler(uc),
		dashboardHandler: handler.NewDashboardHandler(uc),
	}

	s.setupMiddleware()
	s.setupRoutes()
	s.setupHTTPServer()

	return s, nil
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	// Order matters: Recovery should be first to catch all panics
	s.router.Use(middleware.Recovery(s.log))
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.SecurityHeaders())
	s.router.Use(middleware.CORS(s.cfg.CORS.AllowedOrigins))
	s.router.Use(middleware.Logging(s.log))
	if s.cfg.RateLimit.Enabled {
		s.router.Use(middleware.NewRateLimiter(s.cfg.RateLimit).Middleware())
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	writers := middleware.RequireRole(auth.RoleManager, auth.RoleAdmin)
	admins := middleware.RequireRole(auth.RoleAdmin)

	api := s.router.Group("/api")

	// Health check endpoints (no auth required)
	api.GET("/health", s.healthHandler.Health)
	api.GET("/health/detailed", s.healthHandler.DetailedHealth)

	secured := api.Group("", middleware.Authenticate(s.tokens))
	{
		categories := secured.Group("/categories")
		categories.GET("", s.categoryHandler.List)
		categories.GET("/:id", s.categoryHandler.Get)
		categories.GET("/:id/products", s.categoryHandler.Products)
		categories.POST("", writers, s.categoryHandler.Create)
		categories.PUT("/:id", writers, s.categoryHandler.Update)
		categories.DELETE("/:id", admins, s.categoryHandler.Delete)

		products := secured.Group("/products")
		products.GET("", s.productHandler.List)
		products.GET("/list", s.productHandler.ListPaged)
		products.GET("/low-stock", s.productHandler.LowStock)
		products.GET("/:id", s.productHandler.Get)
		products.POST("", writers, s.productHandler.Create)
		products.PUT("/:id", writers, s.productHandler.Update)
		products.PATCH("/:id", writers, s.productHandler.Update)
		products.PATCH("/:id/stock", writers, s.productHandler.UpdateStock)
		products.POST("/:id/stock/add", writers, s.productHandler.AddStock)
		products.POST("/:id/stock/remove", writers, s.productHandler.RemoveStock)
		products.DELETE("/:id", admins, s.productHandler.Delete)

		dashboard := secured.Group("/dashboard")
		dashboard.GET("/stats", s.dashboardHandler.Stats)
		dashboard.GET("/products-by-category", s.dashboardHandler.ProductsByCategory)
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{
				"code":       "NOT_FOUND",
				"message":    "The requested resource was not found",
				"request_id": middleware.GetRequestID(c),
			},
		})
	})
}

// setupHTTPServer configures the underlying HTTP server.
func (s *Server) setupHTTPServer() {
	s.http = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled or a
// SIGINT/SIGTERM arrives, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting HTTP server", "addr", s.cfg.Server.Addr())
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.log.Info("received shutdown signal")
	case err := <-errCh:
		return err
	}

	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	s.log.Info("shutting down server", "timeout", s.cfg.Server.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("server stopped gracefully")
	return nil
}

// Router returns the Gin router for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}
