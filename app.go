// @title           WHOIS Lookup API
// @version         1.0
// @description     Batch WHOIS/RDAP lookups for one or more domain names.

// @contact.name   API Support
// @contact.email  info@bentech.app

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/vit0-9/whois_api/config"
	_ "github.com/vit0-9/whois_api/docs"
	"github.com/vit0-9/whois_api/handlers"
	"github.com/vit0-9/whois_api/pkg/lookup"
	"github.com/vit0-9/whois_api/pkg/middleware"
)

// App encapsulates all the components of the application
type App struct {
	Router        *gin.Engine
	WhoisHandlers *handlers.WhoisHandlers
	HealthHandler *handlers.HealthHandler

	cfg    *config.Config
	logger *zap.Logger
	server *http.Server
}

// NewApp creates and initializes a new application instance
func NewApp(cfg *config.Config, resolver lookup.Resolver, logger *zap.Logger) (*App, error) {
	if resolver == nil {
		return nil, errors.New("no resolver configured")
	}

	aggregator := lookup.NewAggregator(resolver, lookup.Config{
		MaxConcurrency: cfg.Lookup.MaxConcurrency,
	}, logger)
	aggregator.SetMetricsRecord(middleware.RecordLookup)

	router := gin.New()
	router.Use(gin.Recovery())

	app := &App{
		Router:        router,
		WhoisHandlers: handlers.NewWhoisHandlers(aggregator, logger),
		HealthHandler: handlers.NewHealthHandler(),
		cfg:           cfg,
		logger:        logger,
	}

	app.setupMiddleware()
	app.setupRoutes()
	return app, nil
}

func (app *App) setupMiddleware() {
	origins := app.cfg.Server.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	app.Router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: !containsWildcard(origins),
		MaxAge:           12 * time.Hour,
	}))

	app.Router.Use(middleware.RequestID())
	app.Router.Use(middleware.Prometheus())
	app.Router.Use(middleware.RequestLogger(app.logger))
}

// setupRoutes defines all the application routes
func (app *App) setupRoutes() {
	app.Router.GET("/api/v1/health", app.HealthHandler.HealthCheckHandler)
	app.Router.GET("/metrics", middleware.MetricsHandler())

	lookupRoutes := app.Router.Group("/")
	if rps := app.cfg.Server.RateLimitRPS; rps > 0 {
		lookupRoutes.Use(middleware.RateLimiter(rps, rps*2))
	}
	{
		lookupRoutes.GET("/lookup", app.WhoisHandlers.LookupHandler)
		// Path used by the web frontend.
		lookupRoutes.GET("/api/whois", app.WhoisHandlers.LookupHandler)
	}

	app.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
}

// Start runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func (app *App) Start(ctx context.Context, addr string) error {
	app.server = &http.Server{
		Addr:              addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("API server starting", zap.String("addr", addr))
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info("shutting down server...")
	shutCtx, cancel := context.WithTimeout(context.Background(), app.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := app.server.Shutdown(shutCtx); err != nil {
		return err
	}
	app.logger.Info("server stopped")
	return nil
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			return true
		}
	}
	return false
}
