package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/ritual-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/ritual-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/ritual-service/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default deadline for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains the handlers and policies the router wires together.
// A nil handler leaves its routes unregistered.
type RouterConfig struct {
	// ServiceName names the otelgin tracer.
	ServiceName string

	Health     *handlers.HealthHandler
	Rituals    *handlers.RitualHandler
	Checkout   *handlers.CheckoutHandler
	Fulfilment *handlers.FulfilmentHandler
	Reference  *handlers.ReferenceHandler

	// Timeout is the deadline for public API requests.
	Timeout time.Duration

	// FulfilmentTimeout replaces Timeout on the fulfilment route, which waits
	// on text and image generation.
	FulfilmentTimeout time.Duration

	// InternalSecret guards the fulfilment route. Empty closes it.
	InternalSecret string

	// RateLimiter throttles the routes that spend money or model tokens.
	// Nil disables limiting.
	RateLimiter *middleware.RateLimiter
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - tracing and metrics
//  5. Logging - request logging (skips health endpoints)
//  6. Deadline - applied per route group
//
// Route groups:
//   - /-/ (internal): health, build info and metrics, no deadline
//   - /api/v1/ (public API): quiz, checkout, webhooks and lookups
//   - /api/v1/fulfilment: shared-secret only, longer deadline
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.ServiceName)...)
	engine.Use(middleware.Logging())

	if cfg.Health != nil {
		cfg.Health.RegisterHealthRoutesOnEngine(engine)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	api := engine.Group("/api/v1")
	public := api.Group("", middleware.Deadline(timeout))

	setupPublicRoutes(public, cfg)
	setupInternalRoutes(api, cfg)
}

func setupPublicRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	limited := rg.Group("")
	if cfg.RateLimiter != nil {
		limited.Use(cfg.RateLimiter.Middleware())
	}

	if cfg.Rituals != nil {
		limited.POST("/rituals/submit", cfg.Rituals.Submit)
		rg.GET("/results/:id", cfg.Rituals.GetResult)
	}

	if cfg.Checkout != nil {
		limited.POST("/checkout", cfg.Checkout.CreateCheckout)
		rg.POST("/webhooks/stripe", cfg.Checkout.Webhook)
		rg.GET("/orders/:id", cfg.Checkout.GetOrder)
	}

	if cfg.Reference != nil {
		rg.GET("/zodiac", cfg.Reference.Zodiac)
		rg.GET("/locations", cfg.Reference.Locations)
	}
}

func setupInternalRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.Fulfilment == nil {
		return
	}

	timeout := cfg.FulfilmentTimeout
	if timeout <= 0 {
		timeout = cfg.Timeout
	}

	rg.POST("/fulfilment",
		middleware.RequireInternalSecret(cfg.InternalSecret),
		middleware.Deadline(timeout),
		cfg.Fulfilment.Fulfil,
	)
}
