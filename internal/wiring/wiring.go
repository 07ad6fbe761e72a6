// Package wiring builds the adapters and application services from configuration.
package wiring

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/jsamuelsen/ritual-service/internal/adapters/cache"
	"github.com/jsamuelsen/ritual-service/internal/adapters/clients"
	"github.com/jsamuelsen/ritual-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/ritual-service/internal/adapters/featureflags"
	"github.com/jsamuelsen/ritual-service/internal/adapters/mail"
	"github.com/jsamuelsen/ritual-service/internal/adapters/payments"
	"github.com/jsamuelsen/ritual-service/internal/adapters/pdf"
	"github.com/jsamuelsen/ritual-service/internal/adapters/storage"
	"github.com/jsamuelsen/ritual-service/internal/adapters/storage/blob"
	"github.com/jsamuelsen/ritual-service/internal/adapters/storage/dynamo"
	"github.com/jsamuelsen/ritual-service/internal/app"
	"github.com/jsamuelsen/ritual-service/internal/platform/config"
	"github.com/jsamuelsen/ritual-service/internal/platform/metrics"
	"github.com/jsamuelsen/ritual-service/internal/ports"
)

// Services holds the wired application layer.
type Services struct {
	Rituals    *app.RitualService
	Fulfilment *app.FulfilmentService
	Locations  *app.LocationService
	Workers    *app.FulfilmentWorkers

	// Checkout is nil when payment credentials are not configured.
	Checkout *app.CheckoutService

	Health  *ports.DefaultHealthRegistry
	Metrics *metrics.Metrics

	redis *redis.Client
}

// Close releases connections held by the adapters.
func (s *Services) Close() error {
	if s.redis == nil {
		return nil
	}

	return s.redis.Close()
}

// Build creates every adapter from cfg and the services on top of them.
// Required readiness checks (DynamoDB, S3) and optional ones (Redis, SES,
// downstream circuits) are registered on the returned registry.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*Services, error) {
	m := metrics.New(reg)
	registry := ports.NewHealthRegistry()

	awsCfg, err := storage.LoadAWSConfig(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	endpoint := storage.Endpoint(cfg.Storage)

	ddb := dynamo.NewClient(awsCfg, endpoint)
	orders := dynamo.NewOrderRepository(ddb, cfg.Storage.OrdersTable)
	results := dynamo.NewResultRepository(ddb, cfg.Storage.ResultsTable)

	store := blob.NewStore(blob.NewClient(awsCfg, endpoint), cfg.Storage.Bucket, cfg.Storage.Region, cfg.Storage.PublicBaseURL)

	rdb := cache.NewClient(cfg.Redis)
	redisCache := cache.NewCache(rdb)
	dedup := cache.NewDeduplicator(rdb, cfg.Redis.EventTTL)
	locker := cache.NewLocker(rdb)

	openAIHTTP, err := clients.New(&clients.Config{
		BaseURL:           cfg.Services.OpenAI.BaseURL,
		ServiceName:       cfg.Services.OpenAI.Name,
		Timeout:           cfg.Services.OpenAI.Timeout,
		Retry:             cfg.Client.Retry,
		Circuit:           cfg.Client.CircuitBreaker,
		Transport:         cfg.Client.Transport,
		RequestsPerSecond: cfg.Services.OpenAI.RequestsPerSecond,
		AuthFunc:          acl.BearerAuth(cfg.Services.OpenAI.APIKey),
		Logger:            logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %s client: %w", cfg.Services.OpenAI.Name, err)
	}

	geoHTTP, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Geocoding.BaseURL,
		ServiceName: cfg.Services.Geocoding.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %s client: %w", cfg.Services.Geocoding.Name, err)
	}

	generator := acl.NewOpenAIClient(acl.OpenAIConfig{
		Client:     openAIHTTP,
		ChatModel:  cfg.Services.OpenAI.ChatModel,
		ImageModel: cfg.Services.OpenAI.ImageModel,
		Logger:     logger,
	})

	var mailer ports.Mailer

	if cfg.Mail.Enabled {
		ses, merr := mail.NewMailer(mail.NewClient(awsCfg, endpoint), mail.Config{
			From:             cfg.Mail.From,
			FromName:         cfg.Mail.FromName,
			ConfigurationSet: cfg.Mail.ConfigurationSet,
			Logger:           logger,
		})
		if merr != nil {
			return nil, merr
		}

		mailer = ses

		if err := registry.Register(ses); err != nil {
			return nil, err
		}
	} else {
		logger.Warn("mail delivery disabled; fulfilled orders keep their PDF link only")
	}

	for _, c := range []ports.HealthChecker{
		dynamo.NewHealthCheck(ddb, cfg.Storage.OrdersTable, cfg.Storage.ResultsTable),
		store,
		redisCache,
		openAIHTTP.HealthCheck(),
		geoHTTP.HealthCheck(),
	} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("registering %s health check: %w", c.Name(), err)
		}
	}

	prompts, err := app.NewPromptBuilder(ports.SystemClock{})
	if err != nil {
		return nil, fmt.Errorf("loading prompt templates: %w", err)
	}

	rituals := app.NewRitualService(app.RitualServiceConfig{
		Prompts:   prompts,
		Generator: generator,
		Results:   results,
		Flags:     featureflags.NewStatic(cfg.Features),
		Metrics:   m,
		Logger:    logger,
	})

	fulfilment := app.NewFulfilmentService(app.FulfilmentServiceConfig{
		Orders:   orders,
		Results:  results,
		Rituals:  rituals,
		Renderer: pdf.NewRenderer(pdf.Options{}),
		Store:    store,
		Mailer:   mailer,
		Locker:   locker,
		LeaseTTL: cfg.Fulfilment.LeaseTTL,
		Metrics:  m,
		Logger:   logger,
	})

	workers := app.NewFulfilmentWorkers(fulfilment, app.WorkerPoolConfig{
		Workers:    cfg.Fulfilment.Workers,
		QueueSize:  cfg.Fulfilment.QueueSize,
		JobTimeout: cfg.Fulfilment.Timeout,
	}, m, logger)

	svc := &Services{
		Rituals:    rituals,
		Fulfilment: fulfilment,
		Locations:  app.NewLocationService(acl.NewGeocodingClient(geoHTTP, logger), redisCache, cfg.Redis.LocationTTL, m, logger),
		Workers:    workers,
		Health:     registry,
		Metrics:    m,
		redis:      rdb,
	}

	if cfg.Payments.SecretKey == "" || cfg.Payments.WebhookSecret == "" {
		// Production config validation rejects this, so only local profiles get here.
		logger.Warn("payments not configured; checkout and webhook routes are disabled")

		return svc, nil
	}

	gateway, err := payments.NewGateway(payments.Config{
		SecretKey:     cfg.Payments.SecretKey,
		WebhookSecret: cfg.Payments.WebhookSecret,
		Logger:        logger,
	})
	if err != nil {
		return nil, err
	}

	svc.Checkout = app.NewCheckoutService(app.CheckoutServiceConfig{
		Orders:  orders,
		Gateway: gateway,
		Dedup:   dedup,
		Queue:   workers,
		Settings: app.CheckoutSettings{
			UnitAmount: cfg.Payments.UnitAmount,
			Currency:   cfg.Payments.Currency,
			PublicURL:  cfg.Payments.PublicURL,
		},
		Metrics: m,
		Logger:  logger,
	})

	return svc, nil
}
