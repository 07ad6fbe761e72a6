// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize is the default maximum request body size (1MB).
	DefaultMaxRequestSize = 1 << 20

	// DefaultClientRetryMaxAttempts is the default number of retry attempts.
	DefaultClientRetryMaxAttempts = 3

	// DefaultClientRetryMultiplier is the default exponential backoff multiplier.
	DefaultClientRetryMultiplier = 2.0

	// DefaultClientRetryJitterFactor is the default jitter percentage (±25%).
	DefaultClientRetryJitterFactor = 0.25

	// DefaultClientCircuitMaxFailures is the default failures before circuit opens.
	DefaultClientCircuitMaxFailures = 5

	// DefaultClientCircuitHalfOpenLimit is the default successes to close circuit.
	DefaultClientCircuitHalfOpenLimit = 3

	// DefaultTransportMaxIdleConns is the default max idle connections.
	DefaultTransportMaxIdleConns = 100

	// DefaultTransportMaxIdleConnsPerHost is the default max idle connections per host.
	DefaultTransportMaxIdleConnsPerHost = 10

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28

	// DefaultRitualPriceCents is the checkout price of one ritual ($9.99).
	DefaultRitualPriceCents = 999

	// DefaultFulfilmentWorkers is the number of background fulfilment workers.
	DefaultFulfilmentWorkers = 4

	// DefaultFulfilmentQueueSize is the fulfilment queue capacity.
	DefaultFulfilmentQueueSize = 64

	// DefaultRateLimitBurst is the per-client token bucket size.
	DefaultRateLimitBurst = 5
)

// Config is the root configuration structure.
type Config struct {
	App        AppConfig        `koanf:"app"        validate:"required"`
	Server     ServerConfig     `koanf:"server"     validate:"required"`
	Log        LogConfig        `koanf:"log"        validate:"required"`
	Telemetry  TelemetryConfig  `koanf:"telemetry"`
	Client     ClientConfig     `koanf:"client"     validate:"required"`
	Services   ServicesConfig   `koanf:"services"   validate:"required"`
	Payments   PaymentsConfig   `koanf:"payments"   validate:"required"`
	Storage    StorageConfig    `koanf:"storage"    validate:"required"`
	Redis      RedisConfig      `koanf:"redis"      validate:"required"`
	Mail       MailConfig       `koanf:"mail"`
	Fulfilment FulfilmentConfig `koanf:"fulfilment" validate:"required"`
	RateLimit  RateLimitConfig  `koanf:"ratelimit"`
	Features   map[string]any   `koanf:"features"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	RequestTimeout  time.Duration `koanf:"request_timeout"  validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// ClientConfig contains HTTP client settings for downstream services.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	Retry          RetryConfig          `koanf:"retry"           validate:"required"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
}

// RetryConfig contains retry settings for HTTP clients.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"     validate:"required,min=1,max=10"`
	InitialInterval time.Duration `koanf:"initial_interval" validate:"required,min=10ms"`
	MaxInterval     time.Duration `koanf:"max_interval"     validate:"required,min=100ms"`
	Multiplier      float64       `koanf:"multiplier"       validate:"required,min=1.1,max=10"`
	JitterFactor    float64       `koanf:"jitter_factor"    validate:"min=0,max=1"`
}

// CircuitBreakerConfig contains circuit breaker settings for HTTP clients.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

// TransportConfig contains HTTP transport pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
}

// ServicesConfig contains configuration for downstream services.
type ServicesConfig struct {
	OpenAI    OpenAIConfig          `koanf:"openai"    validate:"required"`
	Geocoding ServiceEndpointConfig `koanf:"geocoding" validate:"required"`
}

// ServiceEndpointConfig contains configuration for a downstream service endpoint.
type ServiceEndpointConfig struct {
	BaseURL string `koanf:"base_url" validate:"required,url"`
	Name    string `koanf:"name"     validate:"required"`
}

// OpenAIConfig configures the content and image generation API.
type OpenAIConfig struct {
	BaseURL           string        `koanf:"base_url"            validate:"required,url"`
	Name              string        `koanf:"name"                validate:"required"`
	APIKey            string        `koanf:"api_key"`
	ChatModel         string        `koanf:"chat_model"          validate:"required"`
	ImageModel        string        `koanf:"image_model"         validate:"required"`
	Timeout           time.Duration `koanf:"timeout"             validate:"required,min=1s"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"min=0"`
}

// PaymentsConfig configures Stripe Checkout.
type PaymentsConfig struct {
	SecretKey     string `koanf:"secret_key"`
	WebhookSecret string `koanf:"webhook_secret"`
	UnitAmount    int64  `koanf:"unit_amount" validate:"required,min=50"`
	Currency      string `koanf:"currency"    validate:"required,len=3"`
	PublicURL     string `koanf:"public_url"  validate:"required,url"`
}

// StorageConfig configures DynamoDB tables and the S3 bucket.
type StorageConfig struct {
	Region        string `koanf:"region"          validate:"required"`
	Endpoint      string `koanf:"endpoint"        validate:"omitempty,url"`

	// Static credentials for local emulators. Empty uses the default AWS chain.
	AccessKeyID     string `koanf:"access_key_id"`
	SecretAccessKey string `koanf:"secret_access_key" validate:"required_with=AccessKeyID"`

	OrdersTable   string `koanf:"orders_table"    validate:"required"`
	ResultsTable  string `koanf:"results_table"   validate:"required"`
	Bucket        string `koanf:"bucket"          validate:"required"`
	PublicBaseURL string `koanf:"public_base_url" validate:"omitempty,url"`
}

// RedisConfig configures the cache and webhook de-duplication store.
type RedisConfig struct {
	Addr        string        `koanf:"addr"         validate:"required,hostname_port"`
	Password    string        `koanf:"password"`
	DB          int           `koanf:"db"           validate:"min=0,max=15"`
	LocationTTL time.Duration `koanf:"location_ttl" validate:"required,min=1s"`
	EventTTL    time.Duration `koanf:"event_ttl"    validate:"required,min=1m"`
}

// MailConfig configures ritual delivery emails.
type MailConfig struct {
	Enabled  bool   `koanf:"enabled"`
	From     string `koanf:"from"      validate:"required_if=Enabled true"`
	FromName string `koanf:"from_name"`

	// ConfigurationSet enables SES event publishing when set.
	ConfigurationSet string `koanf:"configuration_set"`
}

// FulfilmentConfig configures background fulfilment.
type FulfilmentConfig struct {
	Workers        int           `koanf:"workers"         validate:"required,min=1,max=64"`
	QueueSize      int           `koanf:"queue_size"      validate:"required,min=1"`
	Timeout        time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	LeaseTTL       time.Duration `koanf:"lease_ttl"       validate:"required,gtefield=Timeout"`
	InternalSecret string        `koanf:"internal_secret"`
}

// RateLimitConfig configures per-client rate limiting of public endpoints.
type RateLimitConfig struct {
	Enabled           bool    `koanf:"enabled"`
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"required_if=Enabled true,min=0"`
	Burst             int     `koanf:"burst"               validate:"required_if=Enabled true,min=0"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "ritual-service",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "120s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "20s",
		"server.request_timeout":  "110s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/ritual-service.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "ritual-service",
		"telemetry.sampling_rate": 1.0,

		"client.timeout":                           "30s",
		"client.retry.max_attempts":                DefaultClientRetryMaxAttempts,
		"client.retry.initial_interval":            "100ms",
		"client.retry.max_interval":                "5s",
		"client.retry.multiplier":                  DefaultClientRetryMultiplier,
		"client.retry.jitter_factor":               DefaultClientRetryJitterFactor,
		"client.circuit_breaker.max_failures":      DefaultClientCircuitMaxFailures,
		"client.circuit_breaker.timeout":           "30s",
		"client.circuit_breaker.half_open_limit":   DefaultClientCircuitHalfOpenLimit,
		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       "90s",

		"services.openai.base_url":            "https://api.openai.com",
		"services.openai.name":                "openai",
		"services.openai.api_key":             "",
		"services.openai.chat_model":          "gpt-4o-mini",
		"services.openai.image_model":         "dall-e-3",
		"services.openai.timeout":             "90s",
		"services.openai.requests_per_second": 5.0,
		"services.geocoding.base_url":         "https://geocoding-api.open-meteo.com",
		"services.geocoding.name":             "geocoding",

		"payments.secret_key":     "",
		"payments.webhook_secret": "",
		"payments.unit_amount":    DefaultRitualPriceCents,
		"payments.currency":       "usd",
		"payments.public_url":     "http://localhost:3000",

		"storage.region":            "us-east-1",
		"storage.endpoint":          "",
		"storage.access_key_id":     "",
		"storage.secret_access_key": "",
		"storage.orders_table":      "ritual-orders",
		"storage.results_table":     "ritual-results",
		"storage.bucket":            "ritual-pdfs",
		"storage.public_base_url":   "",

		"redis.addr":         "localhost:6379",
		"redis.password":     "",
		"redis.db":           0,
		"redis.location_ttl": "24h",
		"redis.event_ttl":    "72h",

		"mail.enabled":   false,
		"mail.from":      "",
		"mail.from_name": "Ritual Generator",

		"mail.configuration_set": "",

		"fulfilment.workers":         DefaultFulfilmentWorkers,
		"fulfilment.queue_size":      DefaultFulfilmentQueueSize,
		"fulfilment.timeout":         "3m",
		"fulfilment.lease_ttl":       "5m",
		"fulfilment.internal_secret": "",

		"ratelimit.enabled":             true,
		"ratelimit.requests_per_second": 0.5,
		"ratelimit.burst":               DefaultRateLimitBurst,

		"features.direct_submit": false,
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix)
//  2. Profile config file (configs/{profile}.yaml)
//  3. Base config file (configs/base.yaml)
//  4. Default values
func Load(profile string) (*Config, error) {
	return LoadFrom("configs", profile)
}

// LoadFrom is Load with an explicit config directory.
func LoadFrom(dir, profile string) (*Config, error) {
	k := koanf.New(".")

	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	err = loadFileIfExists(k, dir+"/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	if profile != "" {
		profilePath := fmt.Sprintf("%s/%s.yaml", dir, profile)

		err := loadFileIfExists(k, profilePath)
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	// APP_SERVICES_OPENAI_API__KEY -> services.openai.api_key
	// A double underscore keeps a literal underscore inside a key segment.
	err = k.Load(env.Provider("APP_", ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKey maps an APP_ environment variable name onto a koanf key path.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "APP_"))
	s = strings.ReplaceAll(s, "__", "\x00")
	s = strings.ReplaceAll(s, "_", ".")

	return strings.ReplaceAll(s, "\x00", "_")
}

// loadFileIfExists loads a YAML config file if it exists.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}

// IsProduction reports whether the service runs in the prod environment.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "prod"
}
