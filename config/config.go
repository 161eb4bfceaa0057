package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	aws_pkg "venue-booking-service/pkg/aws"
)

const (
	EventsBackendSNS   = "sns"
	EventsBackendKafka = "kafka"
	EventsBackendNone  = "none"

	secretDatabaseURL = "booking/DATABASE_URL"
	secretYooKassa    = "booking/YOOKASSA_CREDENTIALS"
)

// Config holds all configuration for the booking service.
type Config struct {
	Port   string `envconfig:"PORT" default:"8080"`
	AppEnv string `envconfig:"APP_ENV" default:"development"`

	DatabaseURL string `envconfig:"DATABASE_URL"`

	YooKassaShopID    string        `envconfig:"YOOKASSA_SHOP_ID"`
	YooKassaSecretKey string        `envconfig:"YOOKASSA_SECRET_KEY"`
	YooKassaAPIURL    string        `envconfig:"YOOKASSA_API_URL" default:"https://api.yookassa.ru/v3"`
	GatewayTimeout    time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"15s"`

	PaymentReturnURL   string `envconfig:"PAYMENT_RETURN_URL" default:"https://banketzaly.rf"`
	PaymentDescription string `envconfig:"PAYMENT_DESCRIPTION" default:"Бронирование банкетного зала"`

	RedisURL      string        `envconfig:"REDIS_URL"`
	VenueCacheTTL time.Duration `envconfig:"VENUE_CACHE_TTL" default:"5m"`

	EventsBackend      string   `envconfig:"EVENTS_BACKEND" default:"none"`
	BookingSNSTopicARN string   `envconfig:"BOOKING_SNS_TOPIC_ARN"`
	KafkaBrokers       []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic         string   `envconfig:"KAFKA_TOPIC" default:"booking-events"`

	AWSRegion           string `envconfig:"AWS_REGION"`
	AWSEndpoint         string `envconfig:"AWS_ENDPOINT"`
	AWSUseSecrets       bool   `envconfig:"AWS_USE_SECRETS"`
	CloudWatchEnabled   bool   `envconfig:"CLOUDWATCH_ENABLED"`
	CloudWatchNamespace string `envconfig:"CLOUDWATCH_NAMESPACE" default:"VenueBooking"`
	CloudWatchLogGroup  string `envconfig:"CLOUDWATCH_LOG_GROUP" default:"/venue-booking/services"`

	RateLimitPerMinute int `envconfig:"RATE_LIMIT_PER_MINUTE" default:"100"`
	RateLimitBurst     int `envconfig:"RATE_LIMIT_BURST" default:"50"`
}

// GatewayCredentialsConfigured reports whether both YooKassa credentials are set.
func (c *Config) GatewayCredentialsConfigured() bool {
	return c.YooKassaShopID != "" && c.YooKassaSecretKey != ""
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads configuration from .env (when present) and the environment.
// With AWS_USE_SECRETS=true the database URL and gateway credentials are
// overridden from Secrets Manager.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if cfg.AWSUseSecrets {
		awsCfg, err := aws_pkg.LoadAWSConfig(ctx, cfg.AWSRegion, cfg.AWSEndpoint)
		if err != nil {
			return nil, err
		}
		if err := applySecrets(ctx, cfg, aws_pkg.NewSecretsClient(awsCfg)); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type yooKassaCredentials struct {
	ShopID    string `json:"shop_id"`
	SecretKey string `json:"secret_key"`
}

// applySecrets overrides values from Secrets Manager. Secrets that do not
// exist keep the environment values; any other failure aborts startup.
func applySecrets(ctx context.Context, cfg *Config, sm aws_pkg.SecretGetter) error {
	dsn, err := sm.GetSecret(ctx, secretDatabaseURL)
	switch {
	case err == nil:
		cfg.DatabaseURL = dsn
	case !errors.Is(err, aws_pkg.ErrSecretNotFound):
		return err
	}

	var creds yooKassaCredentials
	err = aws_pkg.GetSecretJSON(ctx, sm, secretYooKassa, &creds)
	if errors.Is(err, aws_pkg.ErrSecretNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("invalid %s secret: %w", secretYooKassa, err)
	}
	if creds.ShopID != "" {
		cfg.YooKassaShopID = creds.ShopID
	}
	if creds.SecretKey != "" {
		cfg.YooKassaSecretKey = creds.SecretKey
	}
	return nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	c.EventsBackend = strings.ToLower(strings.TrimSpace(c.EventsBackend))
	switch c.EventsBackend {
	case EventsBackendSNS:
		if c.BookingSNSTopicARN == "" {
			return fmt.Errorf("BOOKING_SNS_TOPIC_ARN is required when EVENTS_BACKEND=sns")
		}
	case EventsBackendKafka:
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf("KAFKA_BROKERS is required when EVENTS_BACKEND=kafka")
		}
	case EventsBackendNone, "":
		c.EventsBackend = EventsBackendNone
	default:
		return fmt.Errorf("unknown EVENTS_BACKEND %q", c.EventsBackend)
	}
	if c.RateLimitPerMinute <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE and RATE_LIMIT_BURST must be positive")
	}
	return nil
}
