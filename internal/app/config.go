package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Config holds the complete application configuration, loadable from
// environment variables (BAKERY_ prefix), flags, or YAML config files.
type Config struct {
	Addr            string `default:"0.0.0.0:8080" usage:"API server listen address"`
	OrderWebhookURL string `usage:"order intake endpoint URL (BAKERY_ORDER_WEBHOOK_URL)" flag:"order-webhook-url"`
	CatalogPath     string `default:"" usage:"catalog JSON file (.json or .json.gz); empty uses the embedded catalog" flag:"catalog-path"`
	ImageBaseURL    string `default:"" usage:"Base URL for product images (e.g. https://cdn.example.com/images)" flag:"image-base-url"`
	Checkout        CheckoutConfig
	Cart            CartConfig
	RateLimit       RateLimitConfig
	CORS            CORSConfig
	Graceful        GracefulConfig
}

// CheckoutConfig controls order composition and submission.
type CheckoutConfig struct {
	OrderPrefix           string          `default:"MK"   usage:"Order number prefix" flag:"order-prefix"`
	FreeShippingThreshold decimal.Decimal `default:"2000" usage:"Subtotal at which home delivery ships free" flag:"free-shipping-threshold"`
	ShippingFee           decimal.Decimal `default:"180"  usage:"Flat home delivery fee below the threshold" flag:"shipping-fee"`
	SubmitTimeout         time.Duration   `default:"10s"  usage:"Order submission request timeout" flag:"submit-timeout"`
}

// CartConfig controls session cart lifetime.
type CartConfig struct {
	TTL time.Duration `default:"2h" usage:"Idle session cart lifetime"`
}

// RateLimitConfig controls the per-client rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "BAKERY",
		Files:     []string{"config.yaml", "/etc/bakery/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.OrderWebhookURL == "" {
		return nil, errors.New("order webhook URL is required: set BAKERY_ORDER_WEBHOOK_URL")
	}

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables
// (Railway, Render, etc.) that use standard names like PORT to the
// application's BAKERY_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
