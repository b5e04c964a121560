package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
)

type Configuration struct {
	Logging LoggingConfig `validate:"required"`
	Billing BillingConfig `validate:"required"`
	Payment PaymentConfig `validate:"required"`
	Cache   CacheConfig
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// BillingConfig carries the invoice generation policy knobs.
type BillingConfig struct {
	// TaxRate is the flat rate applied to every invoice subtotal,
	// expressed as a decimal string, e.g. "0.1" for 10%.
	TaxRate string `validate:"required"`
	// InvoiceDueDays is the grace period between an invoice's issue date
	// and its due date.
	InvoiceDueDays int `validate:"required,min=1"`
}

// PaymentConfig carries the simulated gateway policy knobs.
type PaymentConfig struct {
	// GatewaySuccessRate is the probability the simulated gateway
	// approves a charge, in [0, 1].
	GatewaySuccessRate float64 `validate:"min=0,max=1"`
	// GatewayLatency is the artificial delay the simulated gateway adds
	// to every charge.
	GatewayLatency time.Duration
	// GatewayTimeout bounds a single gateway call; a charge exceeding it
	// is recorded as a failed transaction with a timeout reason.
	GatewayTimeout time.Duration `validate:"required"`
}

type CacheConfig struct {
	Enabled bool
}

func NewConfig() (*Configuration, error) {
	// Load .env if present; real env vars still win.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("BILLING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, ierr.WithError(err).
				WithHint("Failed to read config file").
				Mark(ierr.ErrSystem)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to unmarshal configuration").
			Mark(ierr.ErrSystem)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("billing.taxrate", "0.1")
	v.SetDefault("billing.invoiceduedays", 14)
	v.SetDefault("payment.gatewaysuccessrate", 0.8)
	v.SetDefault("payment.gatewaylatency", 100*time.Millisecond)
	v.SetDefault("payment.gatewaytimeout", 5*time.Second)
	v.SetDefault("cache.enabled", true)
}

// Validate checks structural constraints plus the fields the validator
// tags cannot express.
func (c *Configuration) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid configuration").
			Mark(ierr.ErrValidation)
	}
	if _, err := c.ParsedTaxRate(); err != nil {
		return err
	}
	return nil
}

// ParsedTaxRate returns the configured tax rate as a decimal.
func (c *Configuration) ParsedTaxRate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(c.Billing.TaxRate)
	if err != nil {
		return decimal.Zero, ierr.WithError(err).
			WithHintf("Tax rate %q is not a decimal", c.Billing.TaxRate).
			Mark(ierr.ErrValidation)
	}
	if rate.IsNegative() {
		return decimal.Zero, ierr.NewError("negative tax rate").
			WithHint("Tax rate must not be negative").
			Mark(ierr.ErrValidation)
	}
	return rate, nil
}

// GetDefaultConfig returns the configuration used by tests and scripts.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Logging: LoggingConfig{Level: types.LogLevelInfo},
		Billing: BillingConfig{
			TaxRate:        "0.1",
			InvoiceDueDays: 14,
		},
		Payment: PaymentConfig{
			GatewaySuccessRate: 0.8,
			GatewayLatency:     0,
			GatewayTimeout:     5 * time.Second,
		},
		Cache: CacheConfig{Enabled: true},
	}
}
