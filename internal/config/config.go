package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StoreConfig struct {
	Driver    string
	Path      string
	Namespace string
	Redis     RedisConfig
}

type CurrencyConfig struct {
	Symbol string
	Code   string
}

// CheckoutConfig carries the rate policy used for derived totals. Two
// presets exist: "lk" (free shipping over Rs. 15,000, Rs. 500 flat fee)
// and "legacy-usd" (free shipping over 50, 9.99 flat fee). Explicit
// threshold/fee values win over the preset.
type CheckoutConfig struct {
	RatePolicy            string
	FreeShippingThreshold float64
	FlatShippingFee       float64
	TaxRate               float64
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Backend          BackendConfig
	Store            StoreConfig
	Currency         CurrencyConfig
	Checkout         CheckoutConfig
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("ASALI")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyRatePolicy(&cfg.Checkout)

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "127.0.0.1")
	v.SetDefault("http.port", 3000)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("backend.baseurl", "http://localhost:5000/api")
	v.SetDefault("backend.timeout", "15s")

	v.SetDefault("store.driver", "file")
	v.SetDefault("store.namespace", "asali")
	v.SetDefault("store.redis.addr", "127.0.0.1:6379")
	v.SetDefault("store.redis.db", 0)

	v.SetDefault("currency.symbol", "Rs.")
	v.SetDefault("currency.code", "LKR")

	v.SetDefault("checkout.ratepolicy", "lk")
	v.SetDefault("checkout.taxrate", 0.08)
}

func applyRatePolicy(c *CheckoutConfig) {
	if c.FreeShippingThreshold != 0 || c.FlatShippingFee != 0 {
		return
	}

	switch c.RatePolicy {
	case "legacy-usd":
		c.FreeShippingThreshold = 50
		c.FlatShippingFee = 9.99
	default: // "lk"
		c.FreeShippingThreshold = 15000
		c.FlatShippingFee = 500
	}
}
