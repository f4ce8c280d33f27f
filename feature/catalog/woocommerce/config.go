package woocommerce

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// MaxPageSize is the largest per_page value the WooCommerce REST API accepts.
const MaxPageSize = 100

// Config holds the WooCommerce REST API connection settings.
type Config struct {
	// BaseURL is the shop root, e.g. https://shop.example.com.
	BaseURL string `mapstructure:"base_url" default:""`
	// APIPath is appended to BaseURL.
	APIPath string `mapstructure:"api_path" default:"/wp-json/wc/v3"`
	// ConsumerKey is the REST API key.
	ConsumerKey string `mapstructure:"consumer_key" default:""`
	// ConsumerSecret is the REST API secret.
	ConsumerSecret string `mapstructure:"consumer_secret" default:""`
	// PageSize is the per_page value, capped at MaxPageSize.
	PageSize int `mapstructure:"page_size" default:"100"`
	// Status filters products by post status. Empty pulls every status.
	Status string `mapstructure:"status" default:"publish"`
	// PageDelay is the minimum delay between page requests.
	PageDelay time.Duration `mapstructure:"page_delay" default:"250ms"`
	// Timeout bounds each HTTP request.
	Timeout time.Duration `mapstructure:"timeout" default:"30s"`
}

// pageSize returns the effective per_page value.
func (c Config) pageSize() int {
	if c.PageSize <= 0 || c.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return c.PageSize
}

// MarshalLogObject implements zapcore.ObjectMarshaler. Credentials are never written.
func (c Config) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("base_url", c.BaseURL)
	enc.AddString("api_path", c.APIPath)
	enc.AddInt("page_size", c.pageSize())
	enc.AddString("status", c.Status)
	enc.AddDuration("page_delay", c.PageDelay)
	enc.AddDuration("timeout", c.Timeout)
	enc.AddBool("has_credentials", c.ConsumerKey != "" && c.ConsumerSecret != "")
	return nil
}
