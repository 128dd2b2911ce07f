package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultUserAgent is sent on every request unless USER_AGENT overrides it.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36 Edg/135.0.0.0"

// Config holds all application configuration loaded from .env, the
// environment and command line flags, in increasing priority.
type Config struct {
	OutputDir string
	LogLevel  string

	RequestTimeout      time.Duration
	BrandTimeout        time.Duration
	MaxBrandConcurrency int
	HeavyBatchSize      int
	LightBatchSize      int

	UserAgent        string
	CloudflareBypass bool
	BrowserBrands    []string
	ChromeBin        string

	Endpoints Endpoints
}

var defaults = map[string]any{
	"output_dir":            "./output",
	"log_level":             "info",
	"request_timeout":       "30s",
	"brand_timeout":         "10m",
	"max_brand_concurrency": 0,
	"heavy_batch_size":      5,
	"light_batch_size":      10,
	"user_agent":            DefaultUserAgent,
	"cloudflare_bypass":     true,
	"browser_brands":        "",
	"chrome_bin":            "",
}

// Load reads the .env file, then environment variables, then any bound flags
// and returns a populated Config. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if flags != nil {
		for flag, key := range map[string]string{
			"output":    "output_dir",
			"log-level": "log_level",
			"timeout":   "request_timeout",
		} {
			if f := flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("config: bind flag %q: %w", flag, err)
				}
			}
		}
	}

	cfg := &Config{
		OutputDir:           v.GetString("output_dir"),
		LogLevel:            v.GetString("log_level"),
		RequestTimeout:      v.GetDuration("request_timeout"),
		BrandTimeout:        v.GetDuration("brand_timeout"),
		MaxBrandConcurrency: v.GetInt("max_brand_concurrency"),
		HeavyBatchSize:      v.GetInt("heavy_batch_size"),
		LightBatchSize:      v.GetInt("light_batch_size"),
		UserAgent:           v.GetString("user_agent"),
		CloudflareBypass:    v.GetBool("cloudflare_bypass"),
		BrowserBrands:       splitList(v.GetString("browser_brands")),
		ChromeBin:           v.GetString("chrome_bin"),
		Endpoints:           DefaultEndpoints(),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: REQUEST_TIMEOUT must be positive, got %v", c.RequestTimeout)
	}
	if c.BrandTimeout <= 0 {
		return fmt.Errorf("config: BRAND_TIMEOUT must be positive, got %v", c.BrandTimeout)
	}
	if c.HeavyBatchSize <= 0 || c.LightBatchSize <= 0 {
		return fmt.Errorf("config: batch sizes must be positive, got heavy=%d light=%d",
			c.HeavyBatchSize, c.LightBatchSize)
	}
	return nil
}

// UsesBrowser reports whether brand is listed in BROWSER_BRANDS.
func (c *Config) UsesBrowser(brand string) bool {
	for _, b := range c.BrowserBrands {
		if b == brand {
			return true
		}
	}
	return false
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
