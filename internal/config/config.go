package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port     string
	Env      string
	LogLevel string

	// REST API
	API APIConfig

	// Rate limiting of form posts
	RateLimitPerMinute int
	RateLimitBurst     int
	// TrustedProxies lists the CIDRs whose X-Forwarded-For is believed.
	// Empty means the client IP is the TCP peer.
	TrustedProxies []string

	// Flash toasts
	FlashCookieName string
	CookieSecure    bool

	// Tracing
	TracingEnabled  bool
	OTelServiceName string
}

// APIConfig holds the REST API the client talks to
type APIConfig struct {
	BaseURL        string
	Timeout        time.Duration
	CategoriesPath string
	EntriesPath    string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		API: APIConfig{
			BaseURL:        getEnv("API_BASE_URL", ""),
			Timeout:        getEnvDuration("API_TIMEOUT", 10*time.Second),
			CategoriesPath: getEnv("CATEGORIES_PATH", "categories"),
			EntriesPath:    getEnv("ENTRIES_PATH", "entries"),
		},
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 10),
		TrustedProxies:     getEnvList("TRUSTED_PROXIES"),
		FlashCookieName:    getEnv("FLASH_COOKIE_NAME", "fortuna_toast"),
		CookieSecure:       getEnvBool("COOKIE_SECURE", false),
		TracingEnabled:     getEnvBool("TRACING_ENABLED", false),
		OTelServiceName:    getEnv("OTEL_SERVICE_NAME", "fortuna-web"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid PORT %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid PORT %d: must be between 1 and 65535", port))
	}

	if c.API.BaseURL == "" {
		problems = append(problems, "API_BASE_URL is required")
	} else if u, err := url.Parse(c.API.BaseURL); err != nil {
		problems = append(problems, fmt.Sprintf("invalid API_BASE_URL %q: %v", c.API.BaseURL, err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		problems = append(problems, fmt.Sprintf("invalid API_BASE_URL scheme %q: must be http or https", u.Scheme))
	}

	if c.API.Timeout <= 0 {
		problems = append(problems, "API_TIMEOUT must be positive")
	}
	if strings.Trim(c.API.CategoriesPath, "/") == "" {
		problems = append(problems, "CATEGORIES_PATH cannot be empty")
	}
	if strings.Trim(c.API.EntriesPath, "/") == "" {
		problems = append(problems, "ENTRIES_PATH cannot be empty")
	}

	if c.RateLimitPerMinute < 1 {
		problems = append(problems, fmt.Sprintf("invalid RATE_LIMIT_PER_MINUTE %d: must be at least 1", c.RateLimitPerMinute))
	}
	if c.RateLimitBurst < 1 {
		problems = append(problems, fmt.Sprintf("invalid RATE_LIMIT_BURST %d: must be at least 1", c.RateLimitBurst))
	}

	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			problems = append(problems, fmt.Sprintf("invalid TRUSTED_PROXIES entry %q: must be a CIDR", cidr))
		}
	}

	if c.FlashCookieName == "" {
		problems = append(problems, "FLASH_COOKIE_NAME cannot be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
