package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Placeholder credential values shipped in example env files. Either of
// these selects fallback (test) mode exactly as if the variable were unset.
const (
	PlaceholderUser     = "your-email@gmail.com"
	PlaceholderPassword = "your-email-password"
)

// Config holds all gateway configuration, read from EMAIL_* environment
// variables.
type Config struct {
	// User is the sender identity and SMTP login (EMAIL_USER).
	User string
	// Password is the SMTP credential (EMAIL_PASSWORD).
	Password string
	// Host is the SMTP submission host (EMAIL_HOST).
	Host string
	// Port is the SMTP submission port (EMAIL_PORT).
	Port int
	// Secure enables implicit TLS when EMAIL_SECURE is "true".
	Secure bool
	// LogLevel is the zerolog level string (EMAIL_LOG_LEVEL).
	LogLevel string
	// TestAPIURL is the ephemeral test-account provisioning endpoint
	// (EMAIL_TEST_API_URL).
	TestAPIURL string
}

// Load reads configuration from the environment. All values are optional;
// defaults point at Gmail submission on port 587 without implicit TLS.
// For example, EMAIL_PORT=465 with EMAIL_SECURE=true selects SMTPS.
func Load() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("EMAIL")
	v.AutomaticEnv()

	v.SetDefault("host", "smtp.gmail.com")
	v.SetDefault("port", 587)
	v.SetDefault("secure", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("test_api_url", "https://api.nodemailer.com/user")

	cfg := &Config{
		User:       v.GetString("user"),
		Password:   v.GetString("password"),
		Host:       v.GetString("host"),
		Port:       v.GetInt("port"),
		Secure:     v.GetBool("secure"),
		LogLevel:   v.GetString("log_level"),
		TestAPIURL: v.GetString("test_api_url"),
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid EMAIL_PORT: %d", cfg.Port)
	}

	return cfg, nil
}

// Placeholder reports whether the configured credentials are absent or hold
// the known placeholder values. Placeholder credentials select fallback
// (test) mode.
func (c *Config) Placeholder() bool {
	if c.User == "" || c.Password == "" {
		return true
	}
	return c.User == PlaceholderUser || c.Password == PlaceholderPassword
}
