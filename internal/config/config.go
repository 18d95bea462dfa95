package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port int
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// DatabaseConfig holds PostgreSQL connection settings. URL wins when set;
// otherwise the discrete fields are assembled into a connection string.
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// ConnString returns the pgx connection string.
func (d DatabaseConfig) ConnString() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		url.QueryEscape(d.User), url.QueryEscape(d.Password), d.Host, d.Port, d.Name)
}

// SMTPConfig holds outbound mail settings. An empty Host leaves the mailer
// disabled.
type SMTPConfig struct {
	Host     string
	Port     int
	Secure   bool // implicit TLS (465-style); otherwise STARTTLS when offered
	User     string
	Password string
	// From is the envelope/header sender address.
	From string
	// NotifyTo is the operator address that receives contact notifications.
	NotifyTo string
}

// AuthConfig holds the admin authentication secrets.
type AuthConfig struct {
	// JWTSecret signs admin tokens.
	JWTSecret string
	// AdminPassword is the single shared admin panel password.
	AdminPassword string
}

// Config is the full application configuration, loaded from the environment.
type Config struct {
	Env            string // "production" enables rate limiting
	Server         ServerConfig
	Database       DatabaseConfig
	SMTP           SMTPConfig
	Auth           AuthConfig
	AllowedOrigins []string
	// SiteDir is the root of the static site (HTML pages and asset dirs).
	SiteDir string
}

// RateLimitEnabled reports whether the rate limiter should be enforced.
func (c *Config) RateLimitEnabled() bool {
	return c.Env == "production"
}

// Load reads the configuration from the environment. In production, missing
// auth secrets are a hard error; in development they fall back to dev
// defaults so the server can run out of the box.
func Load() (*Config, error) {
	cfg := &Config{
		Env: getenv("APP_ENV", "development"),
		Server: ServerConfig{
			Port: getint("PORT", 8080),
		},
		Database: DatabaseConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getenv("PGHOST", "localhost"),
			Port:     getint("PGPORT", 5432),
			User:     getenv("PGUSER", "postgres"),
			Password: os.Getenv("PGPASSWORD"),
			Name:     getenv("PGDATABASE", "callowaylaw"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getint("SMTP_PORT", 587),
			Secure:   getenv("SMTP_SECURE", "false") == "true",
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("MAIL_FROM"),
			NotifyTo: os.Getenv("MAIL_TO"),
		},
		Auth: AuthConfig{
			JWTSecret:     os.Getenv("JWT_SECRET"),
			AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		},
		AllowedOrigins: splitOrigins(os.Getenv("ALLOWED_ORIGINS")),
		SiteDir:        getenv("SITE_DIR", "./web"),
	}

	if cfg.Env == "production" {
		if cfg.Auth.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		if cfg.Auth.AdminPassword == "" {
			return nil, fmt.Errorf("ADMIN_PASSWORD is required in production")
		}
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "dev-secret-change-in-production"
	}
	if cfg.Auth.AdminPassword == "" {
		cfg.Auth.AdminPassword = "admin"
	}
	return cfg, nil
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
