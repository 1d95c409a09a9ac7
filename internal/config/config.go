package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Sheets    SheetsConfig
	Auth      AuthConfig
	Database  DatabaseConfig
	Refresh   RefreshConfig
	News      NewsConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
}

// SheetsConfig points at the published spreadsheet that feeds the calendar.
type SheetsConfig struct {
	// SpreadsheetID is the document identifier in the public CSV export URL
	SpreadsheetID string
	// BaseURL is the document host; only overridden in tests
	BaseURL string
	// Timeout is the per-fetch HTTP timeout (seconds)
	Timeout int
}

// AuthConfig configures the password gate and the session tokens it issues.
type AuthConfig struct {
	// AccessPassword is the shared key the school staff uses to enter
	AccessPassword string
	// TokenSecret signs session tokens (HS256)
	TokenSecret string
	// TokenTTL is the session lifetime in hours
	TokenTTL int
}

type DatabaseConfig struct {
	// Driver selects "sqlite" (default, single file) or "postgres"
	Driver          string
	Path            string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
}

// RefreshConfig controls the background sheet refresh job.
type RefreshConfig struct {
	Enabled bool
	// Cron is the schedule expression, e.g. "@every 10m"
	Cron string
	// Timeout bounds one refresh run (seconds)
	Timeout int
}

// NewsConfig controls the news feed derivation.
type NewsConfig struct {
	// FreshnessDays is how recent an event's effective date must be to be
	// flagged as new in the feed
	FreshnessDays int
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
	EnableSwagger  bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	HSTSPreload           bool
	ContentSecurityPolicy string
	FrameOptions          string
	ContentTypeNosniff    bool
	XSSProtection         string
	ReferrerPolicy        string
	PermissionsPolicy     string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled bool
	// RequestsPerMinute is the per-IP rate limit
	RequestsPerMinute int
	// LoginRequestsPerMinute is the tighter per-IP limit on the login route
	LoginRequestsPerMinute int
	WhitelistIPs           []string
	WhitelistPaths         []string
}

// ExportURL builds the public CSV export URL for one sheet tab.
func (s *SheetsConfig) ExportURL(sheetName string) string {
	return fmt.Sprintf("%s/%s/gviz/tq?tqx=out:csv&sheet=%s",
		strings.TrimRight(s.BaseURL, "/"), s.SpreadsheetID, url.QueryEscape(sheetName))
}

// TimeoutDuration returns the fetch timeout as duration
func (s *SheetsConfig) TimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

// TokenTTLDuration returns the session lifetime as duration
func (a *AuthConfig) TokenTTLDuration() time.Duration {
	return time.Duration(a.TokenTTL) * time.Hour
}

// ConnectionString builds the PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// TimeoutDuration returns the refresh timeout as duration
func (r *RefreshConfig) TimeoutDuration() time.Duration {
	return time.Duration(r.Timeout) * time.Second
}

// Freshness returns the news freshness window as duration
func (n *NewsConfig) Freshness() time.Duration {
	return time.Duration(n.FreshnessDays) * 24 * time.Hour
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// RequestTimeoutDuration returns request timeout as duration
func (s *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// Load loads configuration from file and environment variables.
// Environment variables override the config file, which overrides defaults.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Secrets come from the environment, never from the config file
	if cfg.Auth.AccessPassword == "" {
		cfg.Auth.AccessPassword = v.GetString("ACCESS_PASSWORD")
	}
	if cfg.Auth.TokenSecret == "" {
		cfg.Auth.TokenSecret = v.GetString("SESSION_TOKEN_SECRET")
	}
	if cfg.Database.Password == "" {
		cfg.Database.Password = v.GetString("DATABASE_PASSWORD")
	}

	if cfg.Auth.AccessPassword == "" {
		return nil, fmt.Errorf("ACCESS_PASSWORD is required")
	}
	if cfg.Auth.TokenSecret == "" {
		return nil, fmt.Errorf("SESSION_TOKEN_SECRET is required")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "EEST6 Calendar API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)

	// Sheets defaults point at the school's published spreadsheet
	v.SetDefault("sheets.spreadsheetId", "1oHFohkYkMQBkDQ7hfBpGj0euUvP11fq7I8oBPc4bZQ8")
	v.SetDefault("sheets.baseUrl", "https://docs.google.com/spreadsheets/d")
	v.SetDefault("sheets.timeout", 15)

	// Auth defaults
	v.SetDefault("auth.tokenTTL", 12)

	// Database defaults (embedded sqlite keeps single-host deploys simple)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/calendar.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "calendar")
	v.SetDefault("database.user", "calendar_user")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 10)
	v.SetDefault("database.maxIdleConns", 2)
	v.SetDefault("database.connMaxLifetime", 300)

	// Refresh defaults
	v.SetDefault("refresh.enabled", true)
	v.SetDefault("refresh.cron", "@every 10m")
	v.SetDefault("refresh.timeout", 60)

	// News defaults
	v.SetDefault("news.freshnessDays", 7)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Server defaults
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)
	v.SetDefault("server.requestTimeout", 60)
	v.SetDefault("server.enableSwagger", true)

	// CORS defaults - restrictive by default
	v.SetDefault("cors.allowedOrigins", []string{})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"X-Request-ID"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300)

	// Security header defaults - secure by default
	v.SetDefault("security.enableHSTS", false)
	v.SetDefault("security.hstsMaxAge", 31536000)
	v.SetDefault("security.hstsIncludeSubdomains", true)
	v.SetDefault("security.hstsPreload", false)
	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.xssProtection", "1; mode=block")
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")
	v.SetDefault("security.permissionsPolicy", "geolocation=(), microphone=(), camera=()")

	// Rate limiting defaults; login is tighter because the gate is a single
	// shared password
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 120)
	v.SetDefault("rateLimit.loginRequestsPerMinute", 10)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/db", "/health/ready"})
}
