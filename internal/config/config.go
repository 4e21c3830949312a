package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the portal configuration. Values come from defaults, then the
// YAML file, then environment variables (including a local .env file).
type Config struct {
	Server struct {
		Port         string `yaml:"port" env:"SERVER_PORT"`
		Mode         string `yaml:"mode" env:"SERVER_MODE"`
		BaseURL      string `yaml:"base_url" env:"SERVER_BASE_URL"`
		StoragePath  string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		CookieSecure bool   `yaml:"cookie_secure" env:"SERVER_COOKIE_SECURE"`
		CookieDomain string `yaml:"cookie_domain" env:"SERVER_COOKIE_DOMAIN"`

		// Empty allows any origin
		AllowedOrigins []string `yaml:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	JWT struct {
		Secret                 string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration  string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		RefreshTokenExpiration string `yaml:"refresh_token_expiration" env:"JWT_REFRESH_TOKEN_EXPIRATION"`
		Issuer                 string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Storage struct {
		Driver    string `yaml:"driver" env:"STORAGE_DRIVER"`
		GCSBucket string `yaml:"gcs_bucket" env:"STORAGE_GCS_BUCKET"`
		PublicURL string `yaml:"public_url" env:"STORAGE_PUBLIC_URL"`
	} `yaml:"storage"`

	Upload struct {
		MaxSizeMB    int      `yaml:"max_size_mb" env:"UPLOAD_MAX_SIZE_MB"`
		AllowedTypes []string `yaml:"allowed_types" env:"UPLOAD_ALLOWED_TYPES"`
	} `yaml:"upload"`

	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
	} `yaml:"redis"`

	RateLimit struct {
		Enabled  bool   `yaml:"enabled" env:"RATE_LIMIT_ENABLED"`
		Requests int    `yaml:"requests" env:"RATE_LIMIT_REQUESTS"`
		Window   string `yaml:"window" env:"RATE_LIMIT_WINDOW"`
	} `yaml:"rate_limit"`

	Email struct {
		SendGridAPIKey string `yaml:"sendgrid_api_key" env:"SENDGRID_API_KEY"`
		OTPExpiration  string `yaml:"otp_expiration" env:"EMAIL_OTP_EXPIRATION"`
		OTPAttempts    int    `yaml:"otp_attempts" env:"EMAIL_OTP_ATTEMPTS"`
	} `yaml:"email"`

	Scheduler struct {
		Enabled          bool   `yaml:"enabled" env:"SCHEDULER_ENABLED"`
		CloseExpiredJobs string `yaml:"close_expired_jobs" env:"SCHEDULER_CLOSE_EXPIRED_JOBS"`
		PurgeTokens      string `yaml:"purge_tokens" env:"SCHEDULER_PURGE_TOKENS"`
	} `yaml:"scheduler"`

	Cache struct {
		DashboardTTL string `yaml:"dashboard_ttl" env:"CACHE_DASHBOARD_TTL"`
	} `yaml:"cache"`

	Seed struct {
		SuperAdminEmail    string `yaml:"super_admin_email" env:"SEED_SUPER_ADMIN_EMAIL"`
		SuperAdminPassword string `yaml:"super_admin_password" env:"SEED_SUPER_ADMIN_PASSWORD"`
		AdminContactEmail  string `yaml:"admin_contact_email" env:"SEED_ADMIN_CONTACT_EMAIL"`
	} `yaml:"seed"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// A missing .env is the normal case outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.BaseURL = "http://localhost:8080"
	config.Server.StoragePath = "uploads"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "tpcell"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.RefreshTokenExpiration = "720h"
	config.JWT.Issuer = "tpcell.portal"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Storage.Driver = "local"

	config.Upload.MaxSizeMB = 5
	config.Upload.AllowedTypes = []string{
		"application/pdf",
		"image/png",
		"image/jpeg",
		"image/webp",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}

	config.RateLimit.Enabled = true
	config.RateLimit.Requests = 20
	config.RateLimit.Window = "1m"

	config.Email.OTPExpiration = "10m"
	config.Email.OTPAttempts = 5

	config.Scheduler.Enabled = true
	config.Scheduler.CloseExpiredJobs = "@every 15m"
	config.Scheduler.PurgeTokens = "@hourly"

	config.Cache.DashboardTTL = "60s"

	config.Seed.SuperAdminEmail = "superadmin@tpcell.local"
}

var validStorageDrivers = map[string]bool{"local": true, "gcs": true}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	durations := map[string]string{
		"JWT access token expiration":  config.JWT.AccessTokenExpiration,
		"JWT refresh token expiration": config.JWT.RefreshTokenExpiration,
		"rate limit window":            config.RateLimit.Window,
		"OTP expiration":               config.Email.OTPExpiration,
		"dashboard cache TTL":          config.Cache.DashboardTTL,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	driver := strings.ToLower(config.Storage.Driver)
	if !validStorageDrivers[driver] {
		return fmt.Errorf("unsupported storage driver %q", config.Storage.Driver)
	}
	if driver == "gcs" && config.Storage.GCSBucket == "" {
		return fmt.Errorf("storage bucket is required for the gcs driver")
	}

	if config.Upload.MaxSizeMB <= 0 {
		return fmt.Errorf("upload max size must be positive")
	}

	if config.Email.OTPAttempts <= 0 {
		return fmt.Errorf("OTP attempts must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}

// MaxUploadBytes returns the upload limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Upload.MaxSizeMB) << 20
}
