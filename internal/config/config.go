package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v2"
)

// minBcryptCost is the work factor outside the test environment.
const minBcryptCost = 12

type Config struct {
	Server struct {
		Host           string   `yaml:"host"`
		Port           int      `yaml:"port"`
		Env            string   `yaml:"env"`
		AllowedOrigins []string `yaml:"allowed_origins"`
		RateLimit      int      `yaml:"rate_limit"` // requests per hour per IP on /api
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"` // postgres, mysql
		DSN    string `yaml:"url"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	JWT struct {
		Secret            string `yaml:"secret"`
		ExpiresInDays     int    `yaml:"expires_in_days"`
		CookieExpiresDays int    `yaml:"cookie_expires_in_days"`
	} `yaml:"jwt"`

	Auth struct {
		BcryptCost      int `yaml:"bcrypt_cost"`
		HashConcurrency int `yaml:"hash_concurrency"`
	} `yaml:"auth"`

	FirstAdmin struct {
		Name     string `yaml:"name"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"first_admin"`
}

// TokenTTL is the validity window of bearer tokens.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.ExpiresInDays) * 24 * time.Hour
}

// CookieTTL is the lifetime of the session cookie.
func (c *Config) CookieTTL() time.Duration {
	return time.Duration(c.JWT.CookieExpiresDays) * 24 * time.Hour
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Load reads the YAML file (CONFIG_PATH, default config/config.yaml) when it
// exists, applies environment overrides and defaults, and validates the result.
func Load() (*Config, error) {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	f, err := os.Open(configPath)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", configPath, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// environment-only configuration
	default:
		return nil, fmt.Errorf("failed to open config file at %s: %w", configPath, err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Parse decodes YAML bytes and applies defaults. Environment is not consulted.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Database.DSN, "DATABASE_URL")
	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Server.Env, "SERVER_ENV")
	setInt(&cfg.Server.Port, "SERVER_PORT")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setInt(&cfg.JWT.ExpiresInDays, "JWT_EXPIRES_IN")
	setInt(&cfg.JWT.CookieExpiresDays, "JWT_COOKIE_EXPIRES_IN")
	setString(&cfg.Email.SMTPHost, "SMTP_HOST")
	setInt(&cfg.Email.SMTPPort, "SMTP_PORT")
	setString(&cfg.Email.SMTPUsername, "SMTP_USER")
	setString(&cfg.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&cfg.Email.FromEmail, "EMAIL_FROM")
	setString(&cfg.FirstAdmin.Email, "FIRST_ADMIN_EMAIL")
	setString(&cfg.FirstAdmin.Password, "FIRST_ADMIN_PASSWORD")
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.RateLimit == 0 {
		cfg.Server.RateLimit = 100
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.JWT.ExpiresInDays == 0 {
		cfg.JWT.ExpiresInDays = 90
	}
	if cfg.JWT.CookieExpiresDays == 0 {
		cfg.JWT.CookieExpiresDays = 90
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = minBcryptCost
	}
	if cfg.Auth.HashConcurrency == 0 {
		cfg.Auth.HashConcurrency = runtime.GOMAXPROCS(0)
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "Tourhub"
	}
	if cfg.FirstAdmin.Name == "" {
		cfg.FirstAdmin.Name = "Administrator"
	}
}

// Validate reports configuration that would make the service insecure or unbootable.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt secret is required")
	}
	switch c.Database.Driver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.JWT.ExpiresInDays < 0 || c.JWT.CookieExpiresDays < 0 {
		return errors.New("token lifetimes must be positive")
	}
	if c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost %d exceeds %d", c.Auth.BcryptCost, bcrypt.MaxCost)
	}
	if c.Auth.BcryptCost < minBcryptCost && c.Server.Env != "test" {
		return fmt.Errorf("bcrypt cost %d is below %d; lower costs are only allowed with env test", c.Auth.BcryptCost, minBcryptCost)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
