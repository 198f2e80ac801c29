package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is read from a YAML file when one is given (or named by
// CONFIG_PATH) and from AUTH_* environment variables, which win over the
// file. Rate limit profiles are read separately by httpx.LoadRateLimitsFromEnv.
type Config struct {
	Issuer       string `yaml:"issuer"        env:"AUTH_ISSUER"      env-default:"aussiebroadwan-sso"`
	DatabaseFile string `yaml:"database_file" env:"AUTH_DB_FILE"     env-default:"sso.db"`
	PepperFile   string `yaml:"pepper_file"   env:"AUTH_PEPPER_FILE" env-default:"pepper"`

	// AdminToken guards /v1/clients, /v1/users and /v1/sessions. Empty
	// disables the admin API.
	AdminToken string `yaml:"admin_token" env:"AUTH_ADMIN_TOKEN"`

	Env       string `yaml:"env"        env:"AUTH_ENV"        env-default:"dev"`
	LogLevel  string `yaml:"log_level"  env:"AUTH_LOG_LEVEL"  env-default:"info"`
	LogFormat string `yaml:"log_format" env:"AUTH_LOG_FORMAT" env-default:"json"`
	Port      int    `yaml:"port"       env:"AUTH_PORT"       env-default:"8080"`

	AccessTTL            time.Duration `yaml:"access_ttl"            env:"AUTH_ACCESS_TTL"            env-default:"1h"`
	RefreshTTL           time.Duration `yaml:"refresh_ttl"           env:"AUTH_REFRESH_TTL"           env-default:"720h"`
	ShutdownGracePeriod  time.Duration `yaml:"shutdown_grace_period" env:"AUTH_SHUTDOWN_GRACE_PERIOD" env-default:"10s"`
	HousekeepingInterval time.Duration `yaml:"housekeeping_interval" env:"AUTH_HOUSEKEEPING_INTERVAL" env-default:"1h"`
	CORSMaxAge           time.Duration `yaml:"cors_max_age"          env:"AUTH_CORS_MAX_AGE"          env-default:"10m"`
}

// LoadConfig reads the configuration from path, then CONFIG_PATH, then the
// environment alone.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d is out of range", c.Port))
	}
	if c.AccessTTL <= 0 {
		errs = append(errs, errors.New("access_ttl must be positive"))
	}
	if c.RefreshTTL < c.AccessTTL {
		errs = append(errs, errors.New("refresh_ttl must not be shorter than access_ttl"))
	}
	if c.ShutdownGracePeriod < 0 {
		errs = append(errs, errors.New("shutdown_grace_period must not be negative"))
	}
	if c.CORSMaxAge < 0 {
		errs = append(errs, errors.New("cors_max_age must not be negative"))
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log_format %q must be json or text", c.LogFormat))
	}
	if strings.TrimSpace(c.DatabaseFile) == "" {
		errs = append(errs, errors.New("database_file is required"))
	}

	return errors.Join(errs...)
}

// UsageHelp describes every environment variable the service reads.
func UsageHelp() string {
	var cfg Config
	header := "Environment variables (AUTH_*), overriding the optional YAML file named by -config or CONFIG_PATH:"
	help, err := cleanenv.GetDescription(&cfg, &header)
	if err != nil {
		return header
	}
	return help
}
