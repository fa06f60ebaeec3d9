// internal/config/config.go
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// OnboardingAPIConfig describes the external onboarding REST API the portal
// consumes. The portal itself stores nothing; every record comes from here.
type OnboardingAPIConfig struct {
	BaseURL               string `yaml:"base_url"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
}

type LoginRateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type Config struct {
	SiteName        string               `yaml:"site_name"`
	SiteDescription string               `yaml:"site_description"`
	CurrentYear     int                  `yaml:"current_year"`
	BaseURL         string               `yaml:"base_url"`
	Port            int                  `yaml:"port"`
	AppEnv          string               `yaml:"app_env"`
	API             OnboardingAPIConfig  `yaml:"onboarding_api"`
	LoginRateLimit  LoginRateLimitConfig `yaml:"login_rate_limit"`
	CSRFAuthKey     string
}

func getStringEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
		slog.Warn("Environment variable is not a number, using default", "key", key, "value", valueStr)
	}
	return defaultValue
}

func LoadConfig(filename string) (*Config, error) {
	appEnvFromSystem := os.Getenv("APP_ENV")
	if appEnvFromSystem != "production" {
		if err := godotenv.Load("configs/.env"); err != nil {
			slog.Info("configs/.env not found, relying on system environment", "error", err)
		} else {
			slog.Info("Environment variables loaded from configs/.env")
		}
	}

	file, err := os.Open(filename)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", filename)
	}
	if err != nil {
		return nil, fmt.Errorf("opening config file '%s': %w", filename, err)
	}
	defer file.Close()

	var cfg Config
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding YAML from '%s': %w", filename, err)
	}

	cfg.AppEnv = getStringEnvOrDefault("APP_ENV", cfg.AppEnv)
	isProduction := cfg.AppEnv == "production"

	cfg.BaseURL = getStringEnvOrDefault("BASE_URL", cfg.BaseURL)
	cfg.Port = getIntEnvOrDefault("PORT", cfg.Port)
	cfg.API.BaseURL = getStringEnvOrDefault("ONBOARDING_API_URL", cfg.API.BaseURL)
	cfg.API.RequestTimeoutSeconds = getIntEnvOrDefault("ONBOARDING_API_TIMEOUT_SECONDS", cfg.API.RequestTimeoutSeconds)

	cfg.CSRFAuthKey = getStringEnvOrDefault("CSRF_AUTH_KEY", "")
	if isProduction && cfg.CSRFAuthKey == "" {
		slog.Error("CRITICAL: CSRF_AUTH_KEY must be set in the environment for production (a 32-byte random key is recommended)")
		return nil, fmt.Errorf("CSRF_AUTH_KEY must be set in the environment for production")
	}
	if !isProduction && cfg.CSRFAuthKey == "" {
		slog.Warn("CSRF_AUTH_KEY is not set. nosurf will fall back to its own key (DEVELOPMENT ONLY).")
	}

	if cfg.CurrentYear == 0 {
		cfg.CurrentYear = time.Now().Year()
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	cfg.API.BaseURL = strings.TrimSuffix(cfg.API.BaseURL, "/")

	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("BASE_URL is not set")
	}
	if isProduction && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return nil, fmt.Errorf("in production BASE_URL must start with https://")
	}
	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("onboarding_api.base_url (ONBOARDING_API_URL) is not set")
	}
	if cfg.API.RequestTimeoutSeconds <= 0 {
		cfg.API.RequestTimeoutSeconds = 15
	}
	if cfg.LoginRateLimit.RPS <= 0 {
		cfg.LoginRateLimit.RPS = 1
	}
	if cfg.LoginRateLimit.Burst <= 0 {
		cfg.LoginRateLimit.Burst = 5
	}

	slog.Info("Configuration loaded", "app_env", cfg.AppEnv, "base_url", cfg.BaseURL, "port", cfg.Port, "api_base_url", cfg.API.BaseURL)
	return &cfg, nil
}

func InitLogger(appEnv string) {
	var logger *slog.Logger
	logLevel := slog.LevelInfo

	if appEnv == "development" {
		logLevel = slog.LevelDebug
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: false,
		}))
	}
	slog.SetDefault(logger)
}
