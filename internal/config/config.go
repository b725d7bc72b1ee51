package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName       = "venmo-bridge"
	defaultAppEnv        = "development"
	defaultPort          = "8080"
	defaultLogLevel      = "info"
	defaultShutdownDelay = 10 * time.Second
	defaultHTTPTimeout   = 30 * time.Second

	shutdownSecondsEnvVar  = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar = "SHUTDOWN_TIMEOUT"
	httpTimeoutEnvVar      = "REQUEST_TIMEOUT"
)

// Config captures bridge runtime configuration loaded from environment
// variables. The credential variables keep the names the upstream project
// documented, so an existing .env file works unchanged.
type Config struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	Username       string
	Password       string
	BankAccount    string
	ProxyURL       string
	RequestTimeout time.Duration
	ShutdownPeriod time.Duration
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:        getEnv("APP_NAME", defaultAppName),
		AppEnv:         getEnv("APP_ENV", defaultAppEnv),
		Port:           getEnv("PORT", defaultPort),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		Username:       os.Getenv("VENMO_USERNAME"),
		Password:       os.Getenv("VENMO_PASSWORD"),
		BankAccount:    os.Getenv("VENMO_BANK_ACCOUNT_NUMBER"),
		ProxyURL:       os.Getenv("HTTP_PROXY"),
		RequestTimeout: defaultHTTPTimeout,
		ShutdownPeriod: defaultShutdownDelay,
	}

	if v := os.Getenv(httpTimeoutEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", httpTimeoutEnvVar, err)
		}
		cfg.RequestTimeout = d
	}

	if v := os.Getenv(shutdownSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownSecondsEnvVar, err)
		}
		cfg.ShutdownPeriod = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(shutdownDurationEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownDurationEnvVar, err)
		}
		cfg.ShutdownPeriod = d
	}

	if cfg.Username == "" {
		return Config{}, fmt.Errorf("VENMO_USERNAME must be set")
	}
	if cfg.Password == "" {
		return Config{}, fmt.Errorf("VENMO_PASSWORD must be set")
	}
	if cfg.BankAccount == "" {
		return Config{}, fmt.Errorf("VENMO_BANK_ACCOUNT_NUMBER must be set")
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
