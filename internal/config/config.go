// Package config handles configuration loading and management
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment identifies a deployment the suite runs against.
type Environment string

// Supported environments.
const (
	EnvLocal   Environment = "local"
	EnvQA      Environment = "qa"
	EnvStaging Environment = "staging"
	EnvProd    Environment = "prod"
)

var defaultBaseURLs = map[Environment]string{
	EnvLocal:   "http://localhost:8080",
	EnvQA:      "https://qa.example.com",
	EnvStaging: "https://staging.example.com",
	EnvProd:    "https://www.example.com",
}

// IsProduction reports whether this is the production environment.
func (e Environment) IsProduction() bool {
	return e == EnvProd
}

// Config holds the application configuration. It is loaded once and passed
// explicitly into every component; there is no ambient global state.
type Config struct {
	Environment        Environment
	BaseURL            string
	Browser            string
	Headless           bool
	SelfHealingEnabled bool
	AuditParallelism   int

	ClickhouseHost       string
	ClickhouseNativePort int
	ClickhouseUsername   string
	ClickhousePassword   string
	ClickhouseDatabase   string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// It's okay if the file doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	env := parseEnvironment(getEnv("TEST_ENV", string(EnvQA)))

	cfg := &Config{
		Environment:        env,
		BaseURL:            getEnv("BASE_URL", defaultBaseURLs[env]),
		Browser:            getEnv("BROWSER", "chromium"),
		ClickhouseHost:     getEnv("CLICKHOUSE_HOST", ""),
		ClickhouseUsername: getEnv("CLICKHOUSE_USERNAME", "default"),
		ClickhousePassword: getEnv("CLICKHOUSE_PASSWORD", ""),
		ClickhouseDatabase: getEnv("CLICKHOUSE_DATABASE", "qa_reports"),
	}

	headless, err := strconv.ParseBool(getEnv("HEADLESS", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid HEADLESS: %w", err)
	}
	cfg.Headless = headless

	selfHealing, err := strconv.ParseBool(getEnv("SELF_HEALING_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SELF_HEALING_ENABLED: %w", err)
	}
	cfg.SelfHealingEnabled = selfHealing

	parallelism, err := strconv.Atoi(getEnv("AUDIT_PARALLELISM", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUDIT_PARALLELISM: %w", err)
	}
	if parallelism < 1 {
		return nil, fmt.Errorf("AUDIT_PARALLELISM must be at least 1, got %d", parallelism)
	}
	cfg.AuditParallelism = parallelism

	nativePort, err := strconv.Atoi(getEnv("CLICKHOUSE_NATIVE_PORT", "9000"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLICKHOUSE_NATIVE_PORT: %w", err)
	}
	cfg.ClickhouseNativePort = nativePort

	return cfg, nil
}

// ReportingEnabled reports whether a ClickHouse result sink is configured.
func (c *Config) ReportingEnabled() bool {
	return c.ClickhouseHost != ""
}

// parseEnvironment falls back to qa for unknown names rather than failing:
// a typo in TEST_ENV should not take down a whole suite run.
func parseEnvironment(name string) Environment {
	switch Environment(strings.ToLower(name)) {
	case EnvLocal:
		return EnvLocal
	case EnvQA:
		return EnvQA
	case EnvStaging:
		return EnvStaging
	case EnvProd:
		return EnvProd
	}
	fmt.Printf("Unknown TEST_ENV '%s', defaulting to 'qa'\n", name)
	return EnvQA
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) String() string {
	passwordDisplay := "(not set)"
	if c.ClickhousePassword != "" {
		passwordDisplay = "********"
	}

	reportingDisplay := "(disabled)"
	if c.ReportingEnabled() {
		reportingDisplay = fmt.Sprintf("%s:%d/%s", c.ClickhouseHost, c.ClickhouseNativePort, c.ClickhouseDatabase)
	}

	return fmt.Sprintf(`Current Configuration:
======================
Environment:          %s
Base URL:             %s
Browser:              %s
Headless:             %t
Self-Healing:         %t
Audit Parallelism:    %d
Reporting Sink:       %s
ClickHouse Username:  %s
ClickHouse Password:  %s`,
		c.Environment,
		c.BaseURL,
		c.Browser,
		c.Headless,
		c.SelfHealingEnabled,
		c.AuditParallelism,
		reportingDisplay,
		c.ClickhouseUsername,
		passwordDisplay,
	)
}
