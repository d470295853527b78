package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// developmentSessionSecret is only accepted when AURA_ENV is development.
const developmentSessionSecret = "aura-development-session-secret-do-not-use"

type Config struct {
	// HTTP Server
	Port          string
	APIURL        string
	Env           string
	CORSOrigins   []string
	EnablePprof   bool
	SessionSecret string
	SessionTTL    time.Duration

	// Database
	DatabasePath string

	// Resend
	ResendWebhookSecret string
	ResendAPIKey        string
	ResendAPIURL        string
	AllowedSenders      []string

	// Categorization agent
	GeminiAPIKey      string
	AgentModel        string
	AgentTimeout      time.Duration
	MemoryRecallLimit int

	// AMQP, optional
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

func Load() *Config {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		APIURL:        getEnv("API_URL", "http://localhost:8080"),
		Env:           getEnv("AURA_ENV", EnvProduction),
		CORSOrigins:   strings.Fields(getEnv("CORS_ALLOW_ORIGINS", "")),
		EnablePprof:   getEnv("ENABLE_PPROF", "false") == "true",
		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    getEnvDuration("SESSION_TTL", 7*24*time.Hour),

		DatabasePath: getEnv("DATABASE_PATH", "data/aura.db"),

		ResendWebhookSecret: getEnv("RESEND_WEBHOOK_SECRET", ""),
		ResendAPIKey:        getEnv("RESEND_API_KEY", ""),
		ResendAPIURL:        getEnv("RESEND_API_URL", "https://api.resend.com"),
		AllowedSenders:      strings.Fields(getEnv("ALLOWED_SENDERS", "")),

		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		AgentModel:        getEnv("AGENT_MODEL", "gemini-2.5-flash"),
		AgentTimeout:      getEnvDuration("AGENT_TIMEOUT", 20*time.Second),
		MemoryRecallLimit: getEnvInt("MEMORY_RECALL_LIMIT", 10),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "aura"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "corrections"),
	}

	if cfg.SessionSecret == "" && cfg.Development() {
		cfg.SessionSecret = developmentSessionSecret
	}

	return cfg
}

// Development reports if the development bypasses are enabled.
func (c *Config) Development() bool {
	return c.Env == EnvDevelopment
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		errors = append(errors, fmt.Sprintf("invalid environment '%s': must be one of [%s %s]", c.Env, EnvDevelopment, EnvProduction))
	}

	if parsed, err := url.Parse(c.APIURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		errors = append(errors, fmt.Sprintf("invalid API URL '%s': must be an absolute URL", c.APIURL))
	}

	if len(c.SessionSecret) < 32 {
		errors = append(errors, "session secret must be at least 32 characters long")
	}

	if c.SessionTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid session TTL %v: must be at least 1 minute", c.SessionTTL))
	}

	// Check if the database directory exists or can be created
	if c.DatabasePath == "" {
		errors = append(errors, "database path cannot be empty")
	} else {
		dir := filepath.Dir(c.DatabasePath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create database directory '%s': %v", dir, err))
				}
			}
		}
	}

	// Webhooks can only be verified with a secret
	if c.ResendWebhookSecret == "" && !c.Development() {
		errors = append(errors, "RESEND_WEBHOOK_SECRET is required")
	} else if c.ResendWebhookSecret != "" && !strings.HasPrefix(c.ResendWebhookSecret, "whsec_") {
		errors = append(errors, "RESEND_WEBHOOK_SECRET must start with 'whsec_'")
	}

	if parsed, err := url.Parse(c.ResendAPIURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		errors = append(errors, fmt.Sprintf("invalid Resend API URL '%s': must be an absolute URL", c.ResendAPIURL))
	}

	if c.GeminiAPIKey == "" && !c.Development() {
		errors = append(errors, "GEMINI_API_KEY is required")
	}

	if c.AgentModel == "" {
		errors = append(errors, "agent model cannot be empty")
	}

	if c.AgentTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid agent timeout %v: must be at least 1 second", c.AgentTimeout))
	} else if c.AgentTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid agent timeout %v: must be at most 5 minutes", c.AgentTimeout))
	}

	if c.MemoryRecallLimit < 0 || c.MemoryRecallLimit > 100 {
		errors = append(errors, fmt.Sprintf("invalid memory recall limit %d: must be between 0 and 100", c.MemoryRecallLimit))
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
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
