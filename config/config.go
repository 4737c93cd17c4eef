package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	HTTPHost              string
	HTTPPort              string
	MySQLDSN              string
	Environment           string
	LogLevel              string
	LogFormat             string
	WorkshopsFile         string
	ManagementChangesFile string
	Mail                  MailConfig
}

type MailConfig struct {
	PostmarkServerToken  string
	PostmarkAccountToken string
	FromEmail            string
	ToEmail              string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignores error if not found)
	_ = godotenv.Load()

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	mail := MailConfig{
		PostmarkServerToken:  os.Getenv("POSTMARK_SERVER_TOKEN"),
		PostmarkAccountToken: os.Getenv("POSTMARK_ACCOUNT_TOKEN"),
		FromEmail:            os.Getenv("CONTACT_FROM_EMAIL"),
		ToEmail:              os.Getenv("CONTACT_TO_EMAIL"),
	}
	if mail.PostmarkServerToken != "" {
		if mail.FromEmail == "" {
			return nil, errors.New("CONTACT_FROM_EMAIL is required when POSTMARK_SERVER_TOKEN is set")
		}
		if mail.ToEmail == "" {
			return nil, errors.New("CONTACT_TO_EMAIL is required when POSTMARK_SERVER_TOKEN is set")
		}
	}

	return &Config{
		HTTPHost:              getEnv("HTTP_HOST", ""),
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		MySQLDSN:              mysqlDSN,
		Environment:           getEnv("APP_ENV", EnvProduction),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "json"),
		WorkshopsFile:         getEnv("WORKSHOPS_FILE", "data/workshops.json"),
		ManagementChangesFile: getEnv("MANAGEMENT_CHANGES_FILE", "data/management_changes.json"),
		Mail:                  mail,
	}, nil
}

func (c *Config) DSN() string {
	return c.MySQLDSN
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
