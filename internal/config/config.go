package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN             string
	HTTPAddr          string
	Environment       string
	MigrationsPath    string
	ActivityRetention time.Duration
	SendgridKey       string
	MailFromName      string
	MailFromEmail     string
}

// Load reads configuration from a .env file when present, then from the
// environment. DB_DSN is the only required value.
func Load() (*Config, error) {
	// Missing .env is fine; plain environment variables win either way.
	_ = godotenv.Load(".env")

	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		HTTPAddr:       os.Getenv("HTTP_ADDR"),
		Environment:    os.Getenv("ENV"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		SendgridKey:    os.Getenv("SENDGRID_API_KEY"),
		MailFromName:   os.Getenv("MAIL_FROM_NAME"),
		MailFromEmail:  os.Getenv("MAIL_FROM_EMAIL"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}
	if cfg.MailFromName == "" {
		cfg.MailFromName = "LearnMS"
	}
	if cfg.MailFromEmail == "" {
		cfg.MailFromEmail = "noreply@learnms.local"
	}

	retentionDays := 90
	if v := os.Getenv("ACTIVITY_RETENTION_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days <= 0 {
			return nil, fmt.Errorf("ACTIVITY_RETENTION_DAYS must be a positive integer, got %q", v)
		}
		retentionDays = days
	}
	cfg.ActivityRetention = time.Duration(retentionDays) * 24 * time.Hour

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	return cfg, nil
}
