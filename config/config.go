package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds every runtime parameter of the application.
type Config struct {
	DatabaseURL string

	// KnockoutCreditPolicy selects how knockout predictions with a wrong
	// matchup are scored: "partial" or "strict".
	KnockoutCreditPolicy string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// Load reads configuration from environment variables, optionally via a
// .env file for local development.
func Load() (*Config, error) {
	// A missing .env file is not fatal.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	policy := os.Getenv("KNOCKOUT_CREDIT_POLICY")
	if policy == "" {
		policy = "partial"
	}
	if policy != "partial" && policy != "strict" {
		return nil, fmt.Errorf("KNOCKOUT_CREDIT_POLICY must be \"partial\" or \"strict\", got %q", policy)
	}

	cfg := &Config{
		DatabaseURL:          dbURL,
		KnockoutCreditPolicy: policy,

		// R2 settings are only required by flag syncing; the command that
		// needs them validates their presence.
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	return cfg, nil
}
