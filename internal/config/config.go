package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Content store (Cosmic-style bucket API)
	CosmicAPIURL     string `env:"COSMIC_API_URL" envDefault:"https://api.cosmicjs.com/v3"`
	CosmicBucketSlug string `env:"COSMIC_BUCKET_SLUG"`
	CosmicReadKey    string `env:"COSMIC_READ_KEY"`
	CosmicWriteKey   string `env:"COSMIC_WRITE_KEY"`

	// Creator token secret for the sticker creation endpoint
	CreatorTokenSecret string `env:"CREATOR_TOKEN_SECRET" envDefault:"change-me-in-production"`

	// Image provider: "cosmic" uses the bucket's own AI endpoint,
	// "openai" renders with OpenAI and stores the result in S3.
	ImageProvider string `env:"IMAGE_PROVIDER" envDefault:"cosmic"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`

	// S3 media storage (only used with the openai provider)
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3Region          string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Bucket          string `env:"S3_BUCKET"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3CDNURL          string `env:"S3_CDN_URL"`

	// Redis cache, empty or "disabled" turns it off
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.CosmicBucketSlug == "" {
		return nil, fmt.Errorf("COSMIC_BUCKET_SLUG is required")
	}
	return &cfg, nil
}
