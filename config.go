package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/yashrajoria/atelier-backend/database"
	aws_pkg "github.com/yashrajoria/atelier-backend/pkg/aws"
	"github.com/yashrajoria/atelier-backend/services"
)

const (
	dbSecretName    = "atelier/DB_CREDENTIALS"
	adminSecretName = "atelier/ADMIN_CREDENTIALS"
)

type Config struct {
	Env         string
	ServiceName string
	Port        string

	Postgres database.PostgresConfig
	RedisURL string

	JWTSecret       string
	AdminUsername   string
	AdminPassword   string
	AdminSessionTTL time.Duration

	AllowedOrigins string
	RateLimitRPS   float64
	RateLimitBurst int

	SNSTopicArn        string
	ActivityQueueURL   string
	ImageBucket        string
	ImageUploadExpiry  time.Duration
	MetricsEnabled     bool
	MetricsNamespace   string
	CloudWatchLogGroup string
}

// secretReader is the part of the Secrets Manager client LoadConfig needs.
type secretReader interface {
	GetSecretMap(ctx context.Context, name string) (map[string]string, error)
}

func LoadConfig() (*Config, error) {
	sessionTTL, err := getDuration("ADMIN_SESSION_TTL", services.DefaultAdminSessionTTL)
	if err != nil {
		return nil, err
	}
	uploadExpiry, err := getDuration("IMAGE_UPLOAD_URL_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "10"), 64)
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}
	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "20"))
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
	}

	cfg := &Config{
		Env:         getEnv("APP_ENV", "development"),
		ServiceName: getEnv("SERVICE_NAME", "atelier-backend"),
		Port:        getEnv("PORT", "8080"),
		Postgres: database.PostgresConfig{
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			TimeZone: getEnv("POSTGRES_TIMEZONE", "UTC"),
		},
		RedisURL:           os.Getenv("REDIS_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AdminUsername:      os.Getenv("ADMIN_USERNAME"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
		AdminSessionTTL:    sessionTTL,
		AllowedOrigins:     getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001"),
		RateLimitRPS:       rps,
		RateLimitBurst:     burst,
		SNSTopicArn:        os.Getenv("SNS_TOPIC_ARN"),
		ActivityQueueURL:   os.Getenv("ACTIVITY_SQS_QUEUE_URL"),
		ImageBucket:        os.Getenv("AWS_S3_BUCKET"),
		ImageUploadExpiry:  uploadExpiry,
		MetricsEnabled:     os.Getenv("CLOUDWATCH_METRICS_ENABLED") == "true",
		MetricsNamespace:   getEnv("CLOUDWATCH_NAMESPACE", "Atelier"),
		CloudWatchLogGroup: os.Getenv("CLOUDWATCH_LOG_GROUP"),
	}

	if os.Getenv("AWS_USE_SECRETS") == "true" {
		if awsCfg, err := aws_pkg.LoadAWSConfig(context.Background()); err == nil {
			cfg.applySecrets(context.Background(), aws_pkg.NewSecretsClient(awsCfg))
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applySecrets overlays values found in Secrets Manager. Missing secrets keep
// the environment values.
func (cfg *Config) applySecrets(ctx context.Context, sm secretReader) {
	if m, err := sm.GetSecretMap(ctx, dbSecretName); err == nil {
		overlay(&cfg.Postgres.User, m, "POSTGRES_USER")
		overlay(&cfg.Postgres.Password, m, "POSTGRES_PASSWORD")
		overlay(&cfg.Postgres.DBName, m, "POSTGRES_DB")
		overlay(&cfg.Postgres.Host, m, "POSTGRES_HOST")
		overlay(&cfg.Postgres.Port, m, "POSTGRES_PORT")
	}
	if m, err := sm.GetSecretMap(ctx, adminSecretName); err == nil {
		overlay(&cfg.AdminUsername, m, "ADMIN_USERNAME")
		overlay(&cfg.AdminPassword, m, "ADMIN_PASSWORD")
		overlay(&cfg.JWTSecret, m, "JWT_SECRET")
	}
}

func overlay(dst *string, m map[string]string, key string) {
	if v, ok := m[key]; ok && v != "" {
		*dst = v
	}
}

func (cfg *Config) validate() error {
	pg := cfg.Postgres
	if pg.User == "" || pg.Password == "" || pg.DBName == "" || pg.Host == "" {
		return fmt.Errorf("database config incomplete")
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD are required")
	}
	if cfg.AdminSessionTTL <= 0 {
		return fmt.Errorf("ADMIN_SESSION_TTL must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
