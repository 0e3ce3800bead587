package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "change-me-in-production"

type Config struct {
	Env        string `mapstructure:"APP_ENV"`
	ServerPort string `mapstructure:"SERVER_PORT"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSSLMode  string `mapstructure:"DB_SSLMODE"`

	// DBConnectTimeout bounds the total time spent retrying the first connection.
	DBConnectTimeout time.Duration `mapstructure:"DB_CONNECT_TIMEOUT"`

	JWTSecret string `mapstructure:"JWT_SECRET"`
	// TokenMaxAge is the access token lifetime in seconds.
	TokenMaxAge int `mapstructure:"TOKEN_MAX_AGE"`

	// RedisURL is optional. Without it views are counted synchronously and
	// the genre catalog is not cached.
	RedisURL    string `mapstructure:"REDIS_URL"`
	WorkerCount int    `mapstructure:"WORKER_COUNT"`

	S3Region          string `mapstructure:"S3_REGION"`
	S3AccessKeyID     string `mapstructure:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `mapstructure:"S3_SECRET_ACCESS_KEY"`
	S3Bucket          string `mapstructure:"S3_BUCKET"`
	// S3Endpoint points the client at an S3-compatible store (R2, MinIO).
	S3Endpoint  string `mapstructure:"S3_ENDPOINT"`
	S3PublicURL string `mapstructure:"S3_PUBLIC_URL"`

	DefaultProfilePicture string `mapstructure:"DEFAULT_PROFILE_PICTURE"`

	RateLimitPerMinute int `mapstructure:"RATE_LIMIT_PER_MINUTE"`
	RateLimitBurst     int `mapstructure:"RATE_LIMIT_BURST"`
}

var keys = map[string]any{
	"APP_ENV":                 "development",
	"SERVER_PORT":             "8080",
	"DB_HOST":                 "localhost",
	"DB_PORT":                 "5432",
	"DB_USER":                 "postgres",
	"DB_PASSWORD":             "postgres",
	"DB_NAME":                 "video_share",
	"DB_SSLMODE":              "disable",
	"DB_CONNECT_TIMEOUT":      "30s",
	"JWT_SECRET":              defaultJWTSecret,
	"TOKEN_MAX_AGE":           86400,
	"REDIS_URL":               "",
	"WORKER_COUNT":            2,
	"S3_REGION":               "us-east-1",
	"S3_ACCESS_KEY_ID":        "",
	"S3_SECRET_ACCESS_KEY":    "",
	"S3_BUCKET":               "",
	"S3_ENDPOINT":             "",
	"S3_PUBLIC_URL":           "",
	"DEFAULT_PROFILE_PICTURE": "",
	"RATE_LIMIT_PER_MINUTE":   60,
	"RATE_LIMIT_BURST":        20,
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	v := viper.New()
	for key, def := range keys {
		v.SetDefault(key, def)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks required values. Production additionally refuses the
// default JWT secret.
func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return errors.New("SERVER_PORT is required")
	}
	if c.DBName == "" {
		return errors.New("DB_NAME is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.TokenMaxAge <= 0 {
		return errors.New("TOKEN_MAX_AGE must be positive")
	}
	if c.IsProduction() && c.JWTSecret == defaultJWTSecret {
		return errors.New("JWT_SECRET must be changed from the default value in production")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// DSN returns the lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// StorageEnabled reports whether object storage credentials are configured.
func (c *Config) StorageEnabled() bool {
	return c.S3Bucket != "" && c.S3AccessKeyID != "" && c.S3SecretAccessKey != ""
}
