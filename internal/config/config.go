package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	QuoteStoreDynamoDB = "dynamodb"
	QuoteStoreSQLite   = "sqlite"
)

type Config struct {
	ServerPort string
	LogLevel   string

	QuoteStore string
	SQLitePath string

	AWS      AWSConfig
	Database DatabaseConfig
	Redis    RedisConfig
	MinIO    MinIOConfig
	Auth     AuthConfig

	NotificationTimeout time.Duration
	CORSAllowedOrigins  []string
}

type AWSConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	DynamoDBEndpoint   string
	QuoteRequestsTable string
}

type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	WorkshopTTL time.Duration
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type AuthConfig struct {
	JWTSecret string
}

var defaults = map[string]any{
	"SERVER_PORT":           "8080",
	"LOG_LEVEL":             "info",
	"QUOTE_STORE":           QuoteStoreDynamoDB,
	"SQLITE_PATH":           "instauto.db",
	"AWS_REGION":            "us-east-1",
	"AWS_ACCESS_KEY_ID":     "local",
	"AWS_SECRET_ACCESS_KEY": "local",
	"DYNAMODB_ENDPOINT":     "",
	"QUOTE_REQUESTS_TABLE":  "quote_requests",
	"DATABASE_URL":          "",
	"REDIS_ADDR":            "",
	"REDIS_PASSWORD":        "",
	"REDIS_DB":              0,
	"WORKSHOP_CACHE_TTL":    "5m",
	"MINIO_ENDPOINT":        "",
	"MINIO_ACCESS_KEY":      "",
	"MINIO_SECRET_KEY":      "",
	"MINIO_BUCKET":          "quote-attachments",
	"MINIO_USE_SSL":         false,
	"AUTH_JWT_SECRET":       "",
	"NOTIFICATION_TIMEOUT":  "3s",
	"CORS_ALLOWED_ORIGINS":  "*",
}

// Load reads configuration from defaults, an optional config.toml and the
// environment (a local .env is loaded first when present). Environment wins.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	configName := "config"
	if name := os.Getenv("CONFIG_NAME"); name != "" {
		configName = name
	}
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", configName, err)
		}
	}

	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		ServerPort: v.GetString("SERVER_PORT"),
		LogLevel:   strings.ToLower(v.GetString("LOG_LEVEL")),
		QuoteStore: strings.ToLower(v.GetString("QUOTE_STORE")),
		SQLitePath: v.GetString("SQLITE_PATH"),
		AWS: AWSConfig{
			Region:             v.GetString("AWS_REGION"),
			AccessKeyID:        v.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey:    v.GetString("AWS_SECRET_ACCESS_KEY"),
			DynamoDBEndpoint:   v.GetString("DYNAMODB_ENDPOINT"),
			QuoteRequestsTable: v.GetString("QUOTE_REQUESTS_TABLE"),
		},
		Database: DatabaseConfig{URL: v.GetString("DATABASE_URL")},
		Redis: RedisConfig{
			Addr:        v.GetString("REDIS_ADDR"),
			Password:    v.GetString("REDIS_PASSWORD"),
			DB:          v.GetInt("REDIS_DB"),
			WorkshopTTL: v.GetDuration("WORKSHOP_CACHE_TTL"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			Bucket:    v.GetString("MINIO_BUCKET"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
		},
		Auth:                AuthConfig{JWTSecret: v.GetString("AUTH_JWT_SECRET")},
		NotificationTimeout: v.GetDuration("NOTIFICATION_TIMEOUT"),
		CORSAllowedOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.QuoteStore {
	case QuoteStoreDynamoDB, QuoteStoreSQLite:
	default:
		return fmt.Errorf("config: QUOTE_STORE must be %q or %q, got %q", QuoteStoreDynamoDB, QuoteStoreSQLite, c.QuoteStore)
	}
	if c.QuoteStore == QuoteStoreSQLite && strings.TrimSpace(c.SQLitePath) == "" {
		return errors.New("config: SQLITE_PATH is required when QUOTE_STORE=sqlite")
	}
	if c.NotificationTimeout <= 0 {
		return fmt.Errorf("config: NOTIFICATION_TIMEOUT must be positive, got %s", c.NotificationTimeout)
	}
	if c.Redis.WorkshopTTL < 0 {
		return fmt.Errorf("config: WORKSHOP_CACHE_TTL must not be negative, got %s", c.Redis.WorkshopTTL)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
