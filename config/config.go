package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	DatabaseURL        string
	Port               string
	GoEnv              string
	LogLevel           string
	Auth0Domain        string
	Auth0Audience      string
	Auth0ClientID      string
	Auth0ClientSecret  string
	Auth0Connection    string
	AdminScope         string
	AWSRegion          string
	AWSS3Bucket        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	CafeName           string
	CafeTimezone       string
	StaffWhatsApp      string
	PromoBundlePrice   int64
	SessionStore       string
	RedisURL           string
	SessionTTL         time.Duration
	EventBroker        string
	KafkaBrokers       []string
	KafkaTopic         string
	RabbitMQURL        string
	RabbitMQExchange   string
	TracingEnabled     bool
	CORSAllowedOrigins []string
}

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	// Determine which environment file to load
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		if err := godotenv.Load(); err != nil {
			// In production, environment variables are set directly
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	v := newViper()

	config := &Config{
		DatabaseURL:        v.GetString("DATABASE_URL"),
		Port:               v.GetString("PORT"),
		GoEnv:              v.GetString("GO_ENV"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		Auth0Domain:        v.GetString("AUTH0_DOMAIN"),
		Auth0Audience:      v.GetString("AUTH0_AUDIENCE"),
		Auth0ClientID:      v.GetString("AUTH0_CLIENT_ID"),
		Auth0ClientSecret:  v.GetString("AUTH0_CLIENT_SECRET"),
		Auth0Connection:    v.GetString("AUTH0_CONNECTION"),
		AdminScope:         v.GetString("ADMIN_SCOPE"),
		AWSRegion:          v.GetString("AWS_REGION"),
		AWSS3Bucket:        v.GetString("AWS_S3_BUCKET"),
		AWSAccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
		CafeName:           v.GetString("CAFE_NAME"),
		CafeTimezone:       v.GetString("CAFE_TIMEZONE"),
		StaffWhatsApp:      v.GetString("STAFF_WHATSAPP"),
		PromoBundlePrice:   v.GetInt64("PROMO_BUNDLE_PRICE"),
		SessionStore:       strings.ToLower(v.GetString("SESSION_STORE")),
		RedisURL:           v.GetString("REDIS_URL"),
		SessionTTL:         v.GetDuration("SESSION_TTL"),
		EventBroker:        strings.ToLower(v.GetString("EVENT_BROKER")),
		KafkaBrokers:       splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:         v.GetString("KAFKA_TOPIC"),
		RabbitMQURL:        v.GetString("RABBITMQ_URL"),
		RabbitMQExchange:   v.GetString("RABBITMQ_EXCHANGE"),
		TracingEnabled:     v.GetBool("TRACING_ENABLED"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// newViper binds environment variables and their defaults
func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GO_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("AUTH0_CONNECTION", "Username-Password-Authentication")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("CAFE_NAME", "Cafe Tropis")
	v.SetDefault("CAFE_TIMEZONE", "Asia/Jakarta")
	v.SetDefault("STAFF_WHATSAPP", "6280000000000")
	v.SetDefault("PROMO_BUNDLE_PRICE", 25000)
	v.SetDefault("SESSION_STORE", "memory")
	v.SetDefault("SESSION_TTL", "2h")
	v.SetDefault("EVENT_BROKER", "none")
	v.SetDefault("KAFKA_BROKERS", "127.0.0.1:9092")
	v.SetDefault("KAFKA_TOPIC", "cafe-orders")
	v.SetDefault("RABBITMQ_EXCHANGE", "cafe_orders")
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")

	return v
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	if c.DatabaseURL == "" && !c.IsTest() {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if _, err := time.LoadLocation(c.CafeTimezone); err != nil {
		return fmt.Errorf("CAFE_TIMEZONE %q is not a valid time zone: %w", c.CafeTimezone, err)
	}
	if c.PromoBundlePrice < 0 {
		return fmt.Errorf("PROMO_BUNDLE_PRICE must not be negative")
	}
	switch c.SessionStore {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when SESSION_STORE=redis")
		}
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.SessionStore)
	}
	switch c.EventBroker {
	case "none", "kafka":
	case "rabbitmq":
		if c.RabbitMQURL == "" {
			return fmt.Errorf("RABBITMQ_URL is required when EVENT_BROKER=rabbitmq")
		}
	default:
		return fmt.Errorf("unknown EVENT_BROKER %q", c.EventBroker)
	}
	return nil
}

// Location returns the cafe's time zone. Validate has already checked it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.CafeTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
