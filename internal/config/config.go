package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const devSessionSecret = "dev_fallback_secret"

type Config struct {
	AppPort     string
	Environment string
	LogLevel    string
	SiteURL     string

	DBDSN string

	Session    SessionConfig
	Cloudinary CloudinaryConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Tracing    TracingConfig
	Admin      AdminConfig

	CleanupInterval time.Duration
}

type SessionConfig struct {
	Name   string
	Secret string
	Secure bool
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Enabled сообщает, заданы ли все ключи Cloudinary.
func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type KafkaConfig struct {
	BrokerAddress string
	BrokerTopic   string
}

type TracingConfig struct {
	CollectorHost string
	ServiceName   string
}

type AdminConfig struct {
	Email    string
	Password string
}

// Load читает .env (текущая папка, родительская, корень репо) и переменные окружения.
func Load() *Config {
	_ = godotenv.Overload(".env", "../.env", "../../.env")

	conf := Config{
		AppPort:     getEnv("APP_PORT", "8080"),
		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		SiteURL:     getEnv("SITE_URL", "http://localhost:3000"),
		DBDSN:       os.Getenv("DB_DSN"),
		Session: SessionConfig{
			Name:   getEnv("SESSION_NAME", "storefront_session"),
			Secret: os.Getenv("SESSION_SECRET"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
			Folder:    getEnv("CLOUDINARY_FOLDER", "products"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
			TTL:      getDuration("REDIS_TTL", 5*time.Minute),
		},
		Kafka: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   getEnv("BROKER_TOPIC", "catalog-events"),
		},
		Tracing: TracingConfig{
			CollectorHost: os.Getenv("OTEL_COLLECTOR_HOST"),
			ServiceName:   getEnv("OTEL_SERVICE_NAME", "storefront"),
		},
		Admin: AdminConfig{
			Email:    os.Getenv("ADMIN_EMAIL"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
		CleanupInterval: getDuration("CLEANUP_INTERVAL", time.Minute),
	}

	if conf.Session.Secret == "" {
		log.Warn().Str("component", "config.Load").Msg("SESSION_SECRET is empty, using dev fallback secret")
		conf.Session.Secret = devSessionSecret
	}
	conf.Session.Secure = conf.Environment == "production"

	return &conf
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Err(err).Str("component", "config.Load").Str("key", key).Msg("invalid integer, using default")
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Warn().Str("component", "config.Load").Str("key", key).Msg("invalid duration, using default")
		return fallback
	}
	return d
}
