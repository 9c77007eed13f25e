package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	State    StateConfig
	Kafka    KafkaConfig
	Identity IdentityConfig
	Email    EmailConfig
	Video    VideoConfig
	CORS     CORSConfig
}

type AppConfig struct {
	Name       string
	Env        string
	Port       string
	Debug      bool
	AdminEmail string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StateConfig selects the shared state backend. Driver is "redis" in
// production and "memory" for local development and tests.
type StateConfig struct {
	Driver string
}

type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// IdentityConfig holds the session-token verification secret shared with
// the identity provider.
type IdentityConfig struct {
	SigningSecret string
}

type EmailConfig struct {
	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	FromName       string
	FromEmail      string
	SendsPerSecond float64
}

// VideoConfig holds credentials for the hosted video platform.
type VideoConfig struct {
	TokenID     string
	TokenSecret string
	BaseURL     string
	CORSOrigin  string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "dentwise-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "dentwise")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("STATE_DRIVER", "redis")
	viper.SetDefault("KAFKA_ENABLED", false)
	viper.SetDefault("KAFKA_BROKERS", "localhost:9092")
	viper.SetDefault("KAFKA_TOPIC", "dentwise.events")
	viper.SetDefault("IDENTITY_SIGNING_SECRET", "change-this-secret-in-production")
	viper.SetDefault("SMTP_HOST", "localhost")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("EMAIL_FROM_NAME", "DentWise")
	viper.SetDefault("EMAIL_FROM_ADDRESS", "no-reply@dentwise.example.com")
	viper.SetDefault("EMAIL_SENDS_PER_SECOND", 1.0)
	viper.SetDefault("VIDEO_CORS_ORIGIN", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})

	return &Config{
		App: AppConfig{
			Name:       viper.GetString("APP_NAME"),
			Env:        viper.GetString("APP_ENV"),
			Port:       viper.GetString("APP_PORT"),
			Debug:      viper.GetBool("APP_DEBUG"),
			AdminEmail: strings.ToLower(viper.GetString("ADMIN_EMAIL")),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		State: StateConfig{
			Driver: viper.GetString("STATE_DRIVER"),
		},
		Kafka: KafkaConfig{
			Enabled: viper.GetBool("KAFKA_ENABLED"),
			Brokers: viper.GetStringSlice("KAFKA_BROKERS"),
			Topic:   viper.GetString("KAFKA_TOPIC"),
		},
		Identity: IdentityConfig{
			SigningSecret: viper.GetString("IDENTITY_SIGNING_SECRET"),
		},
		Email: EmailConfig{
			SMTPHost:       viper.GetString("SMTP_HOST"),
			SMTPPort:       viper.GetInt("SMTP_PORT"),
			SMTPUsername:   viper.GetString("SMTP_USERNAME"),
			SMTPPassword:   viper.GetString("SMTP_PASSWORD"),
			FromName:       viper.GetString("EMAIL_FROM_NAME"),
			FromEmail:      viper.GetString("EMAIL_FROM_ADDRESS"),
			SendsPerSecond: viper.GetFloat64("EMAIL_SENDS_PER_SECOND"),
		},
		Video: VideoConfig{
			TokenID:     viper.GetString("VIDEO_TOKEN_ID"),
			TokenSecret: viper.GetString("VIDEO_TOKEN_SECRET"),
			BaseURL:     viper.GetString("VIDEO_BASE_URL"),
			CORSOrigin:  viper.GetString("VIDEO_CORS_ORIGIN"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
