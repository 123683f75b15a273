package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	Document     DocumentConfig
	Notification NotificationConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
	OrgName     string
}

// DocumentConfig bounds the timesheet PDF pipeline
type DocumentConfig struct {
	GenerationTimeout time.Duration
	MaxSignatureBytes int64
}

// NotificationConfig tunes the dispatcher workers
type NotificationConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "crewtrack"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		OrgName:     getEnv("ORG_NAME", "CrewTrack Staffing"),
	}

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	genTimeout, err := time.ParseDuration(getEnv("PDF_GENERATION_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PDF_GENERATION_TIMEOUT: %w", err)
	}
	maxSigBytes, err := strconv.ParseInt(getEnv("MAX_SIGNATURE_BYTES", "2097152"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_SIGNATURE_BYTES: %w", err)
	}

	config.Document = DocumentConfig{
		GenerationTimeout: genTimeout,
		MaxSignatureBytes: maxSigBytes,
	}

	flushInterval, err := time.ParseDuration(getEnv("NOTIFICATION_FLUSH_INTERVAL", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFICATION_FLUSH_INTERVAL: %w", err)
	}
	workerCount, err := strconv.Atoi(getEnv("NOTIFICATION_WORKER_COUNT", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFICATION_WORKER_COUNT: %w", err)
	}

	config.Notification = NotificationConfig{
		WorkerCount:   workerCount,
		QueueSize:     1000,
		BatchSize:     100,
		FlushInterval: flushInterval,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Document.GenerationTimeout <= 0 {
		return fmt.Errorf("PDF_GENERATION_TIMEOUT must be positive")
	}
	if c.Document.MaxSignatureBytes <= 0 {
		return fmt.Errorf("MAX_SIGNATURE_BYTES must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
