package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// DBConfig holds database configuration
type DBConfig struct {
	Driver          string `validate:"oneof=postgres sqlite"`
	Host            string `validate:"required_if=Driver postgres"`
	Port            string `validate:"required_if=Driver postgres"`
	User            string
	Password        string
	DBName          string `validate:"required_if=Driver postgres"`
	SSLMode         string
	Path            string `validate:"required_if=Driver sqlite"`
	MaxIdleConns    int    `validate:"gte=0"`
	MaxOpenConns    int    `validate:"gte=0"`
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// GetDSN returns the PostgreSQL connection string
func (c *DBConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string `validate:"required,numeric"`
	Env          string `validate:"required"`
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	FrontendURL  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SigningKey string        `validate:"required"`
	Expiration time.Duration `validate:"gt=0"`
}

// SecurityConfig holds password hashing configuration
type SecurityConfig struct {
	BcryptCost int `validate:"gte=4,lte=31"`
}

// EnrichmentConfig holds settings for the description generation service
type EnrichmentConfig struct {
	GeminiAPIKey  string
	GeminiModel   string `validate:"required"`
	GeminiBaseURL string `validate:"required,url"`
	Timeout       time.Duration
	RetryMax      int `validate:"gte=0"`
}

// ProductConfig holds product listing settings
type ProductConfig struct {
	MaxPageSize int `validate:"gt=0"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string `validate:"required"`
}

// Config holds all configuration
type Config struct {
	DB         DBConfig
	Server     ServerConfig
	JWT        JWTConfig
	Security   SecurityConfig
	Enrichment EnrichmentConfig
	Product    ProductConfig
	Log        LogConfig
	Metrics    MetricsConfig
}

// Load loads configuration from an optional .env file and environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional
		fmt.Printf("Warning: .env file not found, using environment variables\n")
	}

	return FromEnv()
}

// FromEnv builds the configuration from the current process environment and validates it
func FromEnv() (*Config, error) {
	config := &Config{
		DB: DBConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "password"),
			DBName:          getEnv("DB_NAME", "catalog_service"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			Path:            getEnv("DB_PATH", "catalog.db"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 1*time.Hour),
			LogLevel:        getEnvAsLogLevel("DB_LOG_LEVEL", logger.Warn),
		},
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8000"),
			Env:          getEnv("APP_ENV", "development"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			FrontendURL:  getEnv("FRONTEND_URL", ""),
		},
		JWT: JWTConfig{
			SigningKey: getEnv("JWT_SIGNING_KEY", ""),
			Expiration: time.Duration(getEnvAsInt("JWT_EXPIRATION_MINUTES", 30)) * time.Minute,
		},
		Security: SecurityConfig{
			BcryptCost: getEnvAsInt("BCRYPT_COST", 10),
		},
		Enrichment: EnrichmentConfig{
			GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
			GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
			Timeout:       getEnvAsDuration("ENRICHMENT_TIMEOUT", 10*time.Second),
			RetryMax:      getEnvAsInt("ENRICHMENT_RETRY_MAX", 1),
		},
		Product: ProductConfig{
			MaxPageSize: getEnvAsInt("PRODUCT_MAX_PAGE_SIZE", 100),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", "catalog"),
		},
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// AllowedOrigins returns the CORS allow-list
func (c *Config) AllowedOrigins() []string {
	origins := []string{"http://localhost:8000", "http://127.0.0.1:8000"}
	if c.Server.FrontendURL != "" {
		origins = append(origins, c.Server.FrontendURL)
	}
	return origins
}

// LogConfig returns the configuration as a zap logger-friendly format
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("environment", c.Server.Env),
		zap.String("db_driver", c.DB.Driver),
		zap.String("db_host", c.DB.Host),
		zap.String("db_port", c.DB.Port),
		zap.String("db_user", c.DB.User),
		zap.String("db_name", c.DB.DBName),
		zap.String("server_port", c.Server.Port),
		zap.Duration("token_ttl", c.JWT.Expiration),
		zap.Bool("gemini_configured", c.Enrichment.GeminiAPIKey != ""),
	}
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as durations
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as log levels
func getEnvAsLogLevel(key string, defaultValue logger.LogLevel) logger.LogLevel {
	valueStr := getEnv(key, "")
	switch valueStr {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return defaultValue
	}
}
