// Package config loads service settings from an optional env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// ErrMissingJWTSecret is returned when JWT_SECRET_KEY is not set.
var ErrMissingJWTSecret = errors.New("JWT_SECRET_KEY is required")

// Photo storage backends.
const (
	PhotoStorageLocal = "local"
	PhotoStorageS3    = "s3"
)

// Config holds every setting the service reads at startup. It is immutable after Load.
type Config struct {
	AppHost     string
	AppPort     string
	ContextPath string
	LogLevel    string
	LogFormat   string

	// CORSAllowedOrigins lists the browser origins allowed to call the API. "*" allows any.
	CORSAllowedOrigins []string

	PostgresHost         string
	PostgresPort         int
	PostgresUser         string
	PostgresPassword     string
	PostgresDB           string
	PostgresMaxOpenConns int
	PostgresMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	CacheTTL          time.Duration

	KafkaBrokers       []string
	KafkaEmployeeTopic string

	JWTSecretKey  string
	JWTExpiration time.Duration
	BcryptCost    int

	UploadDir      string
	UploadMaxBytes int64
	PhotoStorage   string
	S3Endpoint     string
	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	S3PublicURL    string

	GRPCHealthPort string
}

// Load reads path with godotenv (a missing file is not an error) and then the environment.
func Load(path string) (*Config, error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	var (
		cfg Config
		err error
	)

	// Application
	cfg.AppHost = getEnv("APP_HOST", "0.0.0.0")
	cfg.AppPort = getEnv("APP_PORT", "8092")
	cfg.ContextPath = normalizeContextPath(getEnv("CONTEXT_PATH", "/gbc-service/comp3123"))
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("APP_LOG_FORMAT", "json")
	cfg.CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "*"))

	// PostgreSQL
	cfg.PostgresHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PostgresUser = getEnv("POSTGRES_USER", "user")
	cfg.PostgresPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PostgresDB = getEnv("POSTGRES_DB", "employees")
	if cfg.PostgresPort, err = atoi(getEnv("POSTGRES_PORT", "5432"), "POSTGRES_PORT"); err != nil {
		return nil, err
	}
	if cfg.PostgresMaxOpenConns, err = atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16"), "POSTGRES_MAX_OPEN_CONNS"); err != nil {
		return nil, err
	}
	if cfg.PostgresMaxIdleConns, err = atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8"), "POSTGRES_MAX_IDLE_CONNS"); err != nil {
		return nil, err
	}

	// Redis, disabled when REDIS_HOST is empty
	cfg.RedisHost = getEnv("REDIS_HOST", "")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPort, err = atoi(getEnv("REDIS_PORT", "6379"), "REDIS_PORT"); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = atoi(getEnv("REDIS_DB", "0"), "REDIS_DB"); err != nil {
		return nil, err
	}
	if cfg.RedisPoolSize, err = atoi(getEnv("REDIS_POOL_SIZE", "10"), "REDIS_POOL_SIZE"); err != nil {
		return nil, err
	}
	if cfg.RedisMinIdleConns, err = atoi(getEnv("REDIS_MIN_IDLE_CONNS", "2"), "REDIS_MIN_IDLE_CONNS"); err != nil {
		return nil, err
	}
	cacheTTL, err := atoi(getEnv("CACHE_TTL_SECOND", "300"), "CACHE_TTL_SECOND")
	if err != nil {
		return nil, err
	}
	cfg.CacheTTL = time.Duration(cacheTTL) * time.Second

	// Kafka, disabled when KAFKA_BROKERS is empty
	cfg.KafkaBrokers = splitList(getEnv("KAFKA_BROKERS", ""))
	cfg.KafkaEmployeeTopic = getEnv("KAFKA_EMPLOYEE_TOPIC", "employee-events")

	// Auth
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "")
	if cfg.JWTSecretKey == "" {
		return nil, ErrMissingJWTSecret
	}
	jwtExp, err := atoi(getEnv("JWT_EXP_SECOND", "7200"), "JWT_EXP_SECOND")
	if err != nil {
		return nil, err
	}
	cfg.JWTExpiration = time.Duration(jwtExp) * time.Second
	if cfg.BcryptCost, err = atoi(getEnv("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)), "BCRYPT_COST"); err != nil {
		return nil, err
	}

	// Photos
	cfg.UploadDir = getEnv("UPLOAD_DIR", "uploads")
	if cfg.UploadMaxBytes, err = strconv.ParseInt(getEnv("UPLOAD_MAX_BYTES", "10485760"), 10, 64); err != nil {
		return nil, fmt.Errorf("UPLOAD_MAX_BYTES: %w", err)
	}
	cfg.PhotoStorage = strings.ToLower(getEnv("PHOTO_STORAGE", PhotoStorageLocal))
	if cfg.PhotoStorage != PhotoStorageLocal && cfg.PhotoStorage != PhotoStorageS3 {
		return nil, fmt.Errorf("PHOTO_STORAGE: unsupported backend %q", cfg.PhotoStorage)
	}
	cfg.S3Endpoint = getEnv("S3_ENDPOINT", "")
	cfg.S3Region = getEnv("S3_REGION", "us-east-1")
	cfg.S3Bucket = getEnv("S3_BUCKET", "employee-photos")
	cfg.S3AccessKey = getEnv("S3_ACCESS_KEY", "")
	cfg.S3SecretKey = getEnv("S3_SECRET_KEY", "")
	cfg.S3PublicURL = getEnv("S3_PUBLIC_URL", "")

	cfg.GRPCHealthPort = getEnv("GRPC_HEALTH_PORT", "")

	return &cfg, nil
}

// PostgresDSN builds the pgx connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresPort, c.PostgresDB)
}

// RedisAddr returns host:port, or "" when Redis is disabled.
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

func atoi(val, key string) (int, error) {
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// normalizeContextPath yields "" or a path with a leading and no trailing slash.
func normalizeContextPath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}
