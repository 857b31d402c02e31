package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	// gRPC server port
	GRPCPort int
	// HTTP API/health/metrics port
	HTTPPort int
	// Database configuration
	Database DatabaseConfig
	// Kafka configuration
	Kafka KafkaConfig
	// Model artifact locations
	Model ModelConfig
	// Service name for observability
	ServiceName string
	LogLevel    string
	LogFormat   string
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// KafkaConfig holds Kafka connection settings. SASL is enabled whenever a
// username is configured.
type KafkaConfig struct {
	Brokers         []string
	AssessmentTopic string

	TLS           bool
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
}

// ModelConfig holds the paths of the serialized classifier and scaler.
type ModelConfig struct {
	ModelPath  string
	ScalerPath string
}

// Validate checks required configuration values.
func (c Config) Validate() {
	if c.Database.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		GRPCPort:    getEnvInt("GRPC_PORT", 9090),
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		ServiceName: getEnv("SERVICE_NAME", "stroke-assessment"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "stroke"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "stroke_assessment"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 20)), //nolint:gosec // bounded by env config
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 5)),  //nolint:gosec // bounded by env config
		},
		Kafka: KafkaConfig{
			Brokers:         strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			AssessmentTopic: getEnv("KAFKA_ASSESSMENT_TOPIC", "stroke.assessments"),
			TLS:             getEnvBool("KAFKA_TLS", false),
			SASLMechanism:   getEnv("KAFKA_SASL_MECHANISM", ""),
			SASLUsername:    getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:    getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		Model: ModelConfig{
			ModelPath:  getEnv("MODEL_PATH", "artifacts/stroke_model.json"),
			ScalerPath: getEnv("SCALER_PATH", "artifacts/scaler.json"),
		},
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
