package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Endpoint names used by the remote client.
const (
	EndpointUser     = "user"
	EndpointQnA      = "qna"
	EndpointDelivery = "delivery"
)

// EndpointConfig describes a sibling service reachable over HTTP.
type EndpointConfig struct {
	Name    string
	BaseURL string
	Timeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr              string
	Password          string
	DB                int
	RateLimitMax      int
	RateLimitWindow   time.Duration
	RecentKeywordsMax int
}

// Enabled reports whether a Redis address was configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type KafkaConfig struct {
	Brokers []string
	GroupID string
	Topics  []string
}

func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

type TracingConfig struct {
	Enabled        bool
	JaegerEndpoint string
}

type CatalogConfig struct {
	EnrichConcurrency int
	CategoryMaxDepth  int
}

// Config is the full service configuration.
type Config struct {
	ServiceName    string
	Environment    string
	LogLevel       string
	HTTPPort       string
	GRPCPort       string
	RequestTimeout time.Duration
	StoreDriver    string
	JWTSecret      string

	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Tracing   TracingConfig
	Catalog   CatalogConfig
	Endpoints map[string]EndpointConfig
}

// IsDevelopment reports whether console logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads the configuration from the environment.
func Load() *Config {
	gateway := strings.TrimRight(getEnv("GATEWAY_BASE_URL", "http://localhost:10000/api"), "/")
	remoteTimeout := getEnvDuration("REMOTE_TIMEOUT", 3*time.Second)

	return &Config{
		ServiceName:    getEnv("OTEL_SERVICE_NAME", "catalog-service"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		HTTPPort:       getEnv("HTTP_PORT", "8081"),
		GRPCPort:       getEnv("GRPC_PORT", "9091"),
		RequestTimeout: getEnvDuration("HTTP_REQUEST_TIMEOUT", 30*time.Second),
		StoreDriver:    strings.ToLower(getEnv("STORE_DRIVER", "postgres")),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "catalogdb"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Addr:              getEnv("REDIS_ADDR", ""),
			Password:          getEnv("REDIS_PASSWORD", ""),
			DB:                getEnvInt("REDIS_DB", 0),
			RateLimitMax:      getEnvInt("RATE_LIMIT_MAX", 100),
			RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
			RecentKeywordsMax: getEnvInt("RECENT_KEYWORDS_MAX", 10),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvSlice("KAFKA_BROKERS", nil),
			GroupID: getEnv("KAFKA_GROUP_ID", "catalog-service"),
			Topics:  getEnvSlice("KAFKA_TOPICS", []string{"product-purchased"}),
		},
		Tracing: TracingConfig{
			Enabled:        getEnvBool("TRACING_ENABLED", true),
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
		Catalog: CatalogConfig{
			EnrichConcurrency: getEnvInt("ENRICH_CONCURRENCY", 8),
			CategoryMaxDepth:  getEnvInt("CATEGORY_MAX_DEPTH", 32),
		},
		Endpoints: map[string]EndpointConfig{
			EndpointUser: {
				Name:    "user-service",
				BaseURL: getEnv("USER_SERVICE_URL", gateway+"/profile"),
				Timeout: remoteTimeout,
			},
			EndpointQnA: {
				Name:    "qna-service",
				BaseURL: getEnv("QNA_SERVICE_URL", gateway),
				Timeout: remoteTimeout,
			},
			EndpointDelivery: {
				Name:    "delivery-service",
				BaseURL: getEnv("DELIVERY_SERVICE_URL", gateway),
				Timeout: remoteTimeout,
			},
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if v, err := time.ParseDuration(value); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
