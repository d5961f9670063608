package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GATEWAY_BASE_URL", "http://gw:10000/api/")

	cfg := Load()

	assert.Equal(t, "8081", cfg.HTTPPort)
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, 32, cfg.Catalog.CategoryMaxDepth)
	assert.Equal(t, "http://gw:10000/api/profile", cfg.Endpoints[EndpointUser].BaseURL)
	assert.Equal(t, "http://gw:10000/api", cfg.Endpoints[EndpointQnA].BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Endpoints[EndpointDelivery].Timeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("ENRICH_CONCURRENCY", "not-a-number")
	t.Setenv("REMOTE_TIMEOUT", "750ms")
	t.Setenv("TRACING_ENABLED", "false")

	cfg := Load()

	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, 8, cfg.Catalog.EnrichConcurrency)
	assert.Equal(t, 750*time.Millisecond, cfg.Endpoints[EndpointUser].Timeout)
	assert.False(t, cfg.Tracing.Enabled)
}
