package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"APP_ENV", "DB_PATH", "DB_DRIVER", "REDIS_ADDR", "CACHE_TTL", "GRPC_PORT",
	"GRPC_REFLECTION_ENABLED", "HTTP_PORT", "CORS_ALLOWED_ORIGINS", "SENTIMENT_MODE",
	"SENTIMENT_LEXICON_ENABLED", "SENTIMENT_LEXICON_PATH", "CATALOG_PATH",
}

func clearEnv(t *testing.T) {
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := LoadFromEnv()

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, "./data/jii2025.db", cfg.DBPath)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 50051, cfg.GRPCPort)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.False(t, cfg.GRPCReflectionEnabled)
	assert.Equal(t, "basic", cfg.SentimentMode)
	assert.False(t, cfg.LexiconEnabled)
	assert.Empty(t, cfg.CORSOrigins)
	assert.False(t, cfg.CacheEnabled())
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PATH", "postgres://jii@db/jii")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("GRPC_PORT", "6000")
	t.Setenv("GRPC_REFLECTION_ENABLED", "true")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("SENTIMENT_MODE", "lexicon")
	t.Setenv("SENTIMENT_LEXICON_ENABLED", "1")
	t.Setenv("SENTIMENT_LEXICON_PATH", "/etc/jii/lexicon.json")
	t.Setenv("CATALOG_PATH", "/etc/jii/catalog.yaml")

	cfg := LoadFromEnv()

	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "postgres://jii@db/jii", cfg.DBPath)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, 6000, cfg.GRPCPort)
	assert.True(t, cfg.GRPCReflectionEnabled)
	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "lexicon", cfg.SentimentMode)
	assert.True(t, cfg.LexiconEnabled)
	assert.Equal(t, "/etc/jii/lexicon.json", cfg.LexiconPath)
	assert.Equal(t, "/etc/jii/catalog.yaml", cfg.CatalogPath)
}

func TestLoadFromEnv_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRPC_PORT", "not-a-port")
	t.Setenv("GRPC_REFLECTION_ENABLED", "maybe")
	t.Setenv("CACHE_TTL", "-5m")

	cfg := LoadFromEnv()

	assert.Equal(t, 50051, cfg.GRPCPort)
	assert.False(t, cfg.GRPCReflectionEnabled)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
}

func TestCacheTTL_Seconds(t *testing.T) {
	clearEnv(t)
	t.Setenv("CACHE_TTL", "120")

	assert.Equal(t, 2*time.Minute, LoadFromEnv().CacheTTL)
}

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		logger, err := NewLogger(&Config{AppEnv: env})
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}
}
