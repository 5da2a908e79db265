package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateKeys(t *testing.T) {
	assert.Equal(t, "ratelimit:10.0.0.1", GenerateKey("ratelimit", "10.0.0.1"))
	assert.Equal(t, "ratelimit:10.0.0.1:42", GenerateKeyWithParams("ratelimit", "10.0.0.1", 42))
	assert.Equal(t, "ratelimit", GenerateKeyWithParams("ratelimit"))
}

func TestRedisOptions(t *testing.T) {
	cfg := defaultRedisConfig()
	for _, opt := range []RedisOption{
		WithRedisHost("redis"),
		WithRedisPort(6380),
		WithRedisPassword("secret"),
		WithRedisDB(2),
		WithRedisPool(20, 4, time.Second),
		WithRedisPrefix("sampler"),
	} {
		opt(cfg)
	}

	assert.Equal(t, "redis", cfg.Host)
	assert.Equal(t, 6380, cfg.Port)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, 2, cfg.DB)
	assert.Equal(t, 20, cfg.PoolSize)
	assert.Equal(t, 4, cfg.MinIdleConns)
	assert.Equal(t, time.Second, cfg.PoolTimeout)
	assert.Equal(t, "sampler", cfg.Prefix)
}

func TestRedisCacheWrapsKeys(t *testing.T) {
	c := &RedisCache{prefix: "pricesampler"}
	assert.Equal(t, "pricesampler:ratelimit:1.2.3.4", c.wrapKey("ratelimit:1.2.3.4"))
}

func TestNewRedisCacheFailsWithoutServer(t *testing.T) {
	_, err := NewRedisCache(WithRedisHost("127.0.0.1"), WithRedisPort(1))
	assert.Error(t, err)
}
