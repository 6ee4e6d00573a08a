package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/api/v1", cfg.GetAPIBasePath())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "seats-released", cfg.Kafka.ReleasesTopic)
	assert.Equal(t, 2*time.Minute, cfg.Waitlist.SweepLockTTL)
	assert.Contains(t, cfg.Database.DSN, "dbname=nexusems")
	assert.False(t, cfg.SMTPConfigured())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("RATE_LIMIT_WINDOW_DURATION", "30s")
	t.Setenv("JWT_EXPIRES_IN", "60")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.GetServerAddress())
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.WindowDuration)
	assert.Equal(t, time.Minute, cfg.JWT.ExpiresIn)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.True(t, cfg.SMTPConfigured())
}
