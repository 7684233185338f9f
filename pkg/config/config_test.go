package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danghamo/zoo/pkg/logger"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadWith(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "Hadiqat El-Hayawan", cfg.Zoo.Name)
	assert.Equal(t, "Gize, Egypt", cfg.Zoo.Location)
	assert.Equal(t, "advisory", cfg.Enclosure.CapacityPolicy)
	assert.Equal(t, 50, cfg.Enclosure.DefaultCapacity)
	assert.Equal(t, BackendMemory, cfg.Events.Backend)
	assert.Equal(t, "zoo-events", cfg.Events.TopicPrefix)
	assert.False(t, cfg.Events.UsesRedis())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "localhost:8080", cfg.Server.Addr())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Zero(t, cfg.Server.WriteTimeout)
	assert.True(t, cfg.Server.Seed)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10*time.Second, cfg.Stream.CensusInterval)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Setenv("ZOO_NAME", "Alexandria")
	t.Setenv("ENCLOSURE_CAPACITY_POLICY", "enforced")
	t.Setenv("ENCLOSURE_DEFAULT_CAPACITY", "10")
	t.Setenv("EVENTS_BACKEND", "redis")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWith(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "Alexandria", cfg.Zoo.Name)
	assert.Equal(t, "enforced", cfg.Enclosure.CapacityPolicy)
	assert.Equal(t, 10, cfg.Enclosure.DefaultCapacity)
	assert.True(t, cfg.Events.UsesRedis())
	assert.Equal(t, logger.DebugLevel, cfg.LoggerConfig().Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("zoo:\n  name: Giza Annex\nevents:\n  topic_prefix: annex\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	v := viper.New()
	v.SetConfigFile(path)

	cfg, err := LoadWith(v)
	require.NoError(t, err)
	assert.Equal(t, "Giza Annex", cfg.Zoo.Name)
	assert.Equal(t, "annex", cfg.Events.TopicPrefix)
	assert.Equal(t, "Gize, Egypt", cfg.Zoo.Location)
	assert.Equal(t, path, v.ConfigFileUsed())
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Zoo:       ZooConfig{Name: "Z", Location: "L"},
			Enclosure: EnclosureConfig{CapacityPolicy: "advisory", DefaultCapacity: 50},
			Events:    EventsConfig{Backend: BackendMemory, TopicPrefix: "zoo-events"},
			Log:       LogConfig{Level: "info", Encoding: "console"},
			Server:    ServerConfig{Host: "localhost", Port: 8080},
			RateLimit: RateLimitConfig{Enabled: true, RPS: 10, Burst: 50},
			Stream:    StreamConfig{HeartbeatInterval: 30 * time.Second},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty zoo name", func(c *Config) { c.Zoo.Name = " " }},
		{"unknown policy", func(c *Config) { c.Enclosure.CapacityPolicy = "strict" }},
		{"zero capacity", func(c *Config) { c.Enclosure.DefaultCapacity = 0 }},
		{"unknown backend", func(c *Config) { c.Events.Backend = "kafka" }},
		{"empty topic prefix", func(c *Config) { c.Events.TopicPrefix = "" }},
		{"redis without url", func(c *Config) { c.Events.Backend = BackendRedis }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad encoding", func(c *Config) { c.Log.Encoding = "xml" }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"negative timeout", func(c *Config) { c.Server.IdleTimeout = -time.Second }},
		{"rate limit without rps", func(c *Config) { c.RateLimit.RPS = 0 }},
		{"zero heartbeat", func(c *Config) { c.Stream.HeartbeatInterval = 0 }},
		{"negative census", func(c *Config) { c.Stream.CensusInterval = -time.Second }},
	}

	require.NoError(t, validateConfig(valid()))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, validateConfig(c))
		})
	}
}

func TestAuthConfig_Validate(t *testing.T) {
	a := AuthConfig{JWTSecret: "0123456789abcdef", StaffKeyHash: "$2a$10$hash", TokenTTL: time.Hour}
	require.NoError(t, a.Validate())

	short := a
	short.JWTSecret = "short"
	assert.Error(t, short.Validate())

	noHash := a
	noHash.StaffKeyHash = ""
	assert.Error(t, noHash.Validate())

	noTTL := a
	noTTL.TokenTTL = 0
	assert.Error(t, noTTL.Validate())
}
