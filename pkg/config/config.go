package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Zoo       ZooConfig       `mapstructure:"zoo"`
	Enclosure EnclosureConfig `mapstructure:"enclosure"`
	Events    EventsConfig    `mapstructure:"events"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Stream    StreamConfig    `mapstructure:"stream"`
}

// ZooConfig names the zoo the simulation builds
type ZooConfig struct {
	Name     string `mapstructure:"name"`
	Location string `mapstructure:"location"`
}

// EnclosureConfig holds enclosure defaults
type EnclosureConfig struct {
	CapacityPolicy  string `mapstructure:"capacity_policy"`
	DefaultCapacity int    `mapstructure:"default_capacity"`
}

// EventsConfig selects and tunes the event bus backend
type EventsConfig struct {
	Backend       string `mapstructure:"backend"` // memory or redis
	TopicPrefix   string `mapstructure:"topic_prefix"`
	ConsumerGroup string `mapstructure:"consumer_group"`
}

// RedisConfig holds Redis-related configuration
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Environment string `mapstructure:"environment"`
	Encoding    string `mapstructure:"encoding"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"` // 0 keeps event streams open
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	Seed         bool          `mapstructure:"seed"` // stock the zoo with the scripted day at startup
}

// AuthConfig holds staff token configuration
type AuthConfig struct {
	JWTSecret    string        `mapstructure:"jwt_secret"`
	Issuer       string        `mapstructure:"issuer"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
	StaffKeyHash string        `mapstructure:"staff_key_hash"` // bcrypt hash of the shared staff key
}

// RateLimitConfig holds per-client request limits
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

// StreamConfig tunes the server-sent event stream
type StreamConfig struct {
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval"`
	CensusInterval    time.Duration `mapstructure:"census_interval"` // 0 disables the census
}

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Load loads configuration from defaults, an optional config file and the environment
func Load() (*Config, error) {
	return LoadWith(viper.New())
}

// LoadWith loads configuration through the given viper instance
func LoadWith(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// SetConfigName would discard a file chosen with SetConfigFile
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/zoo")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("zoo.name", "Hadiqat El-Hayawan")
	v.SetDefault("zoo.location", "Gize, Egypt")

	v.SetDefault("enclosure.capacity_policy", "advisory")
	v.SetDefault("enclosure.default_capacity", 50)

	v.SetDefault("events.backend", BackendMemory)
	v.SetDefault("events.topic_prefix", "zoo-events")
	v.SetDefault("events.consumer_group", "zoo-audit")

	v.SetDefault("redis.url", "redis://localhost:6379/0")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.environment", "development")
	v.SetDefault("log.encoding", "console")

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "0s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.seed", true)

	v.SetDefault("auth.issuer", "zoo-server")
	v.SetDefault("auth.token_ttl", "12h")

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.rps", 10)
	v.SetDefault("ratelimit.burst", 50)

	v.SetDefault("stream.heartbeat_interval", "30s")
	v.SetDefault("stream.census_interval", "10s")
}

func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.Zoo.Name) == "" {
		return fmt.Errorf("zoo name cannot be empty")
	}

	if !contains([]string{"advisory", "enforced"}, cfg.Enclosure.CapacityPolicy) {
		return fmt.Errorf("invalid capacity policy: %s", cfg.Enclosure.CapacityPolicy)
	}
	if cfg.Enclosure.DefaultCapacity < 1 {
		return fmt.Errorf("default enclosure capacity must be at least 1")
	}

	if !contains([]string{BackendMemory, BackendRedis}, cfg.Events.Backend) {
		return fmt.Errorf("invalid events backend: %s", cfg.Events.Backend)
	}
	if cfg.Events.TopicPrefix == "" {
		return fmt.Errorf("events topic prefix cannot be empty")
	}
	if cfg.Events.UsesRedis() && cfg.Redis.URL == "" {
		return fmt.Errorf("redis url is required for the redis events backend")
	}

	if !contains([]string{"debug", "info", "warn", "error"}, cfg.Log.Level) {
		return fmt.Errorf("invalid log level: %s", cfg.Log.Level)
	}
	if !contains([]string{"json", "console"}, cfg.Log.Encoding) {
		return fmt.Errorf("invalid log encoding: %s", cfg.Log.Encoding)
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout < 0 || cfg.Server.WriteTimeout < 0 || cfg.Server.IdleTimeout < 0 {
		return fmt.Errorf("server timeouts cannot be negative")
	}

	if cfg.RateLimit.Enabled && (cfg.RateLimit.RPS <= 0 || cfg.RateLimit.Burst < 1) {
		return fmt.Errorf("rate limit needs positive rps and burst")
	}

	if cfg.Stream.HeartbeatInterval <= 0 {
		return fmt.Errorf("stream heartbeat interval must be positive")
	}
	if cfg.Stream.CensusInterval < 0 {
		return fmt.Errorf("stream census interval cannot be negative")
	}

	return nil
}

// Validate checks the settings the HTTP server needs to issue staff tokens.
// The simulation does not use them, so Load leaves them unchecked.
func (a *AuthConfig) Validate() error {
	if len(a.JWTSecret) < 16 {
		return fmt.Errorf("auth jwt secret must be at least 16 characters")
	}
	if a.StaffKeyHash == "" {
		return fmt.Errorf("auth staff key hash cannot be empty")
	}
	if a.TokenTTL <= 0 {
		return fmt.Errorf("auth token ttl must be positive")
	}
	return nil
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// UsesRedis reports whether events go through redis streams
func (e *EventsConfig) UsesRedis() bool {
	return strings.EqualFold(e.Backend, BackendRedis)
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
