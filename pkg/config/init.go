package config

import (
	"fmt"

	"github.com/danghamo/zoo/pkg/logger"
)

// Initialize loads configuration and sets up the global logger
func Initialize() (*Config, *logger.Logger, error) {
	cfg, err := Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.LoggerConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logger.SetGlobalLogger(appLogger)

	appLogger.WithFields(map[string]interface{}{
		"zoo":             cfg.Zoo.Name,
		"capacity_policy": cfg.Enclosure.CapacityPolicy,
		"events_backend":  cfg.Events.Backend,
		"log_level":       cfg.Log.Level,
		"log_encoding":    cfg.Log.Encoding,
	}).Info("Configuration and logger initialized successfully")

	return cfg, appLogger, nil
}

// MustInitialize is like Initialize but panics on error
func MustInitialize() (*Config, *logger.Logger) {
	cfg, appLogger, err := Initialize()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize application: %v", err))
	}
	return cfg, appLogger
}

// LoggerConfig converts the log section into a logger.Config
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:       logger.ParseLevel(c.Log.Level),
		Environment: c.Log.Environment,
		Encoding:    c.Log.Encoding,
	}
}
