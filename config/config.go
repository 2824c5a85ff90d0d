package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseDriver  string        `envconfig:"DATABASE_DRIVER"  default:"postgres"`
	DatabaseURL     string        `envconfig:"DATABASE_URL"     required:"true"`
	HTTPPort        string        `envconfig:"HTTP_PORT"        default:":8081"`
	GrpcPort        string        `envconfig:"GRPC_PORT"        default:":50051"` // empty disables the gRPC health server
	LogLevel        string        `envconfig:"LOG_LEVEL"        default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT"       default:"json"`
	DBPingTimeout   time.Duration `envconfig:"DB_PING_TIMEOUT"  default:"5s"`
	HealthInterval  time.Duration `envconfig:"HEALTH_INTERVAL"  default:"10s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	SelfCheck       bool          `envconfig:"SELF_CHECK"       default:"false"` // list products over HTTP once listening
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig(logger *logrus.Logger, envFiles ...string) (*Config, error) {
	err := godotenv.Load(envFiles...)
	if err != nil && !os.IsNotExist(err) {
		logger.Warnf("Error loading .env file (but continuing): %v", err)
	} else if err == nil {
		logger.Info("Loaded configuration from .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration from environment variables: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger.Infof("Configuration loaded: Driver=%s, HTTP Port=%s, GRPC Port=%s, LogLevel=%s",
		cfg.DatabaseDriver, cfg.HTTPPort, cfg.GrpcPort, cfg.LogLevel)
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case "postgres", "sqlite3":
	default:
		return fmt.Errorf("configuration error: DATABASE_DRIVER must be postgres or sqlite3, got %q", c.DatabaseDriver)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("configuration error: LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	if c.HTTPPort == "" {
		return fmt.Errorf("configuration error: HTTP_PORT is empty")
	}
	if c.HealthInterval <= 0 {
		return fmt.Errorf("configuration error: HEALTH_INTERVAL must be positive")
	}
	return nil
}
