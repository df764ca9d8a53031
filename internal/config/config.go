package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Model    ModelConfig    `yaml:"model"`
	Database DatabaseConfig `yaml:"database"`
	Hermes   HermesConfig   `yaml:"hermes"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port               int    `yaml:"port"`
	MetricsPort        int    `yaml:"metrics_port"`
	AdminToken         string `yaml:"admin_token"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
	// TrustClientID keys rate limiting on X-Client-ID. Enable only when a
	// gateway in front of the service sets that header.
	TrustClientID      bool   `yaml:"trust_client_id"`
}

// ModelConfig locates the classifier. Backend "local" scores in-process from
// ArtifactPath; "remote" posts vectors to RemoteURL.
type ModelConfig struct {
	ArtifactPath    string `yaml:"artifact_path"`
	ManifestPath    string `yaml:"manifest_path"`
	Backend         string `yaml:"backend"`
	RemoteURL       string `yaml:"remote_url"`
	RemoteToken     string `yaml:"remote_token"`
	RemoteModelID   string `yaml:"remote_model_id"`
	RemoteTimeoutMs int    `yaml:"remote_timeout_ms"`
}

// DatabaseConfig enables the assessment audit log when URL is set.
// Driver is "postgres" or "sqlite"; for sqlite, URL is a file path.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	URL    string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const (
	BackendLocal  = "local"
	BackendRemote = "remote"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func (c *Config) RemoteTimeout() time.Duration {
	return time.Duration(c.Model.RemoteTimeoutMs) * time.Millisecond
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:               8700,
			MetricsPort:        8701,
			RateLimitPerMinute: 120,
		},
		Model: ModelConfig{
			ArtifactPath:    "model.json",
			ManifestPath:    "feature_names.json",
			Backend:         BackendLocal,
			RemoteModelID:   "remote",
			RemoteTimeoutMs: 5000,
		},
		Database: DatabaseConfig{
			Driver: DriverPostgres,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CARDIORISK_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("CARDIORISK_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("CARDIORISK_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("CARDIORISK_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimitPerMinute = n
		}
	}
	if v := os.Getenv("CARDIORISK_TRUST_CLIENT_ID"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Server.TrustClientID = b
		}
	}
	if v := os.Getenv("CARDIORISK_MODEL_PATH"); v != "" {
		cfg.Model.ArtifactPath = v
	}
	if v := os.Getenv("CARDIORISK_MANIFEST_PATH"); v != "" {
		cfg.Model.ManifestPath = v
	}
	if v := os.Getenv("CARDIORISK_MODEL_BACKEND"); v != "" {
		cfg.Model.Backend = v
	}
	if v := os.Getenv("CARDIORISK_MODEL_URL"); v != "" {
		cfg.Model.RemoteURL = v
	}
	if v := os.Getenv("CARDIORISK_MODEL_TOKEN"); v != "" {
		cfg.Model.RemoteToken = v
	}
	if v := os.Getenv("CARDIORISK_DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("CARDIORISK_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("CARDIORISK_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("CARDIORISK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CARDIORISK_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
