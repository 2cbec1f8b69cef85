package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/infrastructure/backend"
)

const (
	// DefaultServer is the encoding backend address used when nothing is configured
	DefaultServer = backend.DefaultServer

	// EnvServer overrides the configured backend address
	EnvServer = "ELOADER_SERVER"
)

// Config stores CLI configuration
type Config struct {
	Server      string `json:"server"`       // Encoding backend address
	DownloadDir string `json:"download_dir"` // Where encoded archives are written
}

// GetConfigPath returns the configuration file path (~/.eloader/config.json)
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".eloader")
	configFile := filepath.Join(configDir, "config.json")

	return configFile, nil
}

// Load loads configuration from file. A missing file yields the defaults.
func Load() (*Config, error) {
	configFile, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	data, err := os.ReadFile(configFile)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if env := os.Getenv(EnvServer); env != "" {
		cfg.Server = env
	}
	cfg.applyDefaults()

	return cfg, nil
}

// Save saves configuration to file
func (c *Config) Save() error {
	configFile, err := GetConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configFile)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Server == "" {
		c.Server = DefaultServer
	}
	if c.DownloadDir == "" {
		c.DownloadDir = "."
	}
}
