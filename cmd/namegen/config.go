package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/CTAG07/namegen/pkg/templating"
	"github.com/caarlos0/env/v11"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// envPrefix is prepended to every environment override, e.g. NAMEGEN_API_ADDR
// or NAMEGEN_TEMPLATE_SEPARATOR.
const envPrefix = "NAMEGEN_"

// ServerConfig holds the settings shared by every command.
type ServerConfig struct {
	ApiAddr      string `json:"api_addr" yaml:"api_addr" env:"API_ADDR"`
	LogLevel     string `json:"log_level" yaml:"log_level" env:"LOG_LEVEL"`
	DatabasePath string `json:"database_path" yaml:"database_path" env:"DATABASE_PATH"`
	TemplateDir  string `json:"template_dir" yaml:"template_dir" env:"TEMPLATE_DIR"`

	// MaxCount caps the number of names a single API request may ask for.
	MaxCount int `json:"max_count" yaml:"max_count" env:"MAX_COUNT"`

	// MaxBodyBytes caps the size of uploaded word lists and model files.
	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes" env:"MAX_BODY_BYTES"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	Server    *ServerConfig              `json:"server_config" yaml:"server_config"`
	Templates *templating.TemplateConfig `json:"template_config" yaml:"template_config"`
}

// DefaultServerConfig creates a server configuration with default values.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ApiAddr:      ":7290",
		LogLevel:     "info",
		DatabasePath: "./data/namegen.db",
		TemplateDir:  "./data/templates/",
		MaxCount:     1000,
		MaxBodyBytes: 32 << 20,
	}
}

// DefaultConfig returns a Config with every section set to its defaults.
func DefaultConfig() *Config {
	return &Config{
		Server:    DefaultServerConfig(),
		Templates: templating.DefaultConfig(),
	}
}

// isYAML reports whether path names a YAML file. Anything else is JSON.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func marshalConfig(path string, config *Config) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(config)
	}
	return json.MarshalIndent(config, "", "  ")
}

func unmarshalConfig(path string, data []byte, config *Config) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, config)
	}
	return json.Unmarshal(data, config)
}

// LoadConfig reads the configuration from a JSON or YAML file at the given
// path, chosen by extension. If the file doesn't exist, it creates one with
// default values. NAMEGEN_* environment variables are applied last.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		var data []byte
		data, err = marshalConfig(path, config)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal default config: %w", err)
		}
		if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
			// The defaults are still usable without the file.
			fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err = unmarshalConfig(path, file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// A file may leave out whole sections.
	if config.Server == nil {
		config.Server = DefaultServerConfig()
	}
	if config.Templates == nil {
		config.Templates = templating.DefaultConfig()
	}

	if err = env.ParseWithOptions(config.Server, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	if err = env.ParseWithOptions(config.Templates, env.Options{Prefix: envPrefix + "TEMPLATE_"}); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return config, nil
}
