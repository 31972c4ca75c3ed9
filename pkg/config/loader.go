package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/charai-dev/charai/pkg/debug"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, CHARAI_CONFIG env, ./charai.yaml, /etc/charai/config.yaml)
//  3. Environment variable overrides
//  4. File reference resolution (_file suffix)
//  5. Validation
func Load(configPath string) (*Config, error) {
	// Start with defaults.
	cfg := Defaults()

	// Discover and load YAML config file.
	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
		debug.Log("config", "config file loaded", "path", filePath)
	}

	// Apply environment variable overrides.
	applyEnvOverrides(&cfg)

	// Resolve _file references.
	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	// Validate.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. CHARAI_CONFIG environment variable
// 3. ./charai.yaml in the current directory
// 4. /etc/charai/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	// Explicit path takes priority.
	if configPath != "" {
		return configPath
	}

	// Check CHARAI_CONFIG env var.
	if envPath := os.Getenv("CHARAI_CONFIG"); envPath != "" {
		return envPath
	}

	// Check common locations.
	candidates := []string{
		"charai.yaml",
		"/etc/charai/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps CHARAI_* environment variables to config fields.
// Env vars win over both defaults and the YAML file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CHARAI_TOKEN"); v != "" {
		cfg.Session.Token = v
	}
	if v := os.Getenv("CHARAI_TOKEN_FILE"); v != "" {
		cfg.Session.TokenFile = v
	}
	if v := os.Getenv("CHARAI_WEB_NEXT_AUTH"); v != "" {
		cfg.Session.WebNextAuth = v
	}
	if v := os.Getenv("CHARAI_BASE_URL"); v != "" {
		cfg.Endpoints.BaseURL = v
	}
	if v := os.Getenv("CHARAI_NEO_URL"); v != "" {
		cfg.Endpoints.NeoURL = v
	}
	if v := os.Getenv("CHARAI_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Timeout = d
		}
	}
	if v := os.Getenv("CHARAI_MCP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.MCP.Port = port
		}
	}
	if v := os.Getenv("CHARAI_METRICS"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
	if v := os.Getenv("CHARAI_DEBUG"); v != "" {
		cfg.Debug.Categories = v
	}
	if v := os.Getenv("CHARAI_LOG_LEVEL"); v != "" {
		cfg.Debug.Level = v
	}
}

// resolveFileReferences reads _file fields and populates the corresponding
// value fields. An explicitly set value field always wins over its _file
// counterpart.
func resolveFileReferences(cfg *Config) error {
	// session.token_file -> session.token
	if cfg.Session.TokenFile != "" && cfg.Session.Token == "" {
		val, err := readSecretFile(cfg.Session.TokenFile)
		if err != nil {
			return fmt.Errorf("session.token_file: %w", err)
		}
		cfg.Session.Token = val
	}

	return nil
}

// readSecretFile reads a file and returns its content with surrounding whitespace trimmed.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
