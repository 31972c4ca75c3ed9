// Package config provides unified configuration for the charai binaries.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (CHARAI_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import (
	"time"

	"github.com/charai-dev/charai/pkg/account"
	"github.com/charai-dev/charai/pkg/requester"
)

// Config holds all configuration for the charai binaries.
type Config struct {
	Session   SessionConfig   `yaml:"session"`
	Endpoints EndpointsConfig `yaml:"endpoints"`
	HTTP      HTTPConfig      `yaml:"http"`
	MCP       MCPConfig       `yaml:"mcp"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Debug     DebugConfig     `yaml:"debug"`
}

// SessionConfig holds the platform credentials.
type SessionConfig struct {
	Token       string `yaml:"token"`        // required
	TokenFile   string `yaml:"token_file"`   // _file variant for token
	WebNextAuth string `yaml:"web_next_auth"` // optional, web-only endpoints
}

// EndpointsConfig holds the platform host URLs.
type EndpointsConfig struct {
	BaseURL string `yaml:"base_url"` // default: production chat host
	NeoURL  string `yaml:"neo_url"`  // default: production multimodal host
}

// HTTPConfig holds transport settings.
type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout"` // default: 30s
}

// MCPConfig holds the MCP server settings.
type MCPConfig struct {
	Port int `yaml:"port"` // default: 8080
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// DebugConfig holds debug logging settings. Environment variables
// (CHARAI_DEBUG, CHARAI_LOG_LEVEL) take precedence over these.
type DebugConfig struct {
	Categories string `yaml:"categories"` // comma-separated, e.g. "requester,account"
	Level      string `yaml:"level"`      // TRACE, DEBUG, INFO, WARN, ERROR
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Endpoints: EndpointsConfig{
			BaseURL: account.DefaultBaseURL,
			NeoURL:  account.DefaultNeoURL,
		},
		HTTP: HTTPConfig{
			Timeout: requester.DefaultTimeout,
		},
		MCP: MCPConfig{
			Port: 8080,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}
