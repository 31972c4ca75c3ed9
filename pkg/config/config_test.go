package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Endpoints.BaseURL != "https://plus.character.ai" {
		t.Errorf("default endpoints.base_url = %q, want production chat host", cfg.Endpoints.BaseURL)
	}
	if cfg.Endpoints.NeoURL != "https://neo.character.ai" {
		t.Errorf("default endpoints.neo_url = %q, want production multimodal host", cfg.Endpoints.NeoURL)
	}
	if cfg.HTTP.Timeout != 30*time.Second {
		t.Errorf("default http.timeout = %v, want 30s", cfg.HTTP.Timeout)
	}
	if cfg.MCP.Port != 8080 {
		t.Errorf("default mcp.port = %d, want 8080", cfg.MCP.Port)
	}
	if !cfg.Metrics.Enabled {
		t.Error("default metrics.enabled = false, want true")
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("default metrics.path = %q, want \"/metrics\"", cfg.Metrics.Path)
	}
	if cfg.Session.Token != "" {
		t.Errorf("default session.token = %q, want empty", cfg.Session.Token)
	}
}

func TestLoadFromYAML(t *testing.T) {
	yamlContent := `
session:
  token: tok-from-yaml
  web_next_auth: cookie-value
endpoints:
  base_url: http://plus.local:8000
  neo_url: http://neo.local:8000
http:
  timeout: 45s
mcp:
  port: 9090
metrics:
  enabled: false
  path: /internal/metrics
debug:
  categories: requester,account
  level: DEBUG
`
	tmpFile := writeTemp(t, "config-*.yaml", yamlContent)

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Session.Token != "tok-from-yaml" {
		t.Errorf("session.token = %q, want \"tok-from-yaml\"", cfg.Session.Token)
	}
	if cfg.Session.WebNextAuth != "cookie-value" {
		t.Errorf("session.web_next_auth = %q, want \"cookie-value\"", cfg.Session.WebNextAuth)
	}
	if cfg.Endpoints.BaseURL != "http://plus.local:8000" {
		t.Errorf("endpoints.base_url = %q, want \"http://plus.local:8000\"", cfg.Endpoints.BaseURL)
	}
	if cfg.Endpoints.NeoURL != "http://neo.local:8000" {
		t.Errorf("endpoints.neo_url = %q, want \"http://neo.local:8000\"", cfg.Endpoints.NeoURL)
	}
	if cfg.HTTP.Timeout != 45*time.Second {
		t.Errorf("http.timeout = %v, want 45s", cfg.HTTP.Timeout)
	}
	if cfg.MCP.Port != 9090 {
		t.Errorf("mcp.port = %d, want 9090", cfg.MCP.Port)
	}
	if cfg.Metrics.Enabled {
		t.Error("metrics.enabled = true, want false")
	}
	if cfg.Metrics.Path != "/internal/metrics" {
		t.Errorf("metrics.path = %q, want \"/internal/metrics\"", cfg.Metrics.Path)
	}
	if cfg.Debug.Categories != "requester,account" {
		t.Errorf("debug.categories = %q, want \"requester,account\"", cfg.Debug.Categories)
	}
	if cfg.Debug.Level != "DEBUG" {
		t.Errorf("debug.level = %q, want \"DEBUG\"", cfg.Debug.Level)
	}
}

func TestEnvOverride(t *testing.T) {
	yamlContent := `
session:
  token: tok-from-yaml
endpoints:
  base_url: http://from-yaml:8000
mcp:
  port: 9090
`
	tmpFile := writeTemp(t, "config-*.yaml", yamlContent)

	t.Setenv("CHARAI_TOKEN", "tok-from-env")
	t.Setenv("CHARAI_BASE_URL", "http://from-env:8000")
	t.Setenv("CHARAI_TIMEOUT", "90s")
	t.Setenv("CHARAI_MCP_PORT", "7070")

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Session.Token != "tok-from-env" {
		t.Errorf("session.token = %q, want env override", cfg.Session.Token)
	}
	if cfg.Endpoints.BaseURL != "http://from-env:8000" {
		t.Errorf("endpoints.base_url = %q, want env override", cfg.Endpoints.BaseURL)
	}
	if cfg.HTTP.Timeout != 90*time.Second {
		t.Errorf("http.timeout = %v, want env override 90s", cfg.HTTP.Timeout)
	}
	if cfg.MCP.Port != 7070 {
		t.Errorf("mcp.port = %d, want env override 7070", cfg.MCP.Port)
	}
}

func TestEnvOnly(t *testing.T) {
	// No config file, only env vars.
	t.Setenv("CHARAI_CONFIG", "")
	t.Setenv("CHARAI_TOKEN", "tok-env-only")
	t.Setenv("CHARAI_WEB_NEXT_AUTH", "cookie-env")
	t.Setenv("CHARAI_NEO_URL", "http://neo-env:8000")
	t.Setenv("CHARAI_METRICS", "false")
	t.Setenv("CHARAI_DEBUG", "account")
	t.Setenv("CHARAI_LOG_LEVEL", "TRACE")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Session.Token != "tok-env-only" {
		t.Errorf("session.token = %q, want \"tok-env-only\"", cfg.Session.Token)
	}
	if cfg.Session.WebNextAuth != "cookie-env" {
		t.Errorf("session.web_next_auth = %q, want \"cookie-env\"", cfg.Session.WebNextAuth)
	}
	if cfg.Endpoints.BaseURL != "https://plus.character.ai" {
		t.Errorf("endpoints.base_url = %q, want default kept", cfg.Endpoints.BaseURL)
	}
	if cfg.Endpoints.NeoURL != "http://neo-env:8000" {
		t.Errorf("endpoints.neo_url = %q, want env value", cfg.Endpoints.NeoURL)
	}
	if cfg.Metrics.Enabled {
		t.Error("metrics.enabled = true, want env override false")
	}
	if cfg.Debug.Categories != "account" {
		t.Errorf("debug.categories = %q, want \"account\"", cfg.Debug.Categories)
	}
	if cfg.Debug.Level != "TRACE" {
		t.Errorf("debug.level = %q, want \"TRACE\"", cfg.Debug.Level)
	}
}

func TestFileReferenceToken(t *testing.T) {
	secretFile := writeTemp(t, "token-*.txt", "  tok-from-file-123  \n")

	yamlContent := `
session:
  token_file: ` + secretFile + `
`
	tmpFile := writeTemp(t, "config-*.yaml", yamlContent)

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Session.Token != "tok-from-file-123" {
		t.Errorf("session.token = %q, want \"tok-from-file-123\" (from file, trimmed)", cfg.Session.Token)
	}
}

func TestFileReferenceDoesNotOverrideExplicitValue(t *testing.T) {
	secretFile := writeTemp(t, "token-*.txt", "tok-from-file")

	yamlContent := `
session:
  token: tok-explicit
  token_file: ` + secretFile + `
`
	tmpFile := writeTemp(t, "config-*.yaml", yamlContent)

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// When both token and token_file are set, the explicit value takes precedence.
	if cfg.Session.Token != "tok-explicit" {
		t.Errorf("session.token = %q, want \"tok-explicit\" (explicit value should win over file)", cfg.Session.Token)
	}
}

func TestFileReferenceMissingFile(t *testing.T) {
	yamlContent := `
session:
  token_file: /nonexistent/token.txt
`
	tmpFile := writeTemp(t, "config-*.yaml", yamlContent)

	_, err := Load(tmpFile)
	if err == nil {
		t.Fatal("Load() expected error for missing token_file, got nil")
	}
	if !strings.Contains(err.Error(), "session.token_file") {
		t.Errorf("error = %q, want it to name session.token_file", err.Error())
	}
}

func TestFileDiscovery(t *testing.T) {
	// Test 1: Explicit path.
	tmpFile := writeTemp(t, "config-*.yaml", `
session:
  token: tok-explicit-file
`)

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load(explicit) error: %v", err)
	}
	if cfg.Session.Token != "tok-explicit-file" {
		t.Errorf("explicit path: session.token = %q, want explicit file value", cfg.Session.Token)
	}

	// Test 2: CHARAI_CONFIG env var.
	envFile := writeTemp(t, "envconfig-*.yaml", `
session:
  token: tok-env-config
`)
	t.Setenv("CHARAI_CONFIG", envFile)

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load(CHARAI_CONFIG) error: %v", err)
	}
	if cfg.Session.Token != "tok-env-config" {
		t.Errorf("CHARAI_CONFIG: session.token = %q, want env config value", cfg.Session.Token)
	}

	// Test 3: No file, no env config, uses defaults + env overrides.
	t.Setenv("CHARAI_CONFIG", "")
	t.Setenv("CHARAI_TOKEN", "tok-defaults-only")

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load(no file) error: %v", err)
	}
	if cfg.Session.Token != "tok-defaults-only" {
		t.Errorf("no file: session.token = %q, want env override", cfg.Session.Token)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:    "missing token",
			modify:  func(c *Config) {},
			wantErr: "session.token",
		},
		{
			name: "empty base_url",
			modify: func(c *Config) {
				c.Session.Token = "tok"
				c.Endpoints.BaseURL = ""
			},
			wantErr: "endpoints.base_url must not be empty",
		},
		{
			name: "base_url without scheme",
			modify: func(c *Config) {
				c.Session.Token = "tok"
				c.Endpoints.BaseURL = "plus.character.ai"
			},
			wantErr: "endpoints.base_url must start with",
		},
		{
			name: "zero timeout",
			modify: func(c *Config) {
				c.Session.Token = "tok"
				c.HTTP.Timeout = 0
			},
			wantErr: "http.timeout must be > 0",
		},
		{
			name: "invalid mcp port",
			modify: func(c *Config) {
				c.Session.Token = "tok"
				c.MCP.Port = 70000
			},
			wantErr: "mcp.port must be in",
		},
		{
			name: "relative metrics path",
			modify: func(c *Config) {
				c.Session.Token = "tok"
				c.Metrics.Path = "metrics"
			},
			wantErr: "metrics.path must start with",
		},
		{
			name: "relative metrics path tolerated when disabled",
			modify: func(c *Config) {
				c.Session.Token = "tok"
				c.Metrics.Enabled = false
				c.Metrics.Path = "metrics"
			},
			wantErr: "",
		},
		{
			name: "valid config",
			modify: func(c *Config) {
				c.Session.Token = "tok"
			},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(&cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidationJoinsAllFailures(t *testing.T) {
	cfg := Defaults()
	cfg.Endpoints.NeoURL = ""
	cfg.MCP.Port = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error, got nil")
	}
	for _, want := range []string{"session.token", "endpoints.neo_url", "mcp.port"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error = %q, want it to mention %s", err.Error(), want)
		}
	}
}

func TestYAMLDefaultsMerge(t *testing.T) {
	// A minimal YAML that only sets the token.
	// All other fields should retain defaults.
	yamlContent := `
session:
  token: tok-minimal
`
	tmpFile := writeTemp(t, "config-*.yaml", yamlContent)

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Endpoints.BaseURL != "https://plus.character.ai" {
		t.Errorf("endpoints.base_url = %q, want default kept", cfg.Endpoints.BaseURL)
	}
	if cfg.HTTP.Timeout != 30*time.Second {
		t.Errorf("http.timeout = %v, want default 30s", cfg.HTTP.Timeout)
	}
	if cfg.MCP.Port != 8080 {
		t.Errorf("mcp.port = %d, want default 8080", cfg.MCP.Port)
	}
	if !cfg.Metrics.Enabled {
		t.Error("metrics.enabled = false, want default true")
	}
}

// writeTemp creates a temporary file with the given content and returns its path.
// The file is automatically cleaned up when the test finishes.
func writeTemp(t *testing.T, pattern, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), pattern)
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		t.Fatalf("writing temp file: %v", err)
	}
	f.Close()

	return f.Name()
}
