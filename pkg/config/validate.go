package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	// session.token is required (possibly resolved from token_file).
	if c.Session.Token == "" {
		errs = append(errs, fmt.Errorf("session.token or session.token_file is required"))
	}

	// endpoints must not be blanked out.
	if c.Endpoints.BaseURL == "" {
		errs = append(errs, fmt.Errorf("endpoints.base_url must not be empty"))
	} else if !strings.HasPrefix(c.Endpoints.BaseURL, "http://") && !strings.HasPrefix(c.Endpoints.BaseURL, "https://") {
		errs = append(errs, fmt.Errorf("endpoints.base_url must start with http:// or https://, got %q", c.Endpoints.BaseURL))
	}
	if c.Endpoints.NeoURL == "" {
		errs = append(errs, fmt.Errorf("endpoints.neo_url must not be empty"))
	} else if !strings.HasPrefix(c.Endpoints.NeoURL, "http://") && !strings.HasPrefix(c.Endpoints.NeoURL, "https://") {
		errs = append(errs, fmt.Errorf("endpoints.neo_url must start with http:// or https://, got %q", c.Endpoints.NeoURL))
	}

	// http.timeout must be positive.
	if c.HTTP.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("http.timeout must be > 0, got %v", c.HTTP.Timeout))
	}

	// mcp.port must be a valid TCP port.
	if c.MCP.Port <= 0 || c.MCP.Port > 65535 {
		errs = append(errs, fmt.Errorf("mcp.port must be in (0, 65535], got %d", c.MCP.Port))
	}

	// metrics.path must be rooted when metrics are enabled.
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("metrics.path must start with \"/\", got %q", c.Metrics.Path))
	}

	return errors.Join(errs...)
}
