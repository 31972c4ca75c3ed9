// Command mcp-server exposes the account client as an MCP server over
// streamable HTTP. Tools cover the profile, personas, characters,
// voices and per-character overrides; point an MCP client at /mcp.
//
// Configuration comes from a YAML file plus environment overrides:
//
//	CHARAI_CONFIG    - Config file path (default: charai.yaml, then /etc/charai/config.yaml)
//	CHARAI_TOKEN     - Session token (required unless set in the file)
//	CHARAI_BASE_URL  - Chat host override
//	CHARAI_NEO_URL   - Multimodal host override
//	CHARAI_MCP_PORT  - Listen port (default: 8080)
//	CHARAI_METRICS   - Enable the Prometheus endpoint (default: true)
//	CHARAI_DEBUG     - Debug log categories, e.g. "requester,account" or "all"
//	CHARAI_LOG_LEVEL - trace, debug, info, warn or error
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/charai-dev/charai/pkg/account"
	"github.com/charai-dev/charai/pkg/config"
	"github.com/charai-dev/charai/pkg/debug"
	"github.com/charai-dev/charai/pkg/mcpserver"
	"github.com/charai-dev/charai/pkg/observability"
	"github.com/charai-dev/charai/pkg/requester"
	"github.com/charai-dev/charai/pkg/session"
)

func main() {
	if err := run(); err != nil {
		slog.Error("mcp server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	debug.Init(cfg.Debug.Categories, cfg.Debug.Level)

	// Build the session and the platform client.
	var sessOpts []session.Option
	if cfg.Session.WebNextAuth != "" {
		sessOpts = append(sessOpts, session.WithWebNextAuth(cfg.Session.WebNextAuth))
	}
	sess := session.New(cfg.Session.Token, sessOpts...)
	if sess.Expired() {
		slog.Warn("session token is past its expiry; requests will likely be rejected")
	}

	client := account.New(sess, requester.New(requester.WithTimeout(cfg.HTTP.Timeout)),
		account.WithBaseURL(cfg.Endpoints.BaseURL),
		account.WithNeoURL(cfg.Endpoints.NeoURL),
	)

	server := mcpserver.NewServer(client)

	// Build HTTP mux with the MCP endpoint, metrics and health.
	mux := http.NewServeMux()
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
	mux.Handle("/mcp", observability.MetricsMiddleware(mcpHandler))
	if cfg.Metrics.Enabled {
		mux.Handle("GET "+cfg.Metrics.Path, promhttp.Handler())
	}
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.MCP.Port),
		Handler: mux,
	}

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("mcp server starting",
			"port", cfg.MCP.Port,
			"base_url", cfg.Endpoints.BaseURL,
			"neo_url", cfg.Endpoints.NeoURL,
			"metrics", cfg.Metrics.Enabled)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
