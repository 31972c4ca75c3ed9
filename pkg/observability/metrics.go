// Package observability provides Prometheus metrics for outbound platform
// requests and HTTP middleware for the MCP server binary.
package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// APIBuckets defines histogram buckets suited for web API round trips,
// ranging from 50ms to 30s.
var APIBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

var (
	// ClientRequestsTotal counts outbound platform requests by method, host,
	// and status class.
	ClientRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "charai_http_requests_total",
			Help: "Outbound platform requests",
		},
		[]string{"method", "host", "status"},
	)

	// ClientRequestDuration records outbound request duration in seconds by
	// method and host.
	ClientRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "charai_http_request_duration_seconds",
			Help:    "Outbound request duration",
			Buckets: APIBuckets,
		},
		[]string{"method", "host"},
	)

	// ClientRequestsInflight tracks the number of outbound requests currently
	// in flight.
	ClientRequestsInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "charai_http_requests_inflight",
			Help: "Outbound requests in flight",
		},
	)

	// OperationsTotal counts account facade operations by name and outcome.
	// The outcome label carries "ok" or the error kind.
	OperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "charai_operations_total",
			Help: "Account operations",
		},
		[]string{"operation", "outcome"},
	)

	// MCPRequestsTotal counts requests served by the MCP endpoint by method
	// and status class.
	MCPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "charai_mcp_requests_total",
			Help: "MCP endpoint requests",
		},
		[]string{"method", "status"},
	)

	// MCPRequestDuration records MCP endpoint request duration in seconds.
	MCPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "charai_mcp_request_duration_seconds",
			Help:    "MCP endpoint request duration",
			Buckets: APIBuckets,
		},
		[]string{"method"},
	)

	// MCPStreamsActive tracks the number of open MCP event streams.
	MCPStreamsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "charai_mcp_streams_active",
			Help: "Open MCP event streams",
		},
	)
)

func init() {
	prometheus.MustRegister(
		ClientRequestsTotal,
		ClientRequestDuration,
		ClientRequestsInflight,
		OperationsTotal,
		MCPRequestsTotal,
		MCPRequestDuration,
		MCPStreamsActive,
	)
}

// StatusClass renders an HTTP status code as a class label like "2xx".
func StatusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}
