package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vango-dev/vtree/pkg/middleware"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	// Address is the listen address.
	// Default: ":7331".
	Address string

	// MaxMessageSize bounds request bodies and incoming WebSocket messages.
	// Default: 1MB.
	MaxMessageSize int64

	// WriteTimeout is the maximum time to wait when sending a frame.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// ReadHeaderTimeout bounds reading request headers.
	// Default: 5 seconds.
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10 seconds.
	ShutdownTimeout time.Duration

	// ScanRatio is passed to every renderer. Zero keeps the default.
	ScanRatio float64

	// Registry resolves component names in tree documents.
	Registry vdom.Registry

	// CheckOrigin validates the Origin header on WebSocket upgrade.
	// Default: same origin only.
	CheckOrigin func(r *http.Request) bool

	// Metrics, when set, observes every pass and records session and
	// frame counts.
	Metrics *middleware.Metrics

	// Tracer, when set, wraps every pass in a span.
	Tracer *middleware.Tracer

	// MetricsHandler is mounted at /metrics when set.
	MetricsHandler http.Handler

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:           ":7331",
		MaxMessageSize:    1 << 20,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   10 * time.Second,
	}
}

// withDefaults returns a copy of c with unset fields filled in.
func (c *ServerConfig) withDefaults() *ServerConfig {
	defaults := DefaultServerConfig()
	if c == nil {
		return defaults
	}
	out := *c
	if out.Address == "" {
		out.Address = defaults.Address
	}
	if out.MaxMessageSize <= 0 {
		out.MaxMessageSize = defaults.MaxMessageSize
	}
	if out.WriteTimeout <= 0 {
		out.WriteTimeout = defaults.WriteTimeout
	}
	if out.ReadHeaderTimeout <= 0 {
		out.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if out.ShutdownTimeout <= 0 {
		out.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return &out
}

// rendererOptions builds the options shared by every renderer the server
// creates.
func (c *ServerConfig) rendererOptions(logger *slog.Logger) []reconcile.Option {
	opts := []reconcile.Option{reconcile.WithLogger(logger)}
	if c.ScanRatio > 0 {
		opts = append(opts, reconcile.WithScanRatio(c.ScanRatio))
	}
	if c.Metrics != nil {
		opts = append(opts, reconcile.WithObserver(c.Metrics))
	}
	if c.Tracer != nil {
		opts = append(opts, reconcile.WithObserver(c.Tracer))
	}
	return opts
}
