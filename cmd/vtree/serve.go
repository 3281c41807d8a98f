package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/pkg/middleware"
	"github.com/vango-dev/vtree/pkg/server"
)

func serveCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the playground server",
		Long: `Run the playground server.

Routes:
  POST /api/diff   diff two trees, or hydrate markup
  GET  /ws         live session streaming binary mutation frames
  GET  /metrics    Prometheus metrics (unless disabled in config)
  GET  /healthz    liveness probe

Examples:
  vtree serve
  vtree serve --addr 127.0.0.1:8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			cfg := &server.ServerConfig{
				Address:        addr,
				MaxMessageSize: a.cfg.Server.MaxMessageSize,
				WriteTimeout:   a.cfg.WriteTimeout(),
				ScanRatio:      a.cfg.ScanRatio,
				Tracer:         middleware.OpenTelemetry(middleware.WithTracerName(a.cfg.Tracing.TracerName)),
				Logger:         a.logger,
			}
			if a.cfg.MetricsEnabled() {
				reg := prometheus.NewRegistry()
				reg.MustRegister(
					collectors.NewGoCollector(),
					collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
				)
				cfg.Metrics = middleware.Prometheus(
					middleware.WithRegistry(reg),
					middleware.WithNamespace(a.cfg.Metrics.Namespace),
				)
				cfg.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			info("listening on %s", addr)
			if !a.cfg.MetricsEnabled() {
				warn("metrics disabled")
			}
			return server.New(cfg).Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")

	return cmd
}
