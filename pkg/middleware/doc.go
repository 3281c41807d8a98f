// Package middleware provides observers that export reconciliation
// telemetry.
//
// Both observers implement reconcile.Observer and are attached with
// reconcile.WithObserver. They can be combined; the renderer calls
// PassStart in order and PassEnd in reverse order.
//
// # Prometheus Metrics
//
//	metrics := middleware.Prometheus(
//	    middleware.WithNamespace("myapp"),
//	    middleware.WithRegistry(reg),
//	)
//	r := reconcile.New(doc, reconcile.WithObserver(metrics))
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// Metrics collected (with the default namespace):
//   - vtree_passes_total: passes by kind and status
//   - vtree_pass_duration_seconds: pass duration by kind
//   - vtree_mutations_total: host mutations by operation
//   - vtree_matches_total: new descriptors by match kind
//   - vtree_unmounts_total: descriptors torn down
//   - vtree_mounts_total: DidMount callbacks run
//   - vtree_active_sessions: live sessions (recorded by the server)
//   - vtree_frames_total: protocol frames by direction and type
//   - vtree_websocket_errors_total: WebSocket errors by type
//
// # OpenTelemetry
//
// The OpenTelemetry observer starts one span per pass, as a child of any
// span in the context given to Render.
//
//	r := reconcile.New(doc, reconcile.WithObserver(
//	    middleware.OpenTelemetry(middleware.WithTracerName("my-app")),
//	))
//
// The tracer uses the global OpenTelemetry tracer provider unless
// WithTracerProvider is given.
package middleware
