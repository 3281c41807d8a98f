// Package server is the vtree playground: an HTTP API that diffs tree
// documents and a WebSocket live session that streams host mutations.
//
// # Routes
//
//   - POST /api/diff: body {"old": tree, "new": tree, "markup": html}.
//     Renders old (or hydrates markup), then new, and responds with the
//     mutations of the second pass, the resulting HTML and pass stats.
//   - GET /ws: live session. The server sends a Hello frame, then answers
//     every Tree frame (or text message holding a tree document) with one
//     Mutations frame, followed by an Error frame if the pass failed.
//   - GET /metrics: Prometheus metrics, when a handler is configured.
//   - GET /healthz: liveness probe.
//
// # Usage
//
//	srv := server.New(&server.ServerConfig{
//	    Address: ":7331",
//	    Metrics: middleware.Prometheus(middleware.WithRegistry(reg)),
//	    MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
//	})
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// The server renders into a fresh document per session whose first node is
// the container. A client that creates its own root element first and then
// replays Mutations frames with protocol.Apply keeps an identical mirror.
package server
