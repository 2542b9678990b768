// Package api provides the HTTP REST API and WebSocket server for Smart
// Farm Core.
//
// It exposes the device-facing endpoints (telemetry ingestion, command
// polling, status reports), the operator-facing endpoints (dashboard
// snapshot, commands, command history), and the WebSocket fan-out that
// pushes live updates to connected viewers.
//
// The server follows the same lifecycle pattern as other infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api
