// Package server hosts the REST surface and mounts the WebSocket
// gateway on the same port. Gin serves the routed API behind an h2c
// wrapper; additional plain http.Handler mounts share the root mux.
package server
