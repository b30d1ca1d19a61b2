// Package server builds the HTTP surface of the catalog mirror.
//
// New returns a Fiber app with the shared middleware chain already installed:
// ray id assignment, request logging and API key auth. /health and /metrics are
// mounted directly and stay reachable without a key; feature routes such as
// /sync/status or /history are added by the loader.
//
// # Configuration
//
// The Config struct defines whether the surface is enabled, the HTTP port and the API key.
package server
