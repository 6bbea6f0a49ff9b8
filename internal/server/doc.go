// Package server wires configuration, middleware, the service registry
// and the directory engine into a runnable HTTP server.
package server
