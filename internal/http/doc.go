// Package http contains the HTTP handlers for service discovery and
// tool execution.
package http
