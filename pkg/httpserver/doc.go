// Package httpserver wraps net/http with graceful shutdown, env-based
// configuration and probe handlers for container orchestration.
package httpserver
