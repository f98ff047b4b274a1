// Package mongo provides a MongoDB client constructor with connection
// retries, environment-based configuration and a readiness healthcheck.
package mongo
