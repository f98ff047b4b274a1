// Package ratelimit provides a fixed-window rate limiter with an in-memory
// store and HTTP middleware. The middleware fails open: when the limiter
// itself errors, requests pass through rather than being rejected.
package ratelimit
