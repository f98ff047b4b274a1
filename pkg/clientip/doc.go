// Package clientip resolves the originating client IP address of an HTTP
// request, preferring the X-Forwarded-For header set by reverse proxies and
// falling back to the transport-level peer address. Addresses are validated
// and normalized; spoofed garbage in headers is skipped rather than trusted.
package clientip
