package mongo

import "errors"

var (
	// ErrFailedToConnectToMongo is returned when no connection could be
	// established within the configured retry budget. The last underlying
	// error is joined onto it.
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongodb")
	// ErrHealthcheckFailed wraps ping failures surfaced by readiness probes.
	ErrHealthcheckFailed = errors.New("mongodb healthcheck failed")
)
