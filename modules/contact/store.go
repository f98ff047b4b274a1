package contact

import "context"

// Store is the capability the intake path needs from persistence: a single
// append that assigns and returns the new record's identifier. The store
// exclusively owns record identity.
type Store interface {
	Append(ctx context.Context, rec Record) (id string, err error)
}
