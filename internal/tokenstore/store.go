// Package tokenstore persists the single bearer token that marks a
// tenant as previously logged in.
package tokenstore

// Store is the durable key-value slot holding the bearer token.
//
// Get reports ok=false when no token is stored; that is not an error.
// Remove on an empty store is a no-op.
type Store interface {
	Get() (token string, ok bool, err error)
	Set(token string) error
	Remove() error
}
