// Package storage provides the persistent local key-value store backing the
// token cache. It plays the role the browser's localStorage plays for the
// storefront: a small, device-scoped string store.
package storage

// Store is a minimal key-value abstraction.
type Store interface {
	// Get returns the value for key, reporting whether it exists.
	Get(key string) ([]byte, bool, error)
	// Put stores value under key, overwriting any previous value.
	Put(key string, value []byte) error
	// Delete removes key; deleting an absent key is not an error.
	Delete(key string) error
	// Close releases underlying resources.
	Close() error
}
