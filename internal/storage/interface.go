package storage

// Store defines the contract for the feedback record store.
type Store interface {
	// EnsureReady performs one-time readiness work (container creation).
	// It is idempotent and safe to call on every request path.
	EnsureReady() error
	Store(filename string, data []byte) error
	Retrieve(filename string) ([]byte, error)
	List(prefix string) ([]string, error)
	Delete(filename string) error
}
