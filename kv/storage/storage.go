package storage

// Storage represents the committed state of the store: the key/value mapping visible outside any
// transaction. It is mutated only by applying a batch of modifications, which is how a committing
// transaction lands all of its writes at once.
type Storage interface {
	Start() error
	Stop() error
	Write(batch []Modify) error
	Reader() (StorageReader, error)
}

// StorageReader is a read-only view of the committed state.
type StorageReader interface {
	// Get returns the value for key, or nil if the key is absent.
	Get(key []byte) ([]byte, error)
	Iter() Iterator
	Close()
}

// Iterator walks the committed state in ascending key order.
type Iterator interface {
	Item() Item
	Valid() bool
	Next()
	Seek(key []byte)
	Close()
}

type Item interface {
	Key() []byte
	Value() []byte
}
