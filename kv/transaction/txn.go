package transaction

import (
	"sort"

	"github.com/memkv-incubator/memkv/kv/storage"
)

// Txn holds the writes of a single open transaction on top of a reader over the committed state.
// Writes are buffered in the order they were made so they can be applied atomically on commit;
// reads see the transaction's own buffered writes first and fall through to the reader.
type Txn struct {
	Reader storage.StorageReader

	writes  []storage.Modify
	pending map[string]pendingWrite
}

// pendingWrite is the overlay's latest word on a key. A delete is kept as a tombstone so it can
// hide a committed value.
type pendingWrite struct {
	value   []byte
	deleted bool
}

func NewTxn(reader storage.StorageReader) *Txn {
	return &Txn{
		Reader:  reader,
		pending: make(map[string]pendingWrite),
	}
}

// Writes returns all changes buffered in this transaction, in the order they were made.
func (txn *Txn) Writes() []storage.Modify {
	return txn.writes
}

// PutValue adds a key/value write to this transaction.
func (txn *Txn) PutValue(key []byte, value []byte) {
	if value == nil {
		value = []byte{}
	}
	txn.writes = append(txn.writes, storage.Modify{
		Type: storage.ModifyTypePut,
		Data: storage.Put{Key: key, Value: value},
	})
	txn.pending[string(key)] = pendingWrite{value: value}
}

// DeleteValue buffers removal of key in this transaction.
func (txn *Txn) DeleteValue(key []byte) {
	txn.writes = append(txn.writes, storage.Modify{
		Type: storage.ModifyTypeDelete,
		Data: storage.Delete{Key: key},
	})
	txn.pending[string(key)] = pendingWrite{deleted: true}
}

// GetValue finds the value for key as seen by this transaction: its own buffered write if there
// is one (a buffered delete hides the committed value), else the committed value. A nil result
// means the key is absent.
func (txn *Txn) GetValue(key []byte) ([]byte, error) {
	if pw, ok := txn.pending[string(key)]; ok {
		if pw.deleted {
			return nil, nil
		}
		return pw.value, nil
	}
	return txn.Reader.Get(key)
}

// Pending reports what the overlay alone knows about key, without consulting the committed
// state. ok is false when the transaction never wrote key.
func (txn *Txn) Pending(key []byte) (value []byte, deleted bool, ok bool) {
	pw, ok := txn.pending[string(key)]
	return pw.value, pw.deleted, ok
}

// PendingKeys returns every key written by this transaction, in ascending order.
func (txn *Txn) PendingKeys() [][]byte {
	keys := make([]string, 0, len(txn.pending))
	for k := range txn.pending {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([][]byte, len(keys))
	for i, k := range keys {
		result[i] = []byte(k)
	}
	return result
}
